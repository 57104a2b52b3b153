// Package files groups the file-related sub-packages used by the cleaner.
//
//   - filesystem: read, write and stat through an interface, with OS and in-memory implementations
//   - scanner: discovery of candidate files under a root, honouring extension and exclusion rules
//
// # Usage
//
//	s, err := scanner.NewScannerWithFS(scanner.DefaultOptions(), filesystem.NewOSFileSystem(), logger)
//	if err != nil {
//	    return err
//	}
//	files, err := s.ScanDirectory("./src")
package files
