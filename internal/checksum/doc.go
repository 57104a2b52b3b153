// Package checksum hashes file content before and after cleaning.
//
// Both checksums are recorded in the run report, so a later reader can tell
// which files a run actually rewrote and verify a backup against the original.
//
//	calculator := checksum.New()
//	before := calculator.CalculateRaw(original)
//	after := calculator.CalculateRaw(cleaned)
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
