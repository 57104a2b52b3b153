// Package services implements the cleaning pipeline.
//
// FileCleaner processes a single file: read, strip, optionally validate,
// optionally back up, then write. Runner walks the target root, asks for
// approval when originals would be rewritten without backups, and fans the
// selected files out to a bounded worker pool, streaming each outcome to a
// codecleaner.Reporter as it completes.
package services
