package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Calculator computes content checksums for run reports.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw returns the lowercase hex SHA-256 of content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Short truncates a hex checksum to its first n characters for display.
func Short(sum string, n int) string {
	if n <= 0 || len(sum) <= n {
		return sum
	}
	return sum[:n]
}

var _ Calculator = SHA256{}
