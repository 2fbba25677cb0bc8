// Package hexref generates 0x-prefixed hex reference strings. These are
// opaque placeholders (settlement references, offline asset ids), not real
// chain transactions.
package hexref

import (
	"crypto/rand"
	"encoding/hex"
)

// New returns "0x" followed by n random bytes hex-encoded.
func New(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return "0x" + hex.EncodeToString(b)
}

// NewTxHash returns a 66-char transaction-hash-shaped reference (0x + 64 hex).
func NewTxHash() string {
	return New(32)
}

// NewAssetID returns an address-shaped asset id (0x + 40 hex).
func NewAssetID() string {
	return New(20)
}
