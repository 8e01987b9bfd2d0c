package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewID32 returns exactly 32 lowercase hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewClientNumber returns a public client number like "CL-1a2b3c4d5e6f".
func NewClientNumber() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return fmt.Sprintf("CL-%s", hex.EncodeToString(b))
}
