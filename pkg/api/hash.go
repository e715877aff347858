package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the note content.
// Timestamps are left out so that touching a note does not change it.
func (n Note) Hash() string {
	h := blake3.New()
	_, _ = h.Write([]byte(n.ID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(n.Title))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(n.Body))
	return hex.EncodeToString(h.Sum(nil))
}

// HashBytes returns the hex BLAKE3 digest of b.
func HashBytes(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}
