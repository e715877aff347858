package api

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewID returns a note id: creation time in milliseconds (base36) followed by
// four random bytes. Ids sort roughly by creation and stay short enough to
// type a unique prefix.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	var suffix [4]byte
	_, _ = rand.Read(suffix[:])
	return ts + "-" + hex.EncodeToString(suffix[:])
}
