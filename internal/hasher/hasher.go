// Package hasher provides content hashes for frame buffers: stable names
// for converted output files and a short fingerprint for upload logs.
package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen characters (0 or an over-long request returns all
// 16). A frame buffer is one display-sized blob, so 64 bits is plenty to
// tell runs apart.
func ContentHash(data []byte, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
