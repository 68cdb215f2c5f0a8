package checksum

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/outofforest/pathfind/hash"
	"github.com/outofforest/pathfind/types"
)

// Path computes checksum of the path. It depends on every state and on its position in the path,
// so two paths have equal checksums only if they visit the same states in the same order.
func Path[S comparable](path []S, hashFunc hash.Func[S]) types.Checksum {
	var checksum types.Checksum
	if len(path) == 0 {
		return checksum
	}

	var buf [2 * types.UInt64Length]byte
	h := blake3.New()
	for i, s := range path {
		binary.LittleEndian.PutUint64(buf[:types.UInt64Length], uint64(i))
		binary.LittleEndian.PutUint64(buf[types.UInt64Length:], hashFunc(s))
		_, _ = h.Write(buf[:])
	}
	copy(checksum[:], h.Sum(nil))

	return checksum
}
