package automaton

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hashInts returns a content hash of the given ints. Order matters, so
// callers pass the canonically sorted members of a set.
func hashInts(values []int) uint64 {
	var d xxhash.Digest
	d.Reset()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
