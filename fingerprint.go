package ngon

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a hash of the exact bit patterns of the sequence's
// coordinates. Bitwise equal sequences have equal fingerprints.
func Fingerprint(s Sequence) uint64 {
	d := xxhash.New()
	var buf [16]byte
	for _, v := range s {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(v.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(v.Y))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// MeshesFingerprint combines the fingerprints of every mesh's vertices,
// style and color in order.
func MeshesFingerprint(meshes []Mesh) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, m := range meshes {
		binary.LittleEndian.PutUint64(buf[:], Fingerprint(m.Vertices))
		d.Write(buf[:])
		d.Write([]byte{byte(m.Style), m.Color.R, m.Color.G, m.Color.B, m.Color.A})
	}
	return d.Sum64()
}
