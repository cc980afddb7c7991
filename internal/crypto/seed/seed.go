package seed

import (
	"encoding/binary"
	"math/big"

	sha256simd "github.com/minio/sha256-simd"
)

// Tag separates start-point derivation from any other use of SHA-256 on the
// same label.
const Tag = "ecpoint/start"

// Derive maps label to a start x-coordinate in [0, p).
//
// The digest stream is SHA256(SHA256(Tag) || label || counter) for
// counter = 0, 1, ... and is extended until it is 64 bits longer than p, so
// the reduction mod p is close to uniform.
func Derive(label []byte, p *big.Int) *big.Int {
	stream := Expand(label, (p.BitLen()+64+7)/8)
	x := new(big.Int).SetBytes(stream)
	return x.Mod(x, p)
}

// Expand returns n bytes of the tagged digest stream for label.
func Expand(label []byte, n int) []byte {
	tag := sha256simd.Sum256([]byte(Tag))

	out := make([]byte, 0, n+sha256simd.Size)
	var ctr [4]byte
	for i := uint32(0); len(out) < n; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)

		h := sha256simd.New()
		h.Write(tag[:])
		h.Write(label)
		h.Write(ctr[:])
		out = h.Sum(out)
	}
	return out[:n]
}
