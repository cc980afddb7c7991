package e2e

import (
	"context"
	"crypto/elliptic"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/crypto/seed"
	"github.com/smallyu/go-ecpoint/internal/finder"
)

func search(t *testing.T, curve *curves.Params, start *big.Int, n int) []*finder.Pair {
	t.Helper()
	s, err := finder.New(curve)
	require.NoError(t, err)
	pairs, err := s.SearchN(context.Background(), start, n)
	require.NoError(t, err)
	require.Len(t, pairs, n)
	return pairs
}

// compress encodes (x, y) in the SEC1 compressed form.
func compress(x, y *big.Int) []byte {
	out := make([]byte, 33)
	out[0] = 0x02 | byte(y.Bit(0))
	x.FillBytes(out[1:])
	return out
}

func TestSecp256k1PointsDecompress(t *testing.T) {
	curve := curves.Secp256k1()
	starts := []*big.Int{nil, seed.Derive([]byte("e2e"), curve.P)}

	for _, start := range starts {
		for _, pair := range search(t, curve, start, 3) {
			for _, pt := range pair.Points() {
				assert.True(t, secp256k1.S256().IsOnCurve(pt.X, pt.Y), "(%x, %x)", pt.X, pt.Y)

				pub, err := btcec.ParsePubKey(compress(pt.X, pt.Y))
				require.NoError(t, err)
				assert.Equal(t, 0, pub.X().Cmp(pt.X))
				assert.Equal(t, 0, pub.Y().Cmp(pt.Y))
			}
		}
	}
}

func TestP256PointsOnCurve(t *testing.T) {
	curve := curves.P256()
	for _, pair := range search(t, curve, nil, 3) {
		for _, pt := range pair.Points() {
			assert.True(t, elliptic.P256().IsOnCurve(pt.X, pt.Y), "(%x, %x)", pt.X, pt.Y)
		}
	}
}

func TestWei25519MatchesFieldSqrt(t *testing.T) {
	curve := curves.Wei25519()
	p := curve.P

	// x = u + A/3 maps back to the Montgomery curve v^2 = u^3 + A*u^2 + u
	A := big.NewInt(486662)
	shift := new(big.Int).ModInverse(big.NewInt(3), p)
	shift.Mul(shift, A).Mod(shift, p)

	for _, pair := range search(t, curve, seed.Derive([]byte("wei25519"), p), 3) {
		root, ok := curves.Sqrt25519(pair.RHS)
		require.True(t, ok)
		assert.True(t, root.Cmp(pair.First.Y) == 0 || root.Cmp(pair.Second.Y) == 0,
			"field sqrt %x, found %x / %x", root, pair.First.Y, pair.Second.Y)

		u := new(big.Int).Sub(pair.First.X, shift)
		u.Mod(u, p)
		rhs := new(big.Int).Exp(u, big.NewInt(3), p)
		rhs.Add(rhs, new(big.Int).Mul(A, new(big.Int).Mul(u, u)))
		rhs.Add(rhs, u)
		rhs.Mod(rhs, p)

		v2 := new(big.Int).Mul(pair.First.Y, pair.First.Y)
		assert.Equal(t, 0, v2.Mod(v2, p).Cmp(rhs))
	}
}
