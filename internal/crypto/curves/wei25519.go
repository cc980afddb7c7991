package curves

import (
	"math/big"

	"filippo.io/edwards25519/field"
)

// montgomeryA is the A coefficient of Curve25519, v^2 = u^3 + A*u^2 + u.
const montgomeryA = 486662

// Modulus25519 returns 2^255 - 19, read back from the edwards25519 field
// implementation as (-1) + 1.
func Modulus25519() *big.Int {
	var minusOne field.Element
	minusOne.Subtract(new(field.Element).Zero(), new(field.Element).One())

	// field elements serialise little-endian
	le := minusOne.Bytes()
	be := make([]byte, len(le))
	for i := range le {
		be[len(le)-1-i] = le[i]
	}

	p := new(big.Int).SetBytes(be)
	return p.Add(p, one)
}

// Wei25519 returns Curve25519 in short Weierstrass form. With x = u + A/3,
// a = (3 - A^2)/3 and b = (2A^3 - 9A)/27 over F_p. p is 5 mod 8, so square
// roots take the general Tonelli-Shanks path.
func Wei25519() *Params {
	p := Modulus25519()
	A := big.NewInt(montgomeryA)

	inv3 := new(big.Int).ModInverse(three, p)
	inv27 := new(big.Int).ModInverse(c27, p)

	// a = (3 - A^2) / 3
	a := new(big.Int).Mul(A, A)
	a.Sub(three, a)
	a.Mul(a, inv3)
	a.Mod(a, p)

	// b = (2A^3 - 9A) / 27
	b := new(big.Int).Exp(A, three, nil)
	b.Mul(b, two)
	b.Sub(b, new(big.Int).Mul(big.NewInt(9), A))
	b.Mul(b, inv27)
	b.Mod(b, p)

	return &Params{Name: "wei25519", P: p, A: a, B: b}
}

// Sqrt25519 returns the non-negative square root of v modulo 2^255 - 19 as
// computed by the edwards25519 field arithmetic, and whether v was a square.
// v must already be reduced.
func Sqrt25519(v *big.Int) (*big.Int, bool) {
	be := v.FillBytes(make([]byte, 32))
	le := make([]byte, 32)
	for i := range be {
		le[31-i] = be[i]
	}

	u, err := new(field.Element).SetBytes(le)
	if err != nil {
		return nil, false
	}
	r, wasSquare := new(field.Element).SqrtRatio(u, new(field.Element).One())

	out := r.Bytes()
	for i := range out {
		be[31-i] = out[i]
	}
	return new(big.Int).SetBytes(be), wasSquare == 1
}
