package tonelli

import (
	"math/big"
	"sync"

	"github.com/smallyu/go-ecpoint/internal/crypto/modexp"
)

var (
	one   = big.NewInt(1)
	three = big.NewInt(3)
)

// Factorization holds l and t with (p-1)/2 = 2^L * T and T odd.
type Factorization struct {
	L uint
	T *big.Int
}

// Factor decomposes (p-1)/2 into a power of two and an odd part.
func Factor(p *big.Int) Factorization {
	t := new(big.Int).Sub(p, one)
	t.Rsh(t, 1)

	var l uint
	for t.Sign() != 0 && t.Bit(0) == 0 {
		t.Rsh(t, 1)
		l++
	}
	return Factorization{L: l, T: t}
}

// Sqrt returns both square roots of square modulo the odd prime p, using
// nonResidue as the quadratic non-residue for the general case.
//
// square must be a quadratic residue; for any other input the result is
// meaningless. The roots satisfy r1 + r2 ≡ 0 (mod p).
func Sqrt(square, nonResidue, p *big.Int) (r1, r2 *big.Int) {
	var f Factorization
	if !isThreeModFour(p) {
		f = Factor(p)
	}
	return sqrt(square, nonResidue, p, f)
}

// Solver computes square roots modulo a fixed prime. The factorization of
// (p-1)/2 is computed on the first general-case call and reused afterwards.
// A Solver is safe for concurrent use.
type Solver struct {
	p *big.Int

	once sync.Once
	f    Factorization
}

// NewSolver returns a Solver for the odd prime p.
func NewSolver(p *big.Int) *Solver {
	return &Solver{p: new(big.Int).Set(p)}
}

// Modulus returns the solver's prime.
func (s *Solver) Modulus() *big.Int {
	return new(big.Int).Set(s.p)
}

// Factorization returns the cached decomposition of (p-1)/2.
func (s *Solver) Factorization() Factorization {
	s.once.Do(func() {
		s.f = Factor(s.p)
	})
	return s.f
}

// Sqrt is the package level Sqrt bound to the solver's modulus.
func (s *Solver) Sqrt(square, nonResidue *big.Int) (r1, r2 *big.Int) {
	var f Factorization
	if !isThreeModFour(s.p) {
		f = s.Factorization()
	}
	return sqrt(square, nonResidue, s.p, f)
}

func isThreeModFour(p *big.Int) bool {
	var r big.Int
	return r.Mod(p, big.NewInt(4)).Cmp(three) == 0
}

func sqrt(square, nonResidue, p *big.Int, f Factorization) (*big.Int, *big.Int) {
	var r *big.Int
	if isThreeModFour(p) {
		// r = square^((p+1)/4)
		e := new(big.Int).Add(p, one)
		e.Rsh(e, 2)
		r = modexp.Ladder(square, e, p)
	} else {
		r = shanks(square, nonResidue, p, f)
	}
	return r, negate(r, p)
}

// shanks recovers the exponent n of the non-residue one bit per round.
//
// Invariant after round i: square^(2^(l-i)*t) * z^(2n) == 1. Each round
// checks whether square^(2^(l-i)*t) * z^n is 1 or -1 and shifts n
// accordingly, adding (p-1)/4 to cancel a -1. After l rounds
// square^t * z^(2n) == 1, so square^((t+1)/2) * z^n is a root.
func shanks(square, z, p *big.Int, f Factorization) *big.Int {
	quarter := new(big.Int).Sub(p, one)
	quarter.Rsh(quarter, 2)

	n := new(big.Int)
	e := new(big.Int)
	c := new(big.Int)
	for i := uint(1); i <= f.L; i++ {
		e.Lsh(f.T, f.L-i)
		c.Mul(modexp.Ladder(square, e, p), modexp.Ladder(z, n, p))
		c.Mod(c, p)

		n.Rsh(n, 1)
		if c.Cmp(one) != 0 {
			n.Add(n, quarter)
		}
	}

	e.Add(f.T, one)
	e.Rsh(e, 1)
	r := new(big.Int).Mul(modexp.Ladder(square, e, p), modexp.Ladder(z, n, p))
	return r.Mod(r, p)
}

// negate returns p - r reduced into [0, p).
func negate(r, p *big.Int) *big.Int {
	if r.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(p, r)
}
