package residue

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecpoint/internal/crypto/modexp"
)

// ErrNoNonResidue is returned when every element below p passes Euler's
// criterion, which only happens when p is not an odd prime.
var ErrNoNonResidue = errors.New("residue: no quadratic non-residue below modulus")

var one = big.NewInt(1)

// eulerExponent returns (p-1)/2.
func eulerExponent(p *big.Int) *big.Int {
	e := new(big.Int).Sub(p, one)
	return e.Rsh(e, 1)
}

// euler returns value^((p-1)/2) mod p, which is 0, 1 or p-1 for prime p.
func euler(value, p *big.Int) *big.Int {
	return modexp.Ladder(value, eulerExponent(p), p)
}

// IsQuadraticResidue reports whether value is a non-zero square modulo the
// odd prime p. Zero is not counted as a residue.
func IsQuadraticResidue(value, p *big.Int) bool {
	return euler(value, p).Cmp(one) == 0
}

// Legendre returns the Legendre symbol (value | p): 1, 0 or -1.
func Legendre(value, p *big.Int) int {
	r := euler(value, p)
	switch {
	case r.Sign() == 0:
		return 0
	case r.Cmp(one) == 0:
		return 1
	default:
		return -1
	}
}

// FindNonResidue returns the smallest positive integer that is not a
// quadratic residue modulo p. p must be an odd prime; primality is not
// checked, but the scan stops at p so a composite modulus cannot loop forever.
func FindNonResidue(p *big.Int) (*big.Int, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, errors.WithStack(modexp.ErrInvalidModulus)
	}

	e := eulerExponent(p)
	for x := big.NewInt(1); x.Cmp(p) < 0; x.Add(x, one) {
		if modexp.Ladder(x, e, p).Cmp(one) != 0 {
			return x, nil
		}
	}
	return nil, errors.Wrapf(ErrNoNonResidue, "modulus %s", p)
}
