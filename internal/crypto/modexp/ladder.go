package modexp

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidModulus is returned when the modulus is zero or negative.
	ErrInvalidModulus = errors.New("modexp: modulus must be positive")
	// ErrNegativeExponent is returned for exponents below zero.
	ErrNegativeExponent = errors.New("modexp: exponent must be non-negative")

	one = big.NewInt(1)
)

// PowMod computes base^exponent mod modulus with a Montgomery ladder.
// The result is always in [0, modulus).
func PowMod(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, errors.WithStack(ErrInvalidModulus)
	}
	if exponent.Sign() < 0 {
		return nil, errors.WithStack(ErrNegativeExponent)
	}
	return Ladder(base, exponent, modulus), nil
}

// Ladder is the unchecked form of PowMod. modulus must be positive and
// exponent non-negative; callers that have not validated them use PowMod.
//
// Every exponent bit costs exactly one multiplication and one squaring,
// whatever its value.
func Ladder(base, exponent, modulus *big.Int) *big.Int {
	// x = 1 mod m so that m = 1 yields 0 even for an empty bit loop.
	x := new(big.Int).Mod(one, modulus)
	y := new(big.Int).Mod(base, modulus)

	var t big.Int
	for i := exponent.BitLen() - 1; i >= 0; i-- {
		if exponent.Bit(i) == 1 {
			t.Mul(x, y)
			x.Mod(&t, modulus)
			t.Mul(y, y)
			y.Mod(&t, modulus)
		} else {
			t.Mul(x, y)
			y.Mod(&t, modulus)
			t.Mul(x, x)
			x.Mod(&t, modulus)
		}
	}
	return x
}

// Exp is Ladder for small exponents.
func Exp(base *big.Int, exponent uint64, modulus *big.Int) *big.Int {
	return Ladder(base, new(big.Int).SetUint64(exponent), modulus)
}
