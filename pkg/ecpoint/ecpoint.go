// Package ecpoint finds points on elliptic curves y^2 = x^3 + ax + b over
// prime fields.
//
// The functions mirror the arithmetic building blocks: modular
// exponentiation with a Montgomery ladder, Euler's criterion, the least
// quadratic non-residue, Tonelli-Shanks square roots, the discriminant test
// and the point search that combines them. Integers may be arbitrarily large.
//
// FindPoints returns at most one x-coordinate's pair of points per call;
// use FindPointsFrom with a later start to continue.
package ecpoint

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/crypto/modexp"
	"github.com/smallyu/go-ecpoint/internal/crypto/residue"
	"github.com/smallyu/go-ecpoint/internal/crypto/tonelli"
	"github.com/smallyu/go-ecpoint/internal/finder"
)

type (
	// Point is an affine curve point.
	Point = finder.Point
	// Pair holds the two points found for one x-coordinate.
	Pair = finder.Pair
	// Option configures FindPointsFrom.
	Option = finder.Option
)

var (
	// WithLogger routes search debug output to a zap logger.
	WithLogger = finder.WithLogger
	// WithFullRange searches up to x = mod-1 instead of mod-2.
	WithFullRange = finder.WithFullRange
)

// PowMod returns base^exponent mod modulo in [0, modulo).
func PowMod(base, exponent, modulo *big.Int) (*big.Int, error) {
	return modexp.PowMod(base, exponent, modulo)
}

// IsQuadraticResidue reports whether value is a non-zero square modulo the
// odd prime mod.
func IsQuadraticResidue(value, mod *big.Int) (bool, error) {
	if err := checkPositive(mod); err != nil {
		return false, err
	}
	return residue.IsQuadraticResidue(value, mod), nil
}

// FindNonResidue returns the least positive quadratic non-residue modulo
// the odd prime mod.
func FindNonResidue(mod *big.Int) (*big.Int, error) {
	return residue.FindNonResidue(mod)
}

// SqrtMod returns the two square roots of square modulo the odd prime mod.
// square must be a quadratic residue and nonResidue a non-residue; the
// result is unspecified otherwise.
func SqrtMod(square, nonResidue, mod *big.Int) (*big.Int, *big.Int, error) {
	if err := checkPositive(mod); err != nil {
		return nil, nil, err
	}
	r1, r2 := tonelli.Sqrt(square, nonResidue, mod)
	return r1, r2, nil
}

// IsNonsingular reports whether 4a^3 + 27b^2 is non-zero modulo mod.
func IsNonsingular(a, b, mod *big.Int) (bool, error) {
	if err := checkPositive(mod); err != nil {
		return false, err
	}
	return curves.IsNonsingular(a, b, mod), nil
}

// FindPoints returns the two points at the smallest x in [0, mod-2] whose
// right hand side is a non-zero quadratic residue. It fails with
// ErrSingularCurve or ErrNoPointFound, which are distinct outcomes.
func FindPoints(a, b, mod *big.Int) (*Pair, error) {
	return FindPointsFrom(context.Background(), a, b, mod, nil)
}

// FindPointsFrom is FindPoints starting the scan at start instead of 0.
func FindPointsFrom(ctx context.Context, a, b, mod, start *big.Int, opts ...Option) (*Pair, error) {
	s, err := finder.New(curves.New(a, b, mod), opts...)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, start)
}

func checkPositive(mod *big.Int) error {
	if mod == nil || mod.Sign() <= 0 {
		return errors.WithStack(ErrInvalidModulus)
	}
	return nil
}
