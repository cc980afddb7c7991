package ecpoint

import (
	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/crypto/modexp"
	"github.com/smallyu/go-ecpoint/internal/crypto/residue"
	"github.com/smallyu/go-ecpoint/internal/finder"
)

// Errors returned by the package. Compare with errors.Is.
var (
	// ErrInvalidModulus reports a modulus that is not positive, or, for curve
	// operations, not an odd integer of at least 5.
	ErrInvalidModulus = modexp.ErrInvalidModulus
	// ErrNegativeExponent reports a negative exponent passed to PowMod.
	ErrNegativeExponent = modexp.ErrNegativeExponent
	// ErrSingularCurve reports 4a^3 + 27b^2 = 0 mod p.
	ErrSingularCurve = curves.ErrSingularCurve
	// ErrNoPointFound reports an exhausted search range.
	ErrNoPointFound = finder.ErrNoPointFound
	// ErrNoNonResidue reports a modulus with no non-residue below it, which
	// means it is not an odd prime.
	ErrNoNonResidue = residue.ErrNoNonResidue
)

// ParamError names the curve parameter that was rejected.
type ParamError = curves.ParamError
