package curves

import (
	"crypto/elliptic"
	"math/big"
	"sort"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/smallyu/go-ecpoint/internal/crypto/modexp"
	"github.com/smallyu/go-ecpoint/internal/crypto/polynomial"
)

var (
	// ErrSingularCurve is returned when 4a^3 + 27b^2 vanishes modulo p.
	ErrSingularCurve = errors.New("curves: singular curve, 4a^3 + 27b^2 = 0 mod p")
	// ErrUnknownCurve is returned by ByName for unregistered names.
	ErrUnknownCurve = errors.New("curves: unknown curve")

	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
	five  = big.NewInt(5)
	c27   = big.NewInt(27)
)

// Params describes y^2 = x^3 + A*x + B over F_P.
type Params struct {
	Name string
	P    *big.Int
	A    *big.Int
	B    *big.Int
}

// New returns curve parameters with A and B reduced into [0, p). The
// parameters are not validated; see Validate.
func New(a, b, p *big.Int) *Params {
	if p == nil {
		return &Params{A: a, B: b}
	}
	params := &Params{P: new(big.Int).Set(p)}
	if p.Sign() > 0 {
		params.A = new(big.Int).Mod(a, p)
		params.B = new(big.Int).Mod(b, p)
	} else {
		params.A = new(big.Int).Set(a)
		params.B = new(big.Int).Set(b)
	}
	return params
}

// Validate checks that P is an odd integer of at least 5 and that the curve
// is non-singular.
func (c *Params) Validate() error {
	if err := ValidateModulus(c.P); err != nil {
		return err
	}
	if !IsNonsingular(c.A, c.B, c.P) {
		return errors.WithStack(ErrSingularCurve)
	}
	return nil
}

// Polynomial returns the right hand side x^3 + A*x + B.
func (c *Params) Polynomial() *polynomial.Polynomial {
	return polynomial.Weierstrass(c.A, c.B, c.P)
}

// IsOnCurve reports whether y^2 = x^3 + A*x + B holds modulo P.
func (c *Params) IsOnCurve(x, y *big.Int) bool {
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, c.P)
	return lhs.Cmp(c.Polynomial().Evaluate(x)) == 0
}

func (c *Params) String() string {
	name := c.Name
	if name == "" {
		name = "custom"
	}
	return name + " y^2 = x^3 + " + c.A.String() + "x + " + c.B.String() + " mod " + c.P.String()
}

// ValidateModulus checks that p is odd and at least 5.
func ValidateModulus(p *big.Int) error {
	if p == nil {
		return &ParamError{Param: "mod", Reason: "missing", Err: modexp.ErrInvalidModulus}
	}
	if p.Cmp(five) < 0 {
		return &ParamError{Param: "mod", Value: p.String(), Reason: "must be at least 5", Err: modexp.ErrInvalidModulus}
	}
	if p.Bit(0) == 0 {
		return &ParamError{Param: "mod", Value: p.String(), Reason: "must be odd", Err: modexp.ErrInvalidModulus}
	}
	return nil
}

// IsNonsingular reports whether 4a^3 + 27b^2 is non-zero modulo p. p must
// be positive.
func IsNonsingular(a, b, p *big.Int) bool {
	a3 := modexp.Exp(a, 3, p)
	b2 := modexp.Exp(b, 2, p)

	d := new(big.Int).Mul(four, a3)
	d.Add(d, new(big.Int).Mul(c27, b2))
	return d.Mod(d, p).Sign() != 0
}

// Secp256k1 returns the parameters of secp256k1, y^2 = x^3 + 7.
func Secp256k1() *Params {
	params := secp256k1.S256().Params()
	return &Params{
		Name: "secp256k1",
		P:    new(big.Int).Set(params.P),
		A:    new(big.Int),
		B:    new(big.Int).Set(params.B),
	}
}

// P256 returns the parameters of NIST P-256, y^2 = x^3 - 3x + b.
func P256() *Params {
	params := elliptic.P256().Params()
	return &Params{
		Name: "p256",
		P:    new(big.Int).Set(params.P),
		A:    new(big.Int).Sub(params.P, three),
		B:    new(big.Int).Set(params.B),
	}
}

var registry = map[string]func() *Params{
	"secp256k1": Secp256k1,
	"p256":      P256,
	"wei25519":  Wei25519,
}

// ByName returns the named preset. Names are case-insensitive and "p-256"
// is accepted for P-256.
func ByName(name string) (*Params, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
	ctor, ok := registry[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCurve, "%q", name)
	}
	return ctor(), nil
}

// Names returns the registered preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
