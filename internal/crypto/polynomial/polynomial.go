package polynomial

import (
	"math/big"
)

// Polynomial represents f(x) = a_0 + a_1*x + ... + a_t*x^t over Z_p.
type Polynomial struct {
	Coefficients []*big.Int
	Modulus      *big.Int
}

// New returns the polynomial with the given coefficients, lowest degree
// first, each reduced into [0, p).
func New(p *big.Int, coeffs ...*big.Int) *Polynomial {
	reduced := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		reduced[i] = new(big.Int).Mod(c, p)
	}
	if len(reduced) == 0 {
		reduced = []*big.Int{new(big.Int)}
	}
	return &Polynomial{
		Coefficients: reduced,
		Modulus:      new(big.Int).Set(p),
	}
}

// Weierstrass returns x^3 + a*x + b over Z_p.
func Weierstrass(a, b, p *big.Int) *Polynomial {
	return New(p, b, a, new(big.Int), big.NewInt(1))
}

// Degree returns the index of the highest coefficient.
func (p *Polynomial) Degree() int {
	return len(p.Coefficients) - 1
}

// Evaluate calculates f(x) mod p. The result lies in [0, p).
func (p *Polynomial) Evaluate(x *big.Int) *big.Int {
	// Horner's method
	// result = a_t
	// for i = t-1 down to 0:
	//   result = result * x + a_i
	degree := p.Degree()
	result := new(big.Int).Set(p.Coefficients[degree])

	for i := degree - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p.Coefficients[i])
		result.Mod(result, p.Modulus)
	}

	return result.Mod(result, p.Modulus)
}
