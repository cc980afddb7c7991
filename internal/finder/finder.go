// Package finder searches for points on short Weierstrass curves over prime
// fields.
//
// A search walks x upwards from a start value and stops at the first x whose
// right hand side x^3 + ax + b is a non-zero quadratic residue, returning the
// two points (x, y) and (x, p-y). It never enumerates more than one
// x-coordinate per call; continue from x+1 to collect more points.
//
// By default the walk ends at p-2, leaving x = p-1 unexamined. WithFullRange
// includes it.
package finder

import (
	"context"
	"math/big"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/crypto/polynomial"
	"github.com/smallyu/go-ecpoint/internal/crypto/residue"
	"github.com/smallyu/go-ecpoint/internal/crypto/tonelli"
)

// ErrNoPointFound is returned when no x in the search range yields a
// non-zero quadratic residue.
var ErrNoPointFound = errors.New("finder: no point found in search range")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Point is an affine curve point.
type Point struct {
	X *big.Int
	Y *big.Int
}

// Pair is the result of a successful search: the two points sharing X,
// together with the residue and non-residue used to find them.
type Pair struct {
	First      Point
	Second     Point
	RHS        *big.Int
	NonResidue *big.Int
}

// Points returns the pair as a slice.
func (p *Pair) Points() []Point {
	return []Point{p.First, p.Second}
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Searcher) {
		s.logger = l
	}
}

// WithFullRange extends the search to x = p-1.
func WithFullRange() Option {
	return func(s *Searcher) {
		s.fullRange = true
	}
}

// Searcher finds points on one curve. It validates the curve once and
// caches the non-residue and the Tonelli-Shanks factorization between
// searches. It is safe for concurrent use.
type Searcher struct {
	curve     *curves.Params
	poly      *polynomial.Polynomial
	solver    *tonelli.Solver
	logger    *zap.Logger
	fullRange bool

	nrOnce     sync.Once
	nonResidue *big.Int
	nrErr      error
}

// New validates curve and returns a Searcher for it. It fails with an error
// wrapping curves.ErrSingularCurve for singular curves and
// modexp.ErrInvalidModulus for unusable moduli.
func New(curve *curves.Params, opts ...Option) (*Searcher, error) {
	if err := curve.Validate(); err != nil {
		return nil, err
	}

	s := &Searcher{
		curve:  curve,
		poly:   curve.Polynomial(),
		solver: tonelli.NewSolver(curve.P),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Debug("valid polynomial", zap.Stringer("curve", curve))
	return s, nil
}

// Curve returns the searcher's curve.
func (s *Searcher) Curve() *curves.Params {
	return s.curve
}

// Bound returns the largest x the searcher examines.
func (s *Searcher) Bound() *big.Int {
	if s.fullRange {
		return new(big.Int).Sub(s.curve.P, one)
	}
	return new(big.Int).Sub(s.curve.P, two)
}

// NonResidue returns the smallest quadratic non-residue of the field,
// computing it on first use.
func (s *Searcher) NonResidue() (*big.Int, error) {
	s.nrOnce.Do(func() {
		s.nonResidue, s.nrErr = residue.FindNonResidue(s.curve.P)
	})
	if s.nrErr != nil {
		return nil, s.nrErr
	}
	return new(big.Int).Set(s.nonResidue), nil
}

// Search returns the points at the first x >= start whose right hand side is
// a non-zero quadratic residue. A negative start is treated as zero. It
// returns ErrNoPointFound when the range is exhausted and ctx.Err() if ctx
// is done before a point is found.
func (s *Searcher) Search(ctx context.Context, start *big.Int) (*Pair, error) {
	x := new(big.Int)
	if start != nil && start.Sign() > 0 {
		x.Set(start)
	}
	bound := s.Bound()

	for ; x.Cmp(bound) <= 0; x.Add(x, one) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rhs := s.poly.Evaluate(x)
		if rhs.Sign() == 0 || !residue.IsQuadraticResidue(rhs, s.curve.P) {
			continue
		}

		z, err := s.NonResidue()
		if err != nil {
			return nil, err
		}
		r1, r2 := s.solver.Sqrt(rhs, z)

		s.logger.Debug("point found",
			zap.Stringer("x", x),
			zap.Stringer("square", rhs),
			zap.Stringer("non_residue", z),
			zap.Stringer("root1", r1),
			zap.Stringer("root2", r2),
		)

		return &Pair{
			First:      Point{X: new(big.Int).Set(x), Y: r1},
			Second:     Point{X: new(big.Int).Set(x), Y: r2},
			RHS:        rhs,
			NonResidue: z,
		}, nil
	}

	return nil, errors.Wrapf(ErrNoPointFound, "x in [%s, %s]", startOrZero(start), bound)
}

// SearchN repeats Search, each time starting after the previous hit, and
// returns up to n pairs. It stops early without error when the range is
// exhausted; any other error is returned together with the pairs found so
// far.
func (s *Searcher) SearchN(ctx context.Context, start *big.Int, n int) ([]*Pair, error) {
	var pairs []*Pair
	next := startOrZero(start)
	for len(pairs) < n {
		pair, err := s.Search(ctx, next)
		if errors.Is(err, ErrNoPointFound) {
			if len(pairs) == 0 {
				return nil, err
			}
			break
		}
		if err != nil {
			return pairs, err
		}
		pairs = append(pairs, pair)
		next = new(big.Int).Add(pair.First.X, one)
	}
	return pairs, nil
}

func startOrZero(start *big.Int) *big.Int {
	if start == nil || start.Sign() < 0 {
		return new(big.Int)
	}
	return start
}
