package finder

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/crypto/modexp"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func mustSearcher(t *testing.T, a, b, p int64, opts ...Option) *Searcher {
	t.Helper()
	s, err := New(curves.New(bi(a), bi(b), bi(p)), opts...)
	require.NoError(t, err)
	return s
}

func TestSearchKnownCurve(t *testing.T) {
	s := mustSearcher(t, 2, 3, 97)

	pair, err := s.Search(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), pair.First.X.Int64())
	assert.Equal(t, int64(0), pair.Second.X.Int64())
	assert.Equal(t, int64(87), pair.First.Y.Int64())
	assert.Equal(t, int64(10), pair.Second.Y.Int64())
	assert.Equal(t, int64(3), pair.RHS.Int64())
	assert.Equal(t, int64(5), pair.NonResidue.Int64())

	sum := new(big.Int).Add(pair.First.Y, pair.Second.Y)
	assert.Equal(t, int64(97), sum.Int64())
	assert.Len(t, pair.Points(), 2)
}

func TestSearchSmallCurves(t *testing.T) {
	cases := []struct {
		a, b, p, x, y1, y2 int64
	}{
		{1, 1, 13, 0, 1, 12},
		{0, 7, 17, 1, 12, 5},
		{2, 3, 17, 2, 7, 10},
	}
	for _, c := range cases {
		pair, err := mustSearcher(t, c.a, c.b, c.p).Search(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, c.x, pair.First.X.Int64(), "%+v", c)
		assert.Equal(t, c.y1, pair.First.Y.Int64(), "%+v", c)
		assert.Equal(t, c.y2, pair.Second.Y.Int64(), "%+v", c)
	}
}

func TestNewRejectsSingularCurve(t *testing.T) {
	for _, p := range []int64{5, 7, 97} {
		_, err := New(curves.New(bi(0), bi(0), bi(p)))
		assert.True(t, errors.Is(err, curves.ErrSingularCurve), "p=%d", p)
		assert.False(t, errors.Is(err, ErrNoPointFound))
	}
}

func TestNewRejectsBadModulus(t *testing.T) {
	_, err := New(curves.New(bi(2), bi(3), bi(96)))
	assert.True(t, errors.Is(err, modexp.ErrInvalidModulus))
}

func TestSearchNoPointFound(t *testing.T) {
	// over F_5 the only residue value for y^2 = x^3 + x + 3 is at x = 4 = p-1
	s := mustSearcher(t, 1, 3, 5)
	_, err := s.Search(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoPointFound))
	assert.False(t, errors.Is(err, curves.ErrSingularCurve))

	full := mustSearcher(t, 1, 3, 5, WithFullRange())
	pair, err := full.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pair.First.X.Int64())
	assert.ElementsMatch(t, []int64{1, 4}, []int64{pair.First.Y.Int64(), pair.Second.Y.Int64()})

	// y^2 = x^3 + 6 over F_7 has only points with y = 0 or none at all
	for _, opts := range [][]Option{nil, {WithFullRange()}} {
		_, err = mustSearcher(t, 0, 6, 7, opts...).Search(context.Background(), nil)
		assert.True(t, errors.Is(err, ErrNoPointFound))
	}
}

func TestBound(t *testing.T) {
	assert.Equal(t, int64(95), mustSearcher(t, 2, 3, 97).Bound().Int64())
	assert.Equal(t, int64(96), mustSearcher(t, 2, 3, 97, WithFullRange()).Bound().Int64())
}

func TestSearchFromStart(t *testing.T) {
	s := mustSearcher(t, 2, 3, 97)

	pair, err := s.Search(context.Background(), bi(2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), pair.First.X.Int64())
	assert.Equal(t, int64(91), pair.First.Y.Int64())

	pair, err = s.Search(context.Background(), bi(-10))
	require.NoError(t, err)
	assert.Equal(t, int64(0), pair.First.X.Int64())

	_, err = s.Search(context.Background(), bi(96))
	assert.True(t, errors.Is(err, ErrNoPointFound))
}

func TestSearchN(t *testing.T) {
	s := mustSearcher(t, 2, 3, 97)

	pairs, err := s.SearchN(context.Background(), nil, 4)
	require.NoError(t, err)
	require.Len(t, pairs, 4)

	var xs []int64
	for _, p := range pairs {
		xs = append(xs, p.First.X.Int64())
		for _, pt := range p.Points() {
			assert.True(t, s.Curve().IsOnCurve(pt.X, pt.Y))
		}
	}
	assert.Equal(t, []int64{0, 1, 3, 4}, xs)
}

func TestSearchNExhausted(t *testing.T) {
	s := mustSearcher(t, 2, 3, 97)

	pairs, err := s.SearchN(context.Background(), bi(90), 1000)
	require.NoError(t, err)
	assert.NotEmpty(t, pairs)
	assert.Less(t, len(pairs), 10)

	_, err = mustSearcher(t, 1, 3, 5).SearchN(context.Background(), nil, 3)
	assert.True(t, errors.Is(err, ErrNoPointFound))
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mustSearcher(t, 2, 3, 97).Search(ctx, nil)
	assert.Equal(t, context.Canceled, err)
}

// TestSearchMatchesBruteForce compares every non-singular curve over a few
// small fields against a direct scan of the squares.
func TestSearchMatchesBruteForce(t *testing.T) {
	for _, p := range []int64{5, 7, 11, 13, 17, 29} {
		squares := bitset.New(uint(p))
		for y := int64(1); y < p; y++ {
			squares.Set(uint(y * y % p))
		}

		for a := int64(0); a < p; a++ {
			for b := int64(0); b < p; b++ {
				if (4*a*a*a+27*b*b)%p == 0 {
					continue
				}

				s := mustSearcher(t, a, b, p, WithFullRange())
				want := int64(-1)
				for x := int64(0); x < p; x++ {
					if rhs := (x*x*x + a*x + b) % p; rhs != 0 && squares.Test(uint(rhs)) {
						want = x
						break
					}
				}

				pair, err := s.Search(context.Background(), nil)
				if want < 0 {
					require.True(t, errors.Is(err, ErrNoPointFound), "a=%d b=%d p=%d", a, b, p)
					continue
				}
				require.NoError(t, err, "a=%d b=%d p=%d", a, b, p)
				require.Equal(t, want, pair.First.X.Int64(), "a=%d b=%d p=%d", a, b, p)
				for _, pt := range pair.Points() {
					require.True(t, s.Curve().IsOnCurve(pt.X, pt.Y), "a=%d b=%d p=%d (%s, %s)", a, b, p, pt.X, pt.Y)
				}
			}
		}
	}
}

func TestNonResidueCachedConcurrently(t *testing.T) {
	s := mustSearcher(t, 2, 3, 97)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			z, err := s.NonResidue()
			assert.NoError(t, err)
			assert.Equal(t, int64(5), z.Int64())
		}()
	}
	wg.Wait()
}

func TestSearchLogsPoint(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := mustSearcher(t, 2, 3, 97, WithLogger(zap.New(core)))

	_, err := s.Search(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("valid polynomial").Len())
	found := logs.FilterMessage("point found").All()
	require.Len(t, found, 1)
	assert.Equal(t, "3", found[0].ContextMap()["square"])
	assert.Equal(t, "5", found[0].ContextMap()["non_residue"])
}
