package main

import (
	"context"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/crypto/seed"
	"github.com/smallyu/go-ecpoint/internal/finder"
)

func (c *cli) findCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find points on y^2 = x^3 + ax + b mod p",
		Long: `Find scans x upwards from the start value and reports the two points at
the first x whose right hand side is a non-zero square. With --count it
keeps going from the next x until that many x-coordinates were reported
or the range is exhausted.

Integers are decimal, or hexadecimal with a 0x prefix.`,
		Args: cobra.NoArgs,
		RunE: c.runFind,
	}

	flags := cmd.Flags()
	flags.String("a", "", "coefficient a")
	flags.String("b", "", "coefficient b")
	flags.String("mod", "", "prime modulus of the field")
	flags.String("curve", "", "preset curve instead of --a, --b and --mod")
	flags.String("start", "", "first x-coordinate to examine (default 0)")
	flags.String("seed-label", "", "derive the first x-coordinate from this label")
	flags.Int("count", 1, "number of x-coordinates to report")
	flags.Bool("full-range", false, "also examine x = mod-1")
	flags.Duration("timeout", 0, "give up after this long, 0 for no limit")
	c.bind(flags, "a", "b", "mod", "curve", "start", "seed-label", "count", "full-range", "timeout")

	return cmd
}

func (c *cli) runFind(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(c.v.GetString("output"))
	if err != nil {
		return err
	}

	count := c.v.GetInt("count")
	if count < 1 {
		return &curves.ParamError{Param: "count", Value: c.v.GetString("count"), Reason: "must be at least 1"}
	}

	curve, err := c.curve()
	if err != nil {
		return err
	}

	opts := []finder.Option{finder.WithLogger(c.logger.Named("finder"))}
	if c.v.GetBool("full-range") {
		opts = append(opts, finder.WithFullRange())
	}
	s, err := finder.New(curve, opts...)
	if err != nil {
		return err
	}

	start, err := c.start(curve.P)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := c.v.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c.logger.Info("searching",
		zap.Stringer("curve", curve),
		zap.Stringer("start", start),
		zap.Stringer("bound", s.Bound()),
		zap.Int("count", count),
	)

	pairs, err := s.SearchN(ctx, start, count)
	if len(pairs) > 0 {
		if rerr := render(cmd.OutOrStdout(), format, curve, pairs); rerr != nil {
			return rerr
		}
	}
	return err
}

// curve resolves the curve from --curve or from --a, --b and --mod.
func (c *cli) curve() (*curves.Params, error) {
	a, b, mod := c.v.GetString("a"), c.v.GetString("b"), c.v.GetString("mod")

	if name := c.v.GetString("curve"); name != "" {
		if a != "" || b != "" || mod != "" {
			return nil, errors.New("--curve cannot be combined with --a, --b or --mod")
		}
		return curves.ByName(name)
	}

	ai, err := requiredInt("a", a)
	if err != nil {
		return nil, err
	}
	bi, err := requiredInt("b", b)
	if err != nil {
		return nil, err
	}
	pi, err := requiredInt("mod", mod)
	if err != nil {
		return nil, err
	}
	return curves.New(ai, bi, pi), nil
}

// start resolves the first x-coordinate from --start or --seed-label.
func (c *cli) start(p *big.Int) (*big.Int, error) {
	start, label := c.v.GetString("start"), c.v.GetString("seed-label")
	switch {
	case start != "" && label != "":
		return nil, errors.New("--start cannot be combined with --seed-label")
	case label != "":
		return seed.Derive([]byte(label), p), nil
	case start != "":
		return parseInt("start", start)
	default:
		return new(big.Int), nil
	}
}

func requiredInt(name, s string) (*big.Int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &curves.ParamError{Param: name, Reason: "required"}
	}
	return parseInt(name, s)
}

// parseInt accepts decimal or 0x-prefixed hexadecimal, optionally negative.
func parseInt(name, s string) (*big.Int, error) {
	body := strings.TrimSpace(s)
	neg := strings.HasPrefix(body, "-")
	body = strings.TrimPrefix(body, "-")

	base := 10
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		base, body = 16, body[2:]
	}

	v, ok := new(big.Int).SetString(body, base)
	if !ok {
		return nil, &curves.ParamError{Param: name, Value: s, Reason: "not an integer"}
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}
