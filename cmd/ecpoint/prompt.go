package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/finder"
)

const banner = ` _____ ____   ____       _       _
| ____/ ___| |  _ \ ___ (_)_ __ | |_
|  _|| |     | |_) / _ \| | '_ \| __|
| |__| |___  |  __/ (_) | | | | | |_
|_____\____| |_|   \___/|_|_| |_|\__|
`

func (c *cli) promptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Read a, b and the modulus interactively and find a point",
		Args:  cobra.NoArgs,
		RunE:  c.runPrompt,
	}
}

func (c *cli) runPrompt(cmd *cobra.Command, _ []string) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprint(out, banner+"\n")
	fmt.Fprintln(out, "The formula of the elliptic curve is: y² = x³ + ax + b")
	fmt.Fprintln(out, "The elliptic curve is defined over the finite field modulo.")
	fmt.Fprintln(out)

	a, err := readInt(in, out, "a", "Enter the 'a' coefficient of the polynomial: ")
	if err != nil {
		return err
	}
	b, err := readInt(in, out, "b", "Enter the 'b' coefficient of the polynomial: ")
	if err != nil {
		return err
	}
	mod, err := readInt(in, out, "mod", "Enter the finite field modulo: ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out)

	s, err := finder.New(curves.New(a, b, mod), finder.WithLogger(c.logger.Named("finder")))
	if errors.Is(err, curves.ErrSingularCurve) {
		fmt.Fprintln(out, "Invalid polynomial.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Valid polynomial.")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pair, err := s.Search(ctx, nil)
	if errors.Is(err, finder.ErrNoPointFound) {
		fmt.Fprintln(out, "No point found.")
		return nil
	}
	if err != nil {
		return err
	}
	return writeText(out, []*finder.Pair{pair})
}

// readInt prompts until a line parses as an integer.
func readInt(in *bufio.Scanner, out io.Writer, name, prompt string) (*big.Int, error) {
	for {
		fmt.Fprint(out, prompt)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return nil, errors.WithStack(err)
			}
			return nil, errors.Wrapf(io.ErrUnexpectedEOF, "reading %s", name)
		}
		v, err := parseInt(name, in.Text())
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(out, "Invalid input. Please enter an integer.")
	}
}
