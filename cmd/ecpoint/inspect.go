package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
	"github.com/smallyu/go-ecpoint/internal/crypto/residue"
	"github.com/smallyu/go-ecpoint/internal/crypto/tonelli"
)

func (c *cli) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect MOD VALUE...",
		Short: "Print the Legendre symbol and square roots of values modulo a prime",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseInt("mod", args[0])
			if err != nil {
				return err
			}
			if err := curves.ValidateModulus(p); err != nil {
				return err
			}
			z, err := residue.FindNonResidue(p)
			if err != nil {
				return err
			}
			solver := tonelli.NewSolver(p)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "non-residue %s\n", z)
			for _, arg := range args[1:] {
				v, err := parseInt("value", arg)
				if err != nil {
					return err
				}
				v.Mod(v, p)

				switch residue.Legendre(v, p) {
				case 0:
					fmt.Fprintf(out, "%s\t0\troots (0, 0)\n", v)
				case 1:
					r1, r2 := solver.Sqrt(v, z)
					fmt.Fprintf(out, "%s\t1\troots (%s, %s)\n", v, r1, r2)
				default:
					fmt.Fprintf(out, "%s\t-1\n", v)
				}
			}
			return nil
		},
	}
}
