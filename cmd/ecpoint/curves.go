package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-ecpoint/internal/crypto/curves"
)

func (c *cli) curvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List the preset curves accepted by find --curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range curves.Names() {
				params, err := curves.ByName(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d-bit  a=%#x b=%#x\n", name, params.P.BitLen(), params.A, params.B)
			}
			return nil
		},
	}
}
