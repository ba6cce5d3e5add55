package main

import (
	"fmt"

	"github.com/wireform/wireform/construct"

	"github.com/spf13/cobra"
)

func cmdSizeof() *cobra.Command {
	return &cobra.Command{
		Use:     "sizeof layout",
		Short:   "Print a layout's static byte size, when known",
		Args:    cobra.ExactArgs(1),
		Example: `  wireform sizeof bmp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := lookupLayout(args[0])
			if err != nil {
				return err
			}
			n, err := construct.SizeOf(l.con, nil)
			if err != nil {
				return fmt.Errorf("%s has no static size: %w", l.name, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
