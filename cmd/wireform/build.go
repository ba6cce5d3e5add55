package main

import (
	"fmt"
	"os"

	"github.com/wireform/wireform/construct"
	"github.com/wireform/wireform/construct/dump"

	"github.com/spf13/cobra"
)

func cmdBuild() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:     "build layout [file]",
		Short:   "Build binary output from YAML input against a layout",
		Args:    cobra.RangeArgs(1, 2),
		Example: `  wireform build bmp < header.yaml > header.bin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := lookupLayout(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				input = args[1]
			}

			data, err := readInput(input)
			if err != nil {
				return err
			}

			v, err := dump.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("build %s: %w", l.name, err)
			}

			out, err := construct.Build(l.con, v, nil)
			if err != nil {
				return fmt.Errorf("build %s: %w", l.name, err)
			}

			_, err = os.Stdout.Write(out)
			return err
		},
	}
	return cmd
}
