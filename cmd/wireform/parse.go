package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wireform/wireform/construct"
	"github.com/wireform/wireform/construct/dump"

	"github.com/spf13/cobra"
)

func cmdParse() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:     "parse layout [file]",
		Short:   "Parse binary input against a layout and print the result",
		Args:    cobra.RangeArgs(1, 2),
		Example: `  wireform parse bmp < header.bin`,
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

			v, err := construct.Parse(l.con, data, nil)
			if err != nil {
				return fmt.Errorf("parse %s: %w", l.name, err)
			}

			out, err := render(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	return cmd
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func render(v any) ([]byte, error) {
	if cfg.OutputEncoding == "json" {
		return dump.MarshalJSON(v)
	}
	return dump.Marshal(v)
}
