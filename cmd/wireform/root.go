package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/wireform/wireform/construct"
	"github.com/wireform/wireform/internal/config"
	"github.com/wireform/wireform/log"

	"github.com/spf13/cobra"
)

const banner = `
__      __.__            _____
/  \    /  \__|______   _/ ____\___________  _____
\   \/\/   /  \_  __ \  \   __\/  _ \_  __ \/     \
 \        /|  ||  | \/   |  | (  <_> )  | \/  Y Y  \
  \__/\  / |__||__|      |__|  \____/|__|  |__|_|  /
       \/                                        \/

Declarative binary format toolkit
`

var cfg config.Settings
var cfgPath string
var traceFlag bool

var rootCmd = &cobra.Command{
	Use:     "wireform",
	Short:   "Declarative binary format toolkit",
	Long:    banner[1:],
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if traceFlag {
			l := log.Default()
			l.SetLevel(log.LevelDebug)
			construct.SetTrace(l)
		}
		return nil
	},
}

func init() {
	cobra.EnableCommandSorting = false
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "wireform.toml", "path to an optional settings file")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "log each Struct field's parse/build at debug level")

	rootCmd.AddCommand(cmdLayouts())
	rootCmd.AddCommand(cmdSizeof())
	rootCmd.AddCommand(cmdParse())
	rootCmd.AddCommand(cmdBuild())
}

func lookupLayout(name string) (layout, error) {
	l, ok := registry[name]
	if !ok {
		names := make([]string, 0, len(registry))
		for n := range registry {
			names = append(names, n)
		}
		sort.Strings(names)
		return layout{}, fmt.Errorf("unknown layout %q (available: %v)", name, names)
	}
	return l, nil
}

func cmdLayouts() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the built-in demo layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(registry))
			for n := range registry {
				names = append(names, n)
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintf(os.Stdout, "%-16s %s\n", n, registry[n].doc)
			}
			return nil
		},
	}
}
