// Command ddtabs shows the subdirectories of a folder as a vertical strip
// of tabs that can be reordered by drag and drop.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justyntemme/ddtabs/internal/app"
	"github.com/justyntemme/ddtabs/internal/config"
	"github.com/justyntemme/ddtabs/internal/debug"
	"github.com/justyntemme/ddtabs/internal/surface"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	config string
	db     string
	debug  bool
}

func (g *globalFlags) options(args []string) app.Options {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	return app.Options{Root: root, ConfigPath: g.config, DBPath: g.db}
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "ddtabs [dir]",
		Short: "Drag-and-drop tab strip over the subdirectories of dir",
		Long: `ddtabs opens a window with one tab per subdirectory of dir (default: the
current directory). Tabs can be reordered by dragging; the order is saved
and restored on the next start.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.debug {
				debug.EnableAll()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			manageConsole(g.debug)
			app.Main(g.options(args))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.config, "config", "", "config file (default ~/.config/ddtabs/config.json)")
	root.PersistentFlags().StringVar(&g.db, "db", "", `database file (default ~/.config/ddtabs/ddtabs.db, "-" disables persistence)`)
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable every debug log category (debug builds only)")

	root.AddCommand(newStateCommand(g), newDropCommand(g), newConfigCommand(g))
	return root
}

func newStateCommand(g *globalFlags) *cobra.Command {
	var indent string
	cmd := &cobra.Command{
		Use:   "state [dir]",
		Short: "Print the state the tab strip would be drawn from, as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.OpenSession(cmd.Context(), g.options(args))
			if err != nil {
				return err
			}
			defer s.Close()
			_, err = s.Sheet.Push(surface.NewJSONSink(cmd.OutOrStdout(), indent), true)
			return err
		},
	}
	cmd.Flags().StringVar(&indent, "indent", "  ", "JSON indentation, empty for one line")
	return cmd
}

type dropFlags struct {
	index  int
	target string
	vpos   float64
}

func newDropCommand(g *globalFlags) *cobra.Command {
	f := &dropFlags{}
	cmd := &cobra.Command{
		Use:   "drop [dir]",
		Short: "Drop a tab onto another one without opening a window",
		Long: `drop moves the tab at --index as if it had been dragged onto the tab
captioned --target, at the vertical position --vpos (0 is the top edge,
1 the bottom edge). Without --target the tab is dropped past the last tab.
The resulting state is printed as JSON and the order is saved.

Examples:
  ddtabs drop ~/src --index 0 --target web --vpos 0.9
  ddtabs drop ~/src --index 3 --db -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.OpenSession(cmd.Context(), g.options(args))
			if err != nil {
				return err
			}
			defer s.Close()

			dec, err := s.DropAt(f.index, f.target, f.vpos)
			if err != nil {
				return fmt.Errorf("drop: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "decision: %s\n", dec)
			_, err = s.Sheet.Push(surface.NewJSONSink(cmd.OutOrStdout(), "  "), true)
			return err
		},
	}
	cmd.Flags().IntVar(&f.index, "index", 0, "index of the dragged tab")
	cmd.Flags().StringVar(&f.target, "target", "", "caption of the tab dropped onto")
	cmd.Flags().Float64Var(&f.vpos, "vpos", 0.5, "vertical drop position within the target, 0 to 1")
	return cmd
}

func newConfigCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Back up the config file and write fresh defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.config
			if path == "" {
				path = config.ConfigPath()
			}
			backup, err := config.GenerateConfig(path)
			if err != nil {
				return err
			}
			if backup != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Backed up existing config to %s\n", backup)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path := g.config
			if path == "" {
				path = config.ConfigPath()
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		},
	})
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
