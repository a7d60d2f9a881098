package main

import (
	"fmt"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const version = "0.1.0-dev"

// newRunCmd evaluates a catalog program.
func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run [program]",
		Short: "Evaluate a built-in program and print its state",
		Example: `  qdeck-sim run
  qdeck-sim run intro --theta pi/2
  qdeck-sim run ghz --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := DefaultProgram
			if len(args) > 0 {
				name = args[0]
			}
			p, err := LookupProgram(name)
			if err != nil {
				return err
			}
			c, err := p.Build(a.programOptions())
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), c)
		},
	}
}

// newQASMCmd evaluates an OpenQASM file.
func newQASMCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "qasm <file|->",
		Short: "Evaluate an OpenQASM 2.0 file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readQASMFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), c)
		},
	}
}

// newExportCmd prints a catalog program as QASM.
func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [program]",
		Short: "Print a built-in program as OpenQASM 2.0",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := DefaultProgram
			if len(args) > 0 {
				name = args[0]
			}
			c, err := a.loadCircuit(name, cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), c.QASM())
			return err
		},
	}
}

// newListCmd lists the catalog.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range Programs() {
				fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Description)
			}
			return tw.Flush()
		},
	}
}

// newViewCmd opens the interactive viewer.
func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view [program|file.qasm]",
		Short: "Step through a circuit interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := DefaultProgram
			if len(args) > 0 {
				ref = args[0]
			}
			c, err := a.loadCircuit(ref, cmd.InOrStdin())
			if err != nil {
				return err
			}
			m := newModel(c, a.evaluator(), ViewerOptions{
				Precision: a.cfg.Precision,
				SavePath:  a.cfg.SavePath,
				Compact:   a.cfg.Compact,
			})
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("viewer: %w", err)
			}
			return nil
		},
	}
}

// newVersionCmd implements the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of qdeck-sim",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qdeck-sim version %s\n", version)
		},
	}
}
