package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every command needs once flags and config are resolved.
type app struct {
	v      *viper.Viper
	cfg    Config
	logger *slog.Logger
}

func (a *app) evaluator() *Evaluator {
	return NewEvaluator(WithLogger(a.logger), WithTolerance(a.cfg.Tolerance))
}

func (a *app) programOptions() ProgramOptions {
	return ProgramOptions{Theta: a.cfg.ThetaValue}
}

// setup reads the configuration and installs the logger.
func (a *app) setup(errOut io.Writer, cfgFile string) error {
	if err := readConfig(a.v, cfgFile); err != nil {
		return err
	}
	cfg, err := loadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	// Using TextHandler for CLI friendliness
	a.logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(a.logger)
	return nil
}

// loadCircuit resolves a catalog program name or a .qasm file path.
func (a *app) loadCircuit(ref string, in io.Reader) (*Circuit, error) {
	if ref == "-" || strings.HasSuffix(ref, ".qasm") {
		return readQASMFile(ref, in)
	}
	p, err := LookupProgram(ref)
	if err != nil {
		return nil, err
	}
	return p.Build(a.programOptions())
}

// render evaluates c and writes it in the configured format.
func (a *app) render(w io.Writer, c *Circuit) error {
	state := a.evaluator().Evaluate(c)
	a.logger.Debug("evaluated circuit", "name", c.Name, "qubits", c.NumQubits(), "gates", c.Len(), "norm", state.Norm())

	r := NewResult(c, state)
	if a.cfg.Compact {
		r.Diagram = DrawCircuit(c, DiagramOptions{Highlight: -1, Compact: true})
	}
	renderer, err := RendererFor(a.cfg.Format, a.cfg.Precision)
	if err != nil {
		return err
	}
	return renderer.Render(w, r)
}

// readQASMFile reads a circuit from path, or from in when path is "-".
func readQASMFile(path string, in io.Reader) (*Circuit, error) {
	var (
		data []byte
		err  error
		name = "stdin"
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read QASM: %w", err)
	}
	c, err := ParseQASM(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Name = name
	return c, nil
}

// newRootCmd builds the command tree. Run without arguments it evaluates the
// default program and prints its state.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var cfgFile string

	root := &cobra.Command{
		Use:   "qdeck-sim",
		Short: "State-vector quantum circuit simulator",
		Long: `qdeck-sim builds small quantum circuits, simulates them on a state vector
and prints the resulting amplitudes, probabilities and Bloch vectors.

Run without arguments it evaluates the "simulator" circuit:
H on qubit 0, X on qubit 1, then CNOT(0, 1).`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr(), cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadCircuit(DefaultProgram, nil)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), c)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.qdeck-sim.yaml)")
	flags.String("format", FormatText, "output format: text, json, yaml")
	flags.Int("precision", 4, "decimals printed for amplitudes and probabilities")
	flags.String("theta", "pi/4", "RX angle of the intro program (e.g. pi/2, 0.5)")
	flags.Bool("compact", false, "pack commuting gates into shared diagram columns")
	flags.BoolP("verbose", "v", false, "enable verbose output")
	for _, name := range []string{"format", "precision", "theta", "compact", "verbose"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(
		newRunCmd(a),
		newQASMCmd(a),
		newExportCmd(a),
		newListCmd(),
		newViewCmd(a),
		newVersionCmd(),
	)
	return root
}
