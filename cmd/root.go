package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/treasuremap/treasure-sim/sim"
	"github.com/treasuremap/treasure-sim/sim/mapfile"
	"github.com/treasuremap/treasure-sim/sim/results"
	"github.com/treasuremap/treasure-sim/sim/scenario"
	"github.com/treasuremap/treasure-sim/sim/trace"
)

// Input formats.
const (
	formatText = "text"
	formatYAML = "yaml"
)

var (
	// CLI flags for the run command
	inputPath      string // Map file to simulate
	outputPath     string // Where to write the end state (stdout when empty)
	inputFormat    string // text, yaml, or empty to infer from the extension
	configPath     string // Optional YAML run configuration
	conflictPolicy string // Conflict policy override
	maxTicks       int    // Tick budget override
	finishedOccupy bool   // Finished agents keep claiming their cell
	traceOut       string // Path of the compressed per-tick trace
	resultsDB      string // SQLite database that records finished runs
	logLevel       string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "treasure-sim",
	Short: "Tick-based simulator for adventurers on a treasure map",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a map to completion and write the end state",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(configPath, cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		out, closeOut, err := openOutput(outputPath)
		if err != nil {
			logrus.Fatalf("Cannot open output: %v", err)
		}
		err = runSimulation(cmd.Context(), runOptions{
			Input:     inputPath,
			Format:    inputFormat,
			Config:    cfg,
			TraceOut:  traceOut,
			ResultsDB: resultsDB,
		}, out)
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

type runOptions struct {
	Input     string
	Format    string
	Config    sim.Config
	TraceOut  string
	ResultsDB string
}

// runSimulation loads the input, runs it and writes the end state to out.
// A stalled run still writes its end state, records it, and returns the
// stall error.
func runSimulation(ctx context.Context, opts runOptions, out io.Writer) error {
	scn, err := loadScenario(opts.Input, opts.Format)
	if err != nil {
		return err
	}
	if opts.TraceOut != "" {
		opts.Config.Trace = true
	}
	s, err := sim.NewSimulator(scn, opts.Config)
	if err != nil {
		return fmt.Errorf("invalid map %s: %w", opts.Input, err)
	}

	logrus.Infof("Starting simulation: %dx%d map, %d agents, policy=%s, max ticks=%d",
		s.Grid.Width(), s.Grid.Height(), len(s.Agents), policyName(opts.Config), opts.Config.MaxTicks)
	res, runErr := s.Run()
	if runErr != nil && !errors.Is(runErr, sim.ErrStalled) {
		return runErr
	}
	logrus.Infof("Run ended after %d ticks; %d of %d treasures collected",
		res.Ticks, res.Collected, s.InitialTreasures())

	if err := mapfile.WriteResult(out, res); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	if opts.TraceOut != "" {
		if err := writeTrace(opts.TraceOut, s.Trace); err != nil {
			return err
		}
	} else if s.Trace != nil {
		summary := trace.Summarize(s.Trace)
		logrus.Infof("Trace: %d decisions over %d ticks, %d contested", summary.TotalDecisions, summary.Ticks, summary.Contested)
	}
	if opts.ResultsDB != "" {
		if err := recordRun(ctx, opts, res, runErr); err != nil {
			return err
		}
	}
	return runErr
}

func writeTrace(path string, st *trace.SimulationTrace) error {
	w, written, err := trace.CreateJSONLZstdFile(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := w.WriteTrace(st); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing trace file: %w", err)
	}
	summary := trace.Summarize(st)
	logrus.Infof("Trace written to %s: %d decisions, %d moved, %d blocked, %d contested",
		written, summary.TotalDecisions, summary.Moved, summary.Blocked, summary.Contested)
	return nil
}

func recordRun(ctx context.Context, opts runOptions, res *sim.Result, runErr error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := results.Open(opts.ResultsDB)
	if err != nil {
		return fmt.Errorf("opening results db: %w", err)
	}
	defer store.Close()
	id, err := store.RecordRun(ctx, results.NewRun(filepath.Base(opts.Input), policyName(opts.Config), res, runErr))
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	logrus.Infof("Recorded run %d in %s", id, opts.ResultsDB)
	return nil
}

func policyName(cfg sim.Config) string {
	if cfg.ConflictPolicy == "" {
		return sim.PolicyBlockAll
	}
	return cfg.ConflictPolicy
}

// resolveConfig starts from the config file (or defaults) and applies every
// flag the user set explicitly.
func resolveConfig(path string, flags *pflag.FlagSet) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if path != "" {
		loaded, err := sim.LoadConfig(path)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = *loaded
	}
	var err error
	if flags.Changed("conflict-policy") {
		if cfg.ConflictPolicy, err = flags.GetString("conflict-policy"); err != nil {
			return sim.Config{}, err
		}
	}
	if flags.Changed("max-ticks") {
		if cfg.MaxTicks, err = flags.GetInt("max-ticks"); err != nil {
			return sim.Config{}, err
		}
	}
	if flags.Changed("finished-occupy") {
		if cfg.FinishedAgentsOccupy, err = flags.GetBool("finished-occupy"); err != nil {
			return sim.Config{}, err
		}
	}
	return cfg, cfg.Validate()
}

// detectFormat returns the explicit format, or infers it from the extension.
func detectFormat(path, explicit string) (string, error) {
	switch strings.ToLower(explicit) {
	case formatText, formatYAML:
		return strings.ToLower(explicit), nil
	case "":
	default:
		return "", fmt.Errorf("unknown format %q; valid: %s, %s", explicit, formatText, formatYAML)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return formatText, nil
	}
}

func loadScenario(path, format string) (*sim.Scenario, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file given (--input)")
	}
	f, err := detectFormat(path, format)
	if err != nil {
		return nil, err
	}
	if f == formatYAML {
		return scenario.Load(path)
	}
	return mapfile.ParseFile(path)
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// registerPolicyFlags binds the flags that override the run configuration file.
func registerPolicyFlags(fs *pflag.FlagSet) {
	fs.StringVar(&conflictPolicy, "conflict-policy", sim.PolicyBlockAll, "Conflict policy: block-all or first-wins")
	fs.IntVar(&maxTicks, "max-ticks", sim.DefaultMaxTicks, "Maximum number of ticks before the run is reported as stalled")
	fs.BoolVar(&finishedOccupy, "finished-occupy", false, "Finished agents keep claiming their cell in conflict checks")
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Map file (text or YAML)")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file for the end state (default stdout)")
	runCmd.Flags().StringVar(&inputFormat, "format", "", "Input format: text or yaml (default: from extension)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run configuration file")
	registerPolicyFlags(runCmd.Flags())
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write per-tick decisions to this path (.jsonl.zst)")
	runCmd.Flags().StringVar(&resultsDB, "results-db", "", "Record the finished run in this SQLite database")
	_ = runCmd.MarkFlagRequired("input")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
}
