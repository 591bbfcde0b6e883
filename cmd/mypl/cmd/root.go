package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/mypl/internal/lang/checker"
	"github.com/msto63/mypl/internal/lang/frontend"
	"github.com/msto63/mypl/internal/lang/printer"
	"github.com/msto63/mypl/pkg/core/config"
	mypllog "github.com/msto63/mypl/pkg/core/log"
	"github.com/msto63/mypl/pkg/core/logging"
	"github.com/msto63/mypl/pkg/core/version"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
	noColor   bool
)

// errReported marks a failure whose diagnostic was already written to stderr
var errReported = errors.New("reported")

// app is the state shared by all subcommands, set up before each run
type app struct {
	cfg    *config.Config
	logger *mypllog.Logger
	engine *frontend.Engine
	render renderer
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "mypl",
	Short: "MyPL - Front end toolchain",
	Long: `mypl lexes, parses, type-checks and formats MyPL programs.

Every file argument may be "-" or omitted to read from stdin.

Commands:
  lex      - Print the token stream
  parse    - Dump the syntax tree
  check    - Type-check a program (optionally on every save)
  fmt      - Print a program in canonical form
  inspect  - Browse tokens, tree and types in a terminal UI`,
	Version:           version.Toolchain,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MYPL_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, text, console, logfmt)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.General.LogLevel
	if verbose {
		level = "debug"
	}
	format := cfg.General.LogFormat
	if logFormat != "" {
		format = logFormat
	}
	if err := logging.Validate(level, format); err != nil {
		return fmt.Errorf("--log-format: %w", err)
	}

	logger := logging.NewLogger(logging.LoggerConfig{
		ServiceName: "mypl",
		Level:       level,
		Format:      format,
		Output:      cmd.ErrOrStderr(),
	})
	mypllog.SetDefault(logger)

	builtins, err := loadBuiltins(cfg.Checker.BuiltinsFile)
	if err != nil {
		return err
	}

	engine, err := frontend.New(frontend.Options{
		Logger:   logger,
		Builtins: builtins,
		Printer:  printer.Options{Indent: cfg.Output.Indent},
	})
	if err != nil {
		return err
	}

	current = &app{
		cfg:    cfg,
		logger: logger,
		engine: engine,
		render: renderer{color: cfg.Output.Color && !noColor},
	}
	logger.Debug("Configuration loaded", mypllog.Fields{"config": cfgFile, "level": level, "format": format})
	return nil
}

// loadBuiltins reads a built-in table; an empty path selects the defaults
func loadBuiltins(path string) (*checker.Builtins, error) {
	if path == "" {
		return checker.DefaultBuiltins(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("builtins file: %w", err)
	}
	defer f.Close()

	b, err := checker.LoadBuiltins(f)
	if err != nil {
		return nil, fmt.Errorf("builtins file %s: %w", path, err)
	}
	return b, nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
