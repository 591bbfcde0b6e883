package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/mypl/internal/watcher"
	mypllog "github.com/msto63/mypl/pkg/core/log"
)

var checkWatch bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check a program",
	Long: `Parses and type-checks a program and prints ok with the run id.

With --watch the file is checked again every time it is saved, until
interrupted with Ctrl+C. The delay between a save and the check is set
by watch.debounce in the config file.

Examples:
  mypl check prog.mypl
  mypl check --watch prog.mypl
  cat prog.mypl | mypl check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "re-check on every save")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkWatch {
		if len(args) == 0 || args[0] == "-" {
			return fmt.Errorf("--watch needs a file argument")
		}
		return watchCheck(cmd, args[0])
	}

	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	return checkOnce(cmd.Context(), cmd, name, src)
}

func checkOnce(ctx context.Context, cmd *cobra.Command, name, src string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := current.engine.Compile(ctx, name, src)
	if err != nil {
		return fail(cmd, name, src, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (run %s, %s)\n", current.render.OK(), res.Name, res.RunID, res.Duration)
	return nil
}

func watchCheck(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(path, current.cfg.Watch.Debounce.Duration, current.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	recheck := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			current.logger.WarnWithErr("Cannot read watched file", err, mypllog.Fields{"file": path})
			return
		}
		if err := checkOnce(ctx, cmd, path, string(data)); err != nil && !errors.Is(err, errReported) {
			printError(cmd.ErrOrStderr(), err)
		}
	}

	recheck()
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s, press Ctrl+C to stop\n", path)
	return w.Run(ctx, recheck)
}
