package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	fmtCheck bool
	fmtWrite bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Print a program in canonical form",
	Long: `Pretty-prints a program. Comments are not preserved.

With --check nothing is printed and the command fails when the file is
not already formatted. With --write the file is rewritten in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "fail if the input is not formatted")
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "rewrite the file in place")
}

func runFmt(cmd *cobra.Command, args []string) error {
	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	out, err := current.engine.Format(src)
	if err != nil {
		return fail(cmd, name, src, err)
	}

	switch {
	case fmtCheck:
		if out != src {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s is not formatted\n", name)
			return errReported
		}
		return nil

	case fmtWrite:
		if name == stdinName {
			return fmt.Errorf("--write needs a file argument")
		}
		if out == src {
			return nil
		}
		info, err := os.Stat(name)
		if err != nil {
			return err
		}
		return os.WriteFile(name, []byte(out), info.Mode().Perm())
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
