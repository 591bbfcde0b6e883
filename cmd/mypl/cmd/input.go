package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const stdinName = "<stdin>"

// readSource returns the program named by args, reading stdin for "-" or no
// argument
func readSource(cmd *cobra.Command, args []string) (name, src string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return stdinName, string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(data), nil
}

// fail renders err against src and returns errReported, or err itself when
// it is not a language diagnostic
func fail(cmd *cobra.Command, name, src string, err error) error {
	if out, ok := current.render.Error(name, src, err); ok {
		fmt.Fprint(cmd.ErrOrStderr(), out)
		return errReported
	}
	return err
}
