package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the token stream",
	Long: `Prints one token per line as KIND 'lexeme' line:column.

Examples:
  mypl lex prog.mypl
  echo 'var x = 1;' | mypl lex`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	toks, err := current.engine.Tokenize(src)
	if err != nil {
		return fail(cmd, name, src, err)
	}
	out := cmd.OutOrStdout()
	for _, tok := range toks {
		fmt.Fprintln(out, tok.String())
	}
	return nil
}
