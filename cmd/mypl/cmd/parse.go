package cmd

import (
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Dump the syntax tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	prog, err := current.engine.Parse(src)
	if err != nil {
		return fail(cmd, name, src, err)
	}
	_, err = pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", prog)
	return err
}
