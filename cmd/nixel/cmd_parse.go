package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/nixel/ast"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var errorsOnly bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a Nix file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			parse := ast.ParseRoot(string(data))
			if !errorsOnly {
				fmt.Print(parse.Syntax().Dump())
			}
			for _, e := range parse.Errors() {
				fmt.Fprintln(os.Stderr, e)
			}
			if n := len(parse.Errors()); n > 0 {
				return fmt.Errorf("%d parse errors", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "suppress the tree dump and report errors only")

	return cmd
}
