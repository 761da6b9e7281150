package main

import (
	"fmt"

	"github.com/dhamidi/nixel/syntax"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a Nix file and print one token per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			offset := 0
			for _, tok := range syntax.Tokenize(string(data)) {
				fmt.Printf("%s@%d..%d %q\n", tok.Kind, offset, offset+len(tok.Text), tok.Text)
				offset += len(tok.Text)
			}
			return nil
		},
	}
}
