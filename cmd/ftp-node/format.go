package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aescanero/dago-node-ftp/internal/strutil"
)

var formatCmd = &cobra.Command{
	Use:   "format TEMPLATE [ARG...]",
	Short: "Substitute {} placeholders in TEMPLATE with ARGs",
	Long: `Substitute each {} placeholder in TEMPLATE with the next ARG.

A backslash before {} keeps it literal, two backslashes keep one
backslash and substitute the placeholder.

  ftp-node format 'this is {} for {}' a b      -> this is a for b
  ftp-node format 'this is \{} for {}' a b     -> this is {} for a
  ftp-node format 'this is \\{} for {}' a b    -> this is \a for b`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := make([]any, 0, len(args)-1)
		for _, a := range args[1:] {
			params = append(params, a)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strutil.Format(args[0], params...))
		return nil
	},
}
