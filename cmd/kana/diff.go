package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/kana"
)

var diffCmd = &cobra.Command{
	Use:   "diff <other>",
	Short: "List posts of the archive missing from another archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root, err := archiveRoot()
		if err != nil {
			fatal("Error finding archive", err)
		}

		missing, err := kana.Diff(context.Background(), root, args[0], options()...)
		if err != nil {
			fatal("Error comparing archives", err)
		}
		for _, id := range missing.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
