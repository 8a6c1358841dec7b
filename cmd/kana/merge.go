package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/kana"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <source>...",
	Short: "Merge archives into this one",
	Long: `Merge unions the given archives, in order, into the archive. When a post
exists in several sources the last one wins.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root, err := archiveRoot()
		if err != nil {
			fatal("Error finding archive", err)
		}

		store, err := kana.Merge(context.Background(), root, args, overwriting, options()...)
		if err != nil {
			fatal("Error merging archives", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Merged %d posts into %s\n", store.Len(), root)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().BoolVar(&overwriting, "overwrite", false, "Replace files already in the archive")
}
