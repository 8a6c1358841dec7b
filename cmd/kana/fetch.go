package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/kana"
)

var fetchFrom string

var fetchCmd = &cobra.Command{
	Use:   "fetch <ids|info files>...",
	Short: "Fetch posts from another archive into this one",
	Long: `Fetch builds a store from the arguments (ids, comma separated id lists
or info file globs), fetches info, commentary, notes and media from the
source archive and writes everything into the archive.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if fetchFrom == "" {
			fatal("Error", fmt.Errorf("--from is required"))
		}
		root, err := archiveRoot()
		if err != nil {
			fatal("Error finding archive", err)
		}

		values := make([]any, len(args))
		for i, a := range args {
			values[i] = a
		}

		store, err := kana.Fetch(context.Background(), values, options(
			kana.WithSourceArchive(fetchFrom),
			kana.WithArchive(root),
		)...)
		if err != nil {
			fatal("Error fetching posts", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d posts into %s\n", store.Len(), root)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "Archive to fetch posts from")
}
