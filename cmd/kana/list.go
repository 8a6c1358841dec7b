package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/kana"
)

// summary is the listed view of a post.
type summary struct {
	ID     kana.ID `json:"id"`
	Rating string  `json:"rating,omitempty"`
	Ext    string  `json:"file_ext,omitempty"`
	Size   int64   `json:"file_size,omitempty"`
	MD5    string  `json:"md5,omitempty"`
}

var (
	listJSON     bool
	filterRating string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the posts of the archive",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := archiveRoot()
		if err != nil {
			fatal("Error finding archive", err)
		}

		store, err := kana.LoadArchive(context.Background(), root, options()...)
		if err != nil {
			fatal("Error loading archive", err)
		}

		var filtered []summary
		for m, err := range kana.Posts[summary](store) {
			if err != nil {
				fatal("Error reading post", err)
			}
			if filterRating != "" && m.Data.Rating != filterRating {
				continue
			}
			m.Data.ID = m.ID
			filtered = append(filtered, m.Data)
		}

		if listJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, s := range filtered {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", s.ID, s.Rating, s.Ext, s.Size)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterRating, "rating", "", "Filter posts by rating")
}
