package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/kana"
	"github.com/aretw0/kana/pkg/core"
)

var verifyBy string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check archived media against the post infos",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := archiveRoot()
		if err != nil {
			fatal("Error finding archive", err)
		}

		op := core.OpVerifyMedia
		switch verifyBy {
		case "":
		case "md5":
			op = core.OpVerifyMediaByMD5
		case "filesize":
			op = core.OpVerifyMediaByFilesize
		default:
			fatal("Error", fmt.Errorf("unknown check %q (md5, filesize)", verifyBy))
		}

		store, err := kana.Verify(context.Background(), root, op, options()...)
		if err != nil {
			fatal("Verification failed", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d posts verified\n", store.Len())
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyBy, "by", "", "Run a single check (md5, filesize)")
}
