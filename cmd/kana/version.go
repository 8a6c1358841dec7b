package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/kana"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kana",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kana version %s\n", strings.TrimSpace(kana.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
