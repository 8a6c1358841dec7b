package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/kana"
)

var (
	verbose     bool
	archiveDir  string
	workers     int
	infoFormat  string
	overwriting bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kana",
	Short: "Archive booru posts (info, commentary, notes and media) on disk",
	Long: `Kana keeps a local archive of posts. Posts are gathered into stores
that can be merged, diffed, fetched, written and verified as a whole.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&archiveDir, "archive", "a", "", "Archive root (default: nearest archive above the working directory)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "j", 1, "Posts processed in parallel")
	rootCmd.PersistentFlags().StringVar(&infoFormat, "format", ".json", "Format of written info files (.json, .yaml)")
}

// archiveRoot resolves the archive the command works on.
func archiveRoot() (string, error) {
	if archiveDir != "" {
		return archiveDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return kana.FindArchiveRoot(wd)
}

// options returns the store options shared by every command.
func options(extra ...kana.Option) []kana.Option {
	return append([]kana.Option{
		kana.WithLogger(slog.Default()),
		kana.WithWorkers(workers),
		kana.WithFormat(infoFormat),
	}, extra...)
}
