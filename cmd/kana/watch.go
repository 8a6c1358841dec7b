package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/kana/pkg/adapters/fs"
	"github.com/aretw0/kana/pkg/adapters/lifecycle"
	"github.com/aretw0/kana/pkg/core"
)

var watchOnly []string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print post changes of the archive as they happen",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := archiveRoot()
		if err != nil {
			fatal("Error finding archive", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		archive := fs.NewArchive(fs.Config{Path: root, Logger: slog.Default()})
		events, err := archive.Watch(ctx)
		if err != nil {
			fatal("Error watching archive", err)
		}

		var types []core.EventType
		for _, t := range watchOnly {
			et := core.EventType(strings.ToUpper(t))
			switch et {
			case core.EventCreate, core.EventModify, core.EventDelete:
				types = append(types, et)
			default:
				fatal("Error", fmt.Errorf("unknown event type %q (create, modify, delete)", t))
			}
		}

		src := lifecycle.NewSource(events, lifecycle.WithTypes(types...))
		if err := src.Start(ctx); err != nil {
			fatal("Error starting watcher", err)
		}

		slog.Info("watching archive", "path", root)
		for e := range src.Events() {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringSliceVar(&watchOnly, "only", nil, "Event types to print (create, modify, delete)")
}
