package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"blogforge/worker"

	"github.com/spf13/cobra"
)

var serveInterval string

// serveCmd runs the scheduled post worker until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduled post generator",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		a, cleanup, err := newAssembler(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		interval := 24 * time.Hour
		if serveInterval != "" {
			interval, err = time.ParseDuration(serveInterval)
			if err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		slog.Info("serve: starting post worker", "interval", interval, "posts_dir", cfg.Site.PostsDir)
		m := worker.NewManager(&worker.PostWorker{Assembler: a, Interval: interval})
		return m.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveInterval, "interval", "", "time between posts, e.g. 24h (default 24h)")
}
