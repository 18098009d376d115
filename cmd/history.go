package cmd

import (
	"context"
	"fmt"
	"time"

	"blogforge/internal/redisclient"
	"blogforge/internal/storage"

	"github.com/spf13/cobra"
)

var historyCount int

// historyCmd prints recently recorded posts from the Redis history store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently generated posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("history requires redis: set redis.addr in config.yaml")
		}
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewHistoryStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		entries, err := store.Recent(ctx, historyCount)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recorded posts.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\ttext=%s image=%s\n", e.Date, e.Title, e.Origin, e.Cover)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyCount, "count", "n", 10, "number of entries to show")
}
