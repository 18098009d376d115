package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	genCount    int
	genInterval string
)

// generateCmd creates one or more posts and writes them to the content tree.
var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a blog post (random topic when none is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		a, cleanup, err := newAssembler(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()

		if len(args) == 1 {
			rec, err := a.CreatePost(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s (text=%s image=%s)\n",
				filepath.Join(cfg.Site.PostsDir, rec.Filename()), rec.Origin, rec.Image.Origin)
			return nil
		}

		count := genCount
		if count <= 0 {
			count = cfg.Generate.Count
		}
		intervalStr := genInterval
		if intervalStr == "" {
			intervalStr = cfg.Generate.Interval
		}
		interval, err := time.ParseDuration(intervalStr)
		if err != nil {
			return fmt.Errorf("invalid interval: %w", err)
		}
		if err := a.Run(ctx, count, interval); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d post(s) under %s\n", count, cfg.Site.PostsDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 0, "number of posts to generate (default from config)")
	generateCmd.Flags().StringVarP(&genInterval, "interval", "i", "", "delay between posts, e.g. 30s (default from config)")
}
