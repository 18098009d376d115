package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"blogforge/internal/markdown"

	"github.com/spf13/cobra"
)

// postsCmd groups content-tree inspection subcommands.
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Inspect generated posts",
}

// postsListCmd scans the posts directory and prints front matter summaries.
var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts in the content tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		entries, err := os.ReadDir(cfg.Site.PostsDir)
		if err != nil {
			return fmt.Errorf("read posts dir: %w", err)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
		for _, name := range names {
			doc, err := markdown.ParseFile(filepath.Join(cfg.Site.PostsDir, name))
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skip %s: %v\n", name, err)
				continue
			}
			title, _ := doc.Frontmatter["title"].(string)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, title)
		}
		return nil
	},
}

// postsPreviewCmd renders a post body to HTML on stdout.
var postsPreviewCmd = &cobra.Command{
	Use:   "preview <markdown_path>",
	Short: "Render a post body to HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := markdown.ParseFile(args[0])
		if err != nil {
			return err
		}
		html, err := markdown.RenderHTML(doc.Body)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), html)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsPreviewCmd)
}
