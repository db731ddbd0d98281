package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nvale/chatscope/internal/analyze"
	"github.com/nvale/chatscope/internal/config"
	"github.com/nvale/chatscope/internal/search"
	"github.com/nvale/chatscope/internal/store"
	"github.com/nvale/chatscope/internal/tui"
)

func listCmd() *cobra.Command {
	var since string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse all chats sorted by last activity",
		Long:  `Opens a TUI panel showing all indexed chats sorted by last activity (newest first). Type to search across chat content.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			store.IndexAll(db, cfg.ExportRoot, analyze.New(), cfg.TopWords, cfg.TopEmojis, log.New(os.Stderr))

			opts := search.Options{
				Since: since,
				Limit: limit,
			}

			return tui.RunList(db, opts)
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Filter chats active since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
