package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvale/chatscope/internal/analyze"
	"github.com/nvale/chatscope/internal/chat"
	"github.com/nvale/chatscope/internal/config"
	"github.com/nvale/chatscope/internal/render"
	"github.com/nvale/chatscope/internal/store"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <chatKey>",
		Short: "Show the cached analysis report for an indexed chat",
		Args:  cobra.ExactArgs(1),
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

			row, err := db.GetChatByKey(args[0])
			if err != nil {
				return err
			}
			if row == nil {
				return fmt.Errorf("chat not found: %s (run 'chatscope index' first)", args[0])
			}

			var summary analyze.Summary
			if err := json.Unmarshal([]byte(row.Summary), &summary); err != nil {
				return fmt.Errorf("cached summary: %w", err)
			}

			streak, err := streakFromStore(db, args[0])
			if err != nil {
				return err
			}

			fmt.Print(render.RenderSummary(row.Title, &summary, streak))
			return nil
		},
	}
}

// streakFromStore rebuilds message timestamps from the index and computes the
// longest run of consecutive active days.
func streakFromStore(db *store.DB, chatKey string) (*analyze.Streak, error) {
	rows, err := db.GetMessages(chatKey)
	if err != nil {
		return nil, err
	}

	messages := make([]chat.Message, 0, len(rows))
	for _, r := range rows {
		ts, err := time.Parse("2006-01-02T15:04:05Z", r.Ts)
		if err != nil {
			continue
		}
		messages = append(messages, chat.Message{Timestamp: ts, Sender: r.Sender, Text: r.Text})
	}

	return analyze.LongestStreak(analyze.DailyCounts(messages)), nil
}
