package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvale/chatscope/internal/analyze"
	"github.com/nvale/chatscope/internal/config"
	"github.com/nvale/chatscope/internal/render"
	"github.com/nvale/chatscope/internal/store"
)

func analyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <export.txt>",
		Short: "Analyze a single chat export without indexing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			summary, err := analyze.New().Analyze(string(raw), cfg.TopWords, cfg.TopEmojis)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			streak := analyze.LongestStreakFromRaw(string(raw))
			fmt.Print(render.RenderSummary(store.ChatTitle(args[0]), summary, streak))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full summary as JSON")

	return cmd
}
