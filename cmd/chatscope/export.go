package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvale/chatscope/internal/config"
	"github.com/nvale/chatscope/internal/store"
)

func exportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <chatKey>",
		Short: "Write the cached analysis summary as JSON",
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

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, []byte(row.Summary), "", "  "); err != nil {
				return fmt.Errorf("cached summary: %w", err)
			}
			pretty.WriteByte('\n')

			if outPath == "" {
				_, err := os.Stdout.Write(pretty.Bytes())
				return err
			}

			if err := os.WriteFile(outPath, pretty.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default stdout)")

	return cmd
}
