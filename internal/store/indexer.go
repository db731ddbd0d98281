package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nvale/chatscope/internal/analyze"
	"github.com/nvale/chatscope/internal/chat"
	"github.com/nvale/chatscope/internal/scan"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// IndexAll walks the export root, analyzes new or changed exports and writes
// chats, messages and cached summaries to the database. Unchanged files
// (same mtime and size) are skipped; chats whose files disappeared are
// pruned.
func IndexAll(db *DB, root string, analyzer *analyze.Analyzer, topWords, topEmojis int, logger *log.Logger) (Stats, error) {
	var stats Stats

	files, err := scan.ScanRoot(root)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	// track which chats we see, for pruning
	seenKeys := make(map[string]struct{})

	for _, fi := range files {
		key := ChatKey(root, fi.Path)
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, fi.Mtime, fi.Size)
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		if err := indexChat(db, analyzer, key, fi, topWords, topEmojis); err != nil {
			stats.Errors++
			logger.Warn("index failed", "file", fi.Path, "err", err)
			continue
		}
		stats.Updated++
	}

	// prune chats whose files no longer exist
	pruned, err := pruneChats(db, seenKeys)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

// ChatKey derives a stable chat identifier from the export path, relative to
// the root with the extension dropped.
func ChatKey(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

// ChatTitle derives a display title from an export filename, stripping the
// standard export prefix.
func ChatTitle(path string) string {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title = strings.TrimPrefix(title, "WhatsApp Chat with ")
	return title
}

func needsUpdate(db *DB, chatKey string, mtime, size int64) (bool, error) {
	info, err := db.GetChatInfo(chatKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new chat
	}
	return info.Mtime != mtime || info.Size != size, nil
}

func indexChat(db *DB, analyzer *analyze.Analyzer, key string, fi scan.FileInfo, topWords, topEmojis int) error {
	raw, err := os.ReadFile(fi.Path)
	if err != nil {
		return err
	}

	messages := chat.Parse(string(raw))
	summary, err := analyzer.Analyze(string(raw), topWords, topEmojis)
	if err != nil {
		if errors.Is(err, analyze.ErrNoMessages) {
			// not a chat export; leave it out of the index
			return nil
		}
		return err
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	// delete old data first
	if err := db.DeleteChat(key); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	firstDay, lastDay := daySpan(summary)
	_, err = tx.Exec(
		`INSERT INTO chats (chat_key, file_path, title, first_day, last_day, total_messages, summary, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key,
		fi.Path,
		ChatTitle(fi.Path),
		firstDay,
		lastDay,
		summary.TotalMessages,
		string(summaryJSON),
		fi.Mtime,
		fi.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (chat_key, msg_id, ts, sender, text, line_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range messages {
		_, err := stmt.Exec(
			key,
			i,
			m.Timestamp.Format("2006-01-02T15:04:05Z"),
			m.Sender,
			m.Text,
			m.Line,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func daySpan(summary *analyze.Summary) (first, last string) {
	if len(summary.Timeline) == 0 {
		return "", ""
	}
	return summary.Timeline[0].Label, summary.Timeline[len(summary.Timeline)-1].Label
}

func pruneChats(db *DB, seenKeys map[string]struct{}) (int, error) {
	allKeys, err := db.AllChatKeys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key := range allKeys {
		if _, ok := seenKeys[key]; !ok {
			if err := db.DeleteChat(key); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
