package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/nvale/chatscope/internal/store"
)

type Result struct {
	ChatKey  string
	MsgID    int
	Title    string
	Ts       string
	Sender   string
	Snippet  string
	LineNum  int
	FilePath string
	Rank     float64
}

type Options struct {
	Query  string
	Sender string // "" = all senders
	Since  string // "" = no filter, e.g. "2024-01-01"
	Limit  int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	// find rune position of idx
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

func Search(db *store.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	// Fetch more results before dedup so we still have enough after
	origLimit := opts.Limit
	opts.Limit = origLimit * 3

	var results []Result
	var err error
	if containsCJK(opts.Query) {
		results, err = searchLike(db, opts)
	} else {
		results, err = searchFTS(db, opts)
	}
	if err != nil {
		return nil, err
	}

	// Deduplicate: keep only the best-ranked result per chat
	seen := make(map[string]bool)
	var deduped []Result
	for _, r := range results {
		if seen[r.ChatKey] {
			continue
		}
		seen[r.ChatKey] = true
		deduped = append(deduped, r)
		if len(deduped) >= origLimit {
			break
		}
	}
	return deduped, nil
}

func searchFTS(db *store.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []interface{}

	// FTS match
	conditions = append(conditions, "messages_fts MATCH ?")
	args = append(args, opts.Query)

	// sender filter
	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}

	// since filter
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.chat_key,
			m.msg_id,
			c.title,
			m.ts,
			m.sender,
			snippet(messages_fts, 0, '>>>','<<<', '...', 40) as snip,
			m.line_number,
			c.file_path,
			bm25(messages_fts, 1.0) as rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN chats c ON m.chat_key = c.chat_key
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *store.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []interface{}

	// LIKE match for CJK substring search
	conditions = append(conditions, "m.text LIKE ?")
	args = append(args, "%"+opts.Query+"%")

	// sender filter
	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}

	// since filter
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.chat_key,
			m.msg_id,
			c.title,
			m.ts,
			m.sender,
			m.text,
			m.line_number,
			c.file_path
		FROM messages m
		JOIN chats c ON m.chat_key = c.chat_key
		WHERE %s
		ORDER BY m.ts DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(
			&r.ChatKey, &r.MsgID, &r.Title, &r.Ts, &r.Sender,
			&fullText, &r.LineNum, &r.FilePath,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		r.Rank = 0
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.ChatKey, &r.MsgID, &r.Title, &r.Ts, &r.Sender,
			&r.Snippet, &r.LineNum, &r.FilePath, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListAll returns one Result per indexed chat, most recently active first,
// for browsing without a query. MsgID is -1 so previews start at the top.
func ListAll(db *store.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	var conditions []string
	var args []interface{}
	conditions = append(conditions, "1=1")
	if opts.Since != "" {
		conditions = append(conditions, "last_day >= ?")
		args = append(args, opts.Since)
	}
	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT chat_key, title, first_day, last_day, total_messages, file_path
		FROM chats
		WHERE %s
		ORDER BY last_day DESC, chat_key ASC
		LIMIT ?
	`, where)
	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var firstDay, lastDay string
		var total int
		if err := rows.Scan(&r.ChatKey, &r.Title, &firstDay, &lastDay, &total, &r.FilePath); err != nil {
			return nil, err
		}
		r.MsgID = -1
		r.Ts = lastDay
		r.Snippet = fmt.Sprintf("%d messages, %s .. %s", total, firstDay, lastDay)
		results = append(results, r)
	}
	return results, rows.Err()
}

type ChatSummary struct {
	ChatKey       string
	FilePath      string
	Title         string
	FirstDay      string
	LastDay       string
	TotalMessages int
}

// ListChats returns all indexed chats, most recently active first.
func ListChats(db *store.DB) ([]ChatSummary, error) {
	rows, err := db.Raw().Query(`
		SELECT chat_key, file_path, title, first_day, last_day, total_messages
		FROM chats
		ORDER BY last_day DESC, chat_key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []ChatSummary
	for rows.Next() {
		var c ChatSummary
		if err := rows.Scan(&c.ChatKey, &c.FilePath, &c.Title, &c.FirstDay, &c.LastDay, &c.TotalMessages); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
