package chat

import "time"

// Message is one chat message reconstructed from an export. Text may contain
// embedded newlines when the export wrapped the message across lines.
// Messages are not guaranteed to arrive in chronological order (multiple
// export files may be concatenated); callers that need time order must sort.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`

	// Line is the 1-based input line of the message header. It is tooling
	// metadata (editor jump, index), not part of the summary output.
	Line int `json:"-"`
}
