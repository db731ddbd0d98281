package chat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	// [19/08/2019, 5:04:35 PM] Name: text  (optional BOM/LRM prefix)
	reBracket = regexp.MustCompile(`^[\x{FEFF}\x{200E}]?\[(?P<date>\d{1,2}[/.]\d{1,2}[/.]\d{2,4}),\s+(?P<time>[^\]]+)\]\s+(?P<name>[^:]+):\s+(?P<msg>.*)$`)

	// 19/08/2019, 17:04 - Name: text
	reHyphen = regexp.MustCompile(`^(?P<date>\d{1,2}[/.]\d{1,2}[/.]\d{2,4}),\s+(?P<time>\d{1,2}:\d{2}(?::\d{2})?(?:[\s\x{00A0}\x{202F}]*[AP]M)?)\s+-\s+(?P<name>[^:]+):\s+(?P<msg>.*)$`)
)

// MatchHeader reports whether line opens a new message, returning the raw
// date, time, sender and text captures. Shared with the raw-text streak fast
// path so both see exactly the same header set.
func MatchHeader(line string) (date, clock, name, text string, ok bool) {
	m := reBracket.FindStringSubmatch(line)
	if m == nil {
		m = reHyphen.FindStringSubmatch(line)
	}
	if m == nil {
		return "", "", "", "", false
	}
	return m[1], m[2], m[3], m[4], true
}

// Timestamp layout chains, tried in order. 24h layouts come before 12h, and
// the preferred day/month order comes first within each group.
var (
	layoutsDot = []string{
		"2.1.2006, 15:04:05", "2.1.2006, 15:04", "2.1.06, 15:04:05", "2.1.06, 15:04",
		"2.1.2006, 3:04:05 PM", "2.1.2006, 3:04 PM", "2.1.06, 3:04:05 PM", "2.1.06, 3:04 PM",
	}
	layoutsDayFirst = []string{
		"2/1/2006, 15:04:05", "2/1/2006, 15:04", "2/1/06, 15:04:05", "2/1/06, 15:04",
	}
	layoutsMonthFirst = []string{
		"1/2/2006, 15:04:05", "1/2/2006, 15:04", "1/2/06, 15:04:05", "1/2/06, 15:04",
	}
	layoutsDayFirst12 = []string{
		"2/1/2006, 3:04:05 PM", "2/1/2006, 3:04 PM", "2/1/06, 3:04:05 PM", "2/1/06, 3:04 PM",
	}
	layoutsMonthFirst12 = []string{
		"1/2/2006, 3:04:05 PM", "1/2/2006, 3:04 PM", "1/2/06, 3:04:05 PM", "1/2/06, 3:04 PM",
	}
)

// ParseTimestamp parses the date and time captures of a header. When the
// separator is "/" and both leading components are <= 12 the date is
// ambiguous; the historical default is month-first. A ">12" component on
// either side settles it. Dot-separated dates are always day-first.
func ParseTimestamp(date, clock string) (time.Time, bool) {
	// Exports put NBSP or narrow NBSP before the meridiem marker.
	cleaned := strings.Map(func(r rune) rune {
		if r == '\u202F' || r == '\u00A0' {
			return ' '
		}
		return r
	}, clock)
	cleaned = strings.ToUpper(strings.TrimSpace(cleaned))

	var layouts []string
	switch {
	case strings.Contains(date, "."):
		layouts = layoutsDot
	case preferMonthFirst(date):
		layouts = concat(layoutsMonthFirst, layoutsDayFirst, layoutsMonthFirst12, layoutsDayFirst12)
	default:
		layouts = concat(layoutsDayFirst, layoutsMonthFirst, layoutsDayFirst12, layoutsMonthFirst12)
	}

	// Two-digit years normalize to 2000+; Go's "06" maps 69-99 to 19xx, so
	// those need a century shift. Four-digit years stay as written.
	sepIdx := strings.LastIndexAny(date, "./")
	twoDigitYear := sepIdx >= 0 && len(date)-sepIdx-1 <= 2

	input := date + ", " + cleaned
	for _, layout := range layouts {
		t, err := time.Parse(layout, input)
		if err != nil {
			continue
		}
		if twoDigitYear && t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}
		return t, true
	}
	return time.Time{}, false
}

func preferMonthFirst(date string) bool {
	parts := strings.SplitN(date, "/", 3)
	if len(parts) < 2 {
		return false
	}
	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return true
	}
	if first > 12 {
		return false
	}
	if second > 12 {
		return true
	}
	return true // ambiguous: keep the historical month-first default
}

func concat(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Directional-formatting characters stripped from sender names.
func isDirectionalMark(r rune) bool {
	switch r {
	case '\u202A', '\u202B', '\u202C', '\u202D', '\u202E', '\u202F',
		'\u2060', '\u2066', '\u2067', '\u2068', '\u2069':
		return true
	}
	return false
}

// cleanSender trims whitespace and BOM/direction marks from the edges, then
// strips control and directional-formatting characters from the rest.
func cleanSender(name string) string {
	trimmed := strings.TrimFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF' || r == '\u200E' || r == '\u200F'
	})

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if unicode.IsControl(r) || isDirectionalMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Parse reconstructs messages from a raw export. Lines matching a header
// start a new message; anything else is a continuation of the current one.
// Headers with an unparseable timestamp are dropped entirely: no message is
// started and following continuations have no target.
func Parse(raw string) []Message {
	var messages []Message
	var current *Message

	for lineNum, line := range splitLines(raw) {
		date, clock, name, text, ok := MatchHeader(line)
		if !ok {
			if current != nil {
				current.Text += "\n" + strings.TrimSpace(line)
			}
			continue
		}

		if current != nil {
			messages = append(messages, *current)
			current = nil
		}

		ts, ok := ParseTimestamp(date, clock)
		if !ok {
			continue
		}
		current = &Message{
			Timestamp: ts,
			Sender:    cleanSender(name),
			Text:      text,
			Line:      lineNum + 1,
		}
	}

	if current != nil {
		messages = append(messages, *current)
	}

	return filterSystemMessages(messages)
}

// splitLines splits on '\n', dropping a trailing '\r' per line and a final
// empty segment after a trailing newline.
func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func filterSystemMessages(messages []Message) []Message {
	filtered := messages[:0]
	for _, m := range messages {
		if !isSystemMessage(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// isSystemMessage matches WhatsApp banner/system notices that carry no
// conversational content.
func isSystemMessage(m Message) bool {
	if strings.ToLower(m.Sender) == "system" {
		return true
	}
	text := strings.ToLower(strings.TrimSpace(m.Text))
	return strings.Contains(text, "messages and calls are end-to-end encrypted") ||
		strings.Contains(text, "created group") ||
		strings.Contains(text, "changed this group's icon") ||
		(strings.Contains(text, "security code") && strings.Contains(text, "tap to learn more"))
}
