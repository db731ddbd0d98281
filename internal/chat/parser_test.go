package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommonFormats(t *testing.T) {
	raw := "13.12.2023, 22:45 - Alice: Guten Abend\n" +
		"[14/12/2023, 07:05:10] Bob: Morning!\n" +
		"1/2/24, 9:15 AM - Carol: Hi"

	messages := Parse(raw)
	require.Len(t, messages, 3)

	assert.Equal(t, "Alice", messages[0].Sender)
	assert.Equal(t, "Bob", messages[1].Sender)
	assert.Equal(t, "Carol", messages[2].Sender)

	// Dot dates are day-first, slash with a >12 component resolves itself.
	assert.Equal(t, 13, messages[0].Timestamp.Day())
	assert.Equal(t, time.December, messages[0].Timestamp.Month())
	assert.Equal(t, 14, messages[1].Timestamp.Day())
	// Ambiguous 1/2 defaults to month-first.
	assert.Equal(t, time.January, messages[2].Timestamp.Month())
	assert.Equal(t, 2, messages[2].Timestamp.Day())
}

func TestParseTwelveHourClock(t *testing.T) {
	messages := Parse("[8/19/19, 5:04:35 PM] Addy: hey")
	require.Len(t, messages, 1)
	assert.Equal(t, 17, messages[0].Timestamp.Hour())
	assert.Equal(t, 2019, messages[0].Timestamp.Year())
	assert.Equal(t, time.August, messages[0].Timestamp.Month())
	assert.Equal(t, 19, messages[0].Timestamp.Day())
}

func TestParseNarrowNoBreakSpaceBeforeMeridiem(t *testing.T) {
	// iOS exports separate the meridiem with U+202F.
	messages := Parse("[19/08/2019, 5:04:35\u202fPM] Addy: hi")
	require.Len(t, messages, 1)
	assert.Equal(t, 17, messages[0].Timestamp.Hour())
}

func TestParseContinuationLines(t *testing.T) {
	raw := "19/08/2019, 17:04 - Addy: first line\n" +
		"  second line  \n" +
		"third line\n" +
		"19/08/2019, 17:05 - Em: ok"

	messages := Parse(raw)
	require.Len(t, messages, 2)
	assert.Equal(t, "first line\nsecond line\nthird line", messages[0].Text)
	assert.Equal(t, "ok", messages[1].Text)
}

func TestParseDropsUnparseableTimestamps(t *testing.T) {
	raw := "99/99/2019, 17:04 - Ghost: never lands\n" +
		"19/08/2019, 17:04 - Addy: real"

	messages := Parse(raw)
	require.Len(t, messages, 1)
	assert.Equal(t, "Addy", messages[0].Sender)
}

func TestParseCleansSenderNames(t *testing.T) {
	raw := "[19/08/2019, 17:04:00] \u200eAddy\u200e: hi"
	messages := Parse(raw)
	require.Len(t, messages, 1)
	assert.Equal(t, "Addy", messages[0].Sender)
}

func TestParseFiltersSystemMessages(t *testing.T) {
	raw := "19/08/2019, 17:04 - Addy: Messages and calls are end-to-end encrypted. Tap to learn more.\n" +
		"19/08/2019, 17:05 - Addy: created group \"Trip\"\n" +
		"19/08/2019, 17:06 - system: anything\n" +
		"19/08/2019, 17:07 - Addy: actual message"

	messages := Parse(raw)
	require.Len(t, messages, 1)
	assert.Equal(t, "actual message", messages[0].Text)
}

func TestParseRecordsHeaderLines(t *testing.T) {
	raw := "junk line\n" +
		"19/08/2019, 17:04 - Addy: hi\n" +
		"continued\n" +
		"19/08/2019, 17:05 - Em: yo"

	messages := Parse(raw)
	require.Len(t, messages, 2)
	assert.Equal(t, 2, messages[0].Line)
	assert.Equal(t, 4, messages[1].Line)
}

func TestParseEmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("no headers here\njust text"))
}

func TestParseTimestampTwoDigitYear(t *testing.T) {
	ts, ok := ParseTimestamp("8/19/19", "5:04:35 PM")
	require.True(t, ok)
	assert.Equal(t, 2019, ts.Year())

	ts, ok = ParseTimestamp("19.08.99", "17:04")
	require.True(t, ok)
	assert.Equal(t, 2099, ts.Year())
}

func TestParseTimestampKeepsFourDigitYears(t *testing.T) {
	// Only two-digit year tokens get the century shift.
	ts, ok := ParseTimestamp("5/6/1999", "10:00")
	require.True(t, ok)
	assert.Equal(t, 1999, ts.Year())

	ts, ok = ParseTimestamp("13.12.1999", "22:45")
	require.True(t, ok)
	assert.Equal(t, 1999, ts.Year())
}

func TestMatchHeaderCaptures(t *testing.T) {
	date, clock, name, text, ok := MatchHeader("[19/08/2019, 17:04:35] Addy Smith: hello there")
	require.True(t, ok)
	assert.Equal(t, "19/08/2019", date)
	assert.Equal(t, "17:04:35", clock)
	assert.Equal(t, "Addy Smith", name)
	assert.Equal(t, "hello there", text)

	_, _, _, _, ok = MatchHeader("not a header")
	assert.False(t, ok)
}
