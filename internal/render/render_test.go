package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvale/chatscope/internal/analyze"
)

func TestWrapLinePlainText(t *testing.T) {
	lines := wrapLine("abcdef", 3)
	assert.Equal(t, []string{"abc", "def"}, lines)

	// zero width disables wrapping
	lines = wrapLine("abcdef", 0)
	assert.Equal(t, []string{"abcdef"}, lines)

	lines = wrapLine("", 10)
	assert.Equal(t, []string{""}, lines)
}

func TestWrapLineSkipsAnsiSequences(t *testing.T) {
	colored := colorDim + "abc" + colorReset + "def"
	lines := wrapLine(colored, 3)
	require.Len(t, lines, 2)
	// escape codes carry no width, so the visible split is still abc/def
	assert.Contains(t, lines[0], "abc")
	assert.Equal(t, "def", lines[1])
}

func TestWrapLineWideRunes(t *testing.T) {
	// CJK runes are two columns wide
	lines := wrapLine("你好吗", 4)
	assert.Equal(t, []string{"你好", "吗"}, lines)
}

func TestHighlightKeywords(t *testing.T) {
	out := highlightKeywords("pizza night", "pizza")
	assert.Equal(t, colorBoldRed+"pizza"+colorReset+" night", out)

	// FTS operators are not treated as keywords
	out = highlightKeywords("this AND that", "AND")
	assert.Equal(t, "this AND that", out)

	// empty query leaves text untouched
	assert.Equal(t, "hello", highlightKeywords("hello", ""))
}

func TestHighlightKeywordsCaseInsensitive(t *testing.T) {
	out := highlightKeywords("Pizza time", "pizza")
	assert.Contains(t, out, colorBoldRed+"Pizza"+colorReset)
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  a\n  b", indentLines("a\nb", "  "))
}

func TestRenderSummarySections(t *testing.T) {
	s := &analyze.Summary{
		TotalMessages:     3,
		ConversationCount: 1,
		BySender: []analyze.Count{
			{Label: "Addy", Value: 2},
			{Label: "Em", Value: 1},
		},
		Timeline: []analyze.Count{{Label: "2019-08-19", Value: 3}},
		Hourly:   []analyze.HourCount{{Hour: 17, Value: 3}},
		Weekly:   []analyze.Count{{Label: "Mon", Value: 3}},
		TopWords: []analyze.Count{{Label: "pizza", Value: 2}},
		SentimentOverall: []analyze.SentimentOverall{
			{Name: "Addy", Mean: 0.5, Pos: 1, Neu: 1},
		},
	}
	streak := &analyze.Streak{Days: 1, Start: "2019-08-19", End: "2019-08-19"}

	out := RenderSummary("Em", s, streak)
	assert.Contains(t, out, "Em")
	assert.Contains(t, out, "3 messages")
	assert.Contains(t, out, "Senders")
	assert.Contains(t, out, "Addy")
	assert.Contains(t, out, "17:00")
	assert.Contains(t, out, "Top words")
	assert.Contains(t, out, "pizza")
	assert.Contains(t, out, "Longest streak")
	assert.Contains(t, out, "1 days (2019-08-19 .. 2019-08-19)")
	// no journey section without a journey
	assert.NotContains(t, out, "Journey")
}

func TestRenderSummaryJourney(t *testing.T) {
	s := &analyze.Summary{
		TotalMessages: 1,
		Journey: &analyze.Journey{
			FirstDay:      "August 19, 2019",
			LastDay:       "August 20, 2019",
			TotalDays:     2,
			TotalMessages: 12,
			InterestingMoments: []analyze.JourneyMoment{
				{
					Title:          "A joyful moment",
					Description:    "On August 19, 2019 at 05:06 PM",
					Date:           "2019-08-19",
					SentimentScore: 1,
					Messages: []analyze.JourneyMessage{
						{Sender: "Em", Text: "great news", IsYou: true},
					},
				},
			},
		},
	}

	out := RenderSummary("Em", s, nil)
	assert.Contains(t, out, "Journey")
	assert.Contains(t, out, "A joyful moment")
	assert.Contains(t, out, "great news")
	// your own messages get the > marker
	assert.True(t, strings.Contains(out, "> "+colorPos+"Em"))
}
