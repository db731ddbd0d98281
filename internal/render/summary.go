package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nvale/chatscope/internal/analyze"
)

const (
	colorBold    = "\033[1m"
	colorHeading = "\033[1;36m" // bold cyan section headings
	colorBar     = "\033[34m"   // blue histogram bars
	colorPos     = "\033[32m"
	colorNeg     = "\033[31m"
)

const barWidth = 30

// bar renders a proportional histogram bar.
func bar(value, max int) string {
	if max <= 0 {
		return ""
	}
	n := value * barWidth / max
	if n == 0 && value > 0 {
		n = 1
	}
	return colorBar + strings.Repeat("█", n) + colorReset
}

func maxCount(counts []analyze.Count) int {
	max := 0
	for _, c := range counts {
		if c.Value > max {
			max = c.Value
		}
	}
	return max
}

// padLabel right-pads a label to the given display width.
func padLabel(label string, width int) string {
	w := runewidth.StringWidth(label)
	if w >= width {
		return label
	}
	return label + strings.Repeat(" ", width-w)
}

func labelWidth(counts []analyze.Count, limit int) int {
	w := 0
	for _, c := range counts {
		if lw := runewidth.StringWidth(c.Label); lw > w {
			w = lw
		}
	}
	if w > limit {
		w = limit
	}
	return w
}

// RenderSummary renders a chat summary as an ANSI report.
func RenderSummary(title string, s *analyze.Summary, streak *analyze.Streak) string {
	var b strings.Builder

	heading := func(text string) {
		b.WriteString("\n" + colorHeading + text + colorReset + "\n")
	}
	countRows := func(counts []analyze.Count, take int) {
		if len(counts) > take {
			counts = counts[:take]
		}
		max := maxCount(counts)
		lw := labelWidth(counts, 24)
		for _, c := range counts {
			fmt.Fprintf(&b, "  %s %6d %s\n", padLabel(c.Label, lw), c.Value, bar(c.Value, max))
		}
	}

	span := ""
	if len(s.Timeline) > 0 {
		span = fmt.Sprintf("%s .. %s", s.Timeline[0].Label, s.Timeline[len(s.Timeline)-1].Label)
	}
	fmt.Fprintf(&b, "%s%s%s\n", colorBold, title, colorReset)
	fmt.Fprintf(&b, "%s%d messages, %d conversations, %s%s\n",
		colorDim, s.TotalMessages, s.ConversationCount, span, colorReset)

	heading("Senders")
	countRows(s.BySender, len(s.BySender))

	if s.DeletedYou > 0 || s.DeletedOthers > 0 {
		fmt.Fprintf(&b, "  %sdeleted: %d by you, %d by others%s\n",
			colorDim, s.DeletedYou, s.DeletedOthers, colorReset)
	}

	heading("Busiest hours")
	hourCounts := make([]analyze.Count, 0, len(s.Hourly))
	for _, h := range s.Hourly {
		if h.Value > 0 {
			hourCounts = append(hourCounts, analyze.Count{Label: fmt.Sprintf("%02d:00", h.Hour), Value: h.Value})
		}
	}
	countRows(hourCounts, len(hourCounts))

	heading("By weekday")
	countRows(s.Weekly, len(s.Weekly))

	if len(s.TopWords) > 0 {
		heading("Top words")
		countRows(s.TopWords, 15)
	}

	if len(s.TopEmojis) > 0 {
		heading("Top emojis")
		countRows(s.TopEmojis, 10)
	}

	if len(s.SalientPhrases) > 0 {
		heading("Phrases")
		countRows(s.SalientPhrases, 10)
	}

	for _, pp := range s.PerPersonPhrases {
		if len(pp.Phrases) == 0 {
			continue
		}
		heading(pp.Name + " says")
		countRows(pp.Phrases, 5)
	}

	if len(s.SentimentOverall) > 0 {
		heading("Sentiment")
		for _, so := range s.SentimentOverall {
			tone := colorDim
			if so.Mean > 0.05 {
				tone = colorPos
			} else if so.Mean < -0.05 {
				tone = colorNeg
			}
			fmt.Fprintf(&b, "  %s %s%+.3f%s (%d pos / %d neu / %d neg)\n",
				padLabel(so.Name, 16), tone, so.Mean, colorReset, so.Pos, so.Neu, so.Neg)
		}
	}

	if len(s.PersonStats) > 0 {
		heading("Word stats")
		for _, ps := range s.PersonStats {
			fmt.Fprintf(&b, "  %s %d words, %d unique, %.1f per message, longest %d\n",
				padLabel(ps.Name, 16), ps.TotalWords, ps.UniqueWords,
				ps.AverageWordsPerMessage, ps.LongestMessageWords)
		}
	}

	if streak != nil && streak.Days > 0 {
		heading("Longest streak")
		fmt.Fprintf(&b, "  %d days (%s .. %s)\n", streak.Days, streak.Start, streak.End)
	}

	if s.Journey != nil {
		j := s.Journey
		heading("Journey")
		fmt.Fprintf(&b, "  %s .. %s, %d days, %d messages\n",
			j.FirstDay, j.LastDay, j.TotalDays, j.TotalMessages)
		for _, m := range j.InterestingMoments {
			tone := colorDim
			if m.SentimentScore > 0.1 {
				tone = colorPos
			} else if m.SentimentScore < -0.1 {
				tone = colorNeg
			}
			fmt.Fprintf(&b, "\n  %s%s%s %s%s%s\n", colorBold, m.Title, colorReset, colorDim, m.Description, colorReset)
			for _, jm := range m.Messages {
				marker := " "
				if jm.IsYou {
					marker = ">"
				}
				fmt.Fprintf(&b, "   %s %s%s:%s %s\n", marker, tone, jm.Sender, colorReset, jm.Text)
			}
		}
	}

	return b.String()
}
