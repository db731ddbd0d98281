package analyze

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"github.com/nvale/chatscope/internal/chat"
	"github.com/nvale/chatscope/internal/text"
)

const dayFormat = "2006-01-02"

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// sortCounts orders by value descending, breaking ties by label ascending so
// output is stable across runs.
func sortCounts(items []Count) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].Label < items[j].Label
	})
}

func sortedByTime(messages []chat.Message) []chat.Message {
	sorted := make([]chat.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// cleanWords yields the lowercased alphanumeric-trimmed Unicode words of a
// text, skipping segments that trim to nothing (whitespace, punctuation).
func cleanWords(s string) []string {
	var out []string
	tokens := words.FromString(s)
	for tokens.Next() {
		cleaned := strings.TrimFunc(tokens.Value(), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if cleaned == "" {
			continue
		}
		out = append(out, strings.ToLower(cleaned))
	}
	return out
}

// CountBySender tallies messages per sender, most talkative first.
func CountBySender(messages []chat.Message) []Count {
	m := make(map[string]int)
	for _, msg := range messages {
		m[msg.Sender]++
	}
	items := countsFromMap(m)
	sortCounts(items)
	return items
}

func countsFromMap(m map[string]int) []Count {
	items := make([]Count, 0, len(m))
	for label, value := range m {
		items = append(items, Count{Label: label, Value: value})
	}
	return items
}

// DailyCounts tallies messages per calendar day, in day order. Days with no
// messages are absent; see Timeline for the zero-filled variant.
func DailyCounts(messages []chat.Message) []Count {
	m := make(map[string]int)
	for _, msg := range messages {
		m[msg.Timestamp.Format(dayFormat)]++
	}
	items := countsFromMap(m)
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// HourlyCounts returns all 24 hour slots, including empty ones.
func HourlyCounts(messages []chat.Message) []HourCount {
	var slots [24]int
	for _, msg := range messages {
		slots[msg.Timestamp.Hour()]++
	}
	out := make([]HourCount, 24)
	for h, v := range slots {
		out[h] = HourCount{Hour: h, Value: v}
	}
	return out
}

// WeeklyCounts returns all 7 weekday slots, Sunday first.
func WeeklyCounts(messages []chat.Message) []Count {
	var slots [7]int
	for _, msg := range messages {
		slots[int(msg.Timestamp.Weekday())]++
	}
	out := make([]Count, 7)
	for i, v := range slots {
		out[i] = Count{Label: weekdayLabels[i], Value: v}
	}
	return out
}

// MonthlyCounts tallies messages per YYYY-MM month, in month order.
func MonthlyCounts(messages []chat.Message) []Count {
	m := make(map[string]int)
	for _, msg := range messages {
		label := fmt.Sprintf("%04d-%02d", msg.Timestamp.Year(), int(msg.Timestamp.Month()))
		m[label]++
	}
	items := countsFromMap(m)
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// DeletedCounts splits deletion notices into ones you issued and ones others
// issued. Only the exact notice texts count; quoted or edited variants don't.
func DeletedCounts(messages []chat.Message) (you, others int) {
	for _, msg := range messages {
		switch msg.Text {
		case "You deleted this message":
			you++
		case "This message was deleted":
			others++
		}
	}
	return you, others
}

// Timeline is the per-day count over the full inclusive span from first to
// last message, with quiet days present at zero.
func Timeline(messages []chat.Message) []Count {
	if len(messages) == 0 {
		return nil
	}
	sorted := sortedByTime(messages)
	start := dayOf(sorted[0].Timestamp)
	end := dayOf(sorted[len(sorted)-1].Timestamp)

	counts := make(map[string]int)
	var order []string
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		label := cursor.Format(dayFormat)
		counts[label] = 0
		order = append(order, label)
	}
	for _, msg := range sorted {
		label := msg.Timestamp.Format(dayFormat)
		if _, ok := counts[label]; ok {
			counts[label]++
		}
	}

	out := make([]Count, len(order))
	for i, label := range order {
		out[i] = Count{Label: label, Value: counts[label]}
	}
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// gapExceeds reports whether the silence between two timestamps is longer
// than gapMinutes. Whole minutes only; leftover seconds do not count.
func gapExceeds(prev, next time.Time, gapMinutes int) bool {
	return int(next.Sub(prev).Minutes()) > gapMinutes
}

// ConversationInitiations credits the sender who breaks a silence longer
// than gapMinutes with starting a new conversation. The very first message
// always counts. Returns the per-sender credits and the conversation total.
func ConversationInitiations(messages []chat.Message, gapMinutes int) ([]Count, int) {
	if len(messages) == 0 {
		return nil, 0
	}
	sorted := sortedByTime(messages)

	initiations := map[string]int{sorted[0].Sender: 1}
	conversationCount := 1
	prev := sorted[0].Timestamp
	initiatorRecorded := true

	for _, msg := range sorted[1:] {
		if gapExceeds(prev, msg.Timestamp, gapMinutes) {
			conversationCount++
			initiatorRecorded = false
		}
		if !initiatorRecorded {
			initiations[msg.Sender]++
			initiatorRecorded = true
		}
		prev = msg.Timestamp
	}

	items := countsFromMap(initiations)
	sortCounts(items)
	return items, conversationCount
}

func groupBySender(messages []chat.Message) map[string][]chat.Message {
	grouped := make(map[string][]chat.Message)
	for _, msg := range messages {
		grouped[msg.Sender] = append(grouped[msg.Sender], msg)
	}
	return grouped
}

// BucketsByPerson builds per-sender hour/weekday/month histograms, busiest
// sender first.
func BucketsByPerson(messages []chat.Message) []PersonBuckets {
	grouped := groupBySender(messages)

	buckets := make([]PersonBuckets, 0, len(grouped))
	for name, msgs := range grouped {
		b := PersonBuckets{Name: name, Messages: len(msgs)}
		for _, msg := range msgs {
			b.Hourly[msg.Timestamp.Hour()]++
			b.Daily[int(msg.Timestamp.Weekday())]++
			b.Monthly[int(msg.Timestamp.Month())-1]++
		}
		buckets = append(buckets, b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Messages != buckets[j].Messages {
			return buckets[i].Messages > buckets[j].Messages
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

// PerPersonDaily is each sender's day-by-day count, senders in name order.
func PerPersonDaily(messages []chat.Message) []PersonDaily {
	grouped := groupBySender(messages)

	result := make([]PersonDaily, 0, len(grouped))
	for name, msgs := range grouped {
		result = append(result, PersonDaily{Name: name, Daily: DailyCounts(msgs)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// FunFacts computes the lightweight per-sender word cards. Media
// placeholders are excluded from the word and length stats; unique_words
// counts words the sender used exactly once.
func FunFacts(messages []chat.Message) []FunFact {
	grouped := groupBySender(messages)

	facts := make([]FunFact, 0, len(grouped))
	for name, msgs := range grouped {
		var totalWords, longest, counted int
		freq := make(map[string]int)
		emojiFreq := make(map[string]int)

		for _, msg := range msgs {
			if text.IsMediaOmitted(msg.Text) {
				continue
			}
			counted++
			inMessage := 0
			for _, w := range cleanWords(msg.Text) {
				inMessage++
				totalWords++
				freq[w]++
			}
			if inMessage > longest {
				longest = inMessage
			}
			for _, e := range text.ExtractEmojis(msg.Text) {
				emojiFreq[e]++
			}
		}

		unique := 0
		for _, v := range freq {
			if v == 1 {
				unique++
			}
		}
		avg := 0
		if counted > 0 {
			avg = int(math.Round(float64(totalWords) / float64(counted)))
		}

		topEmojis := countsFromMap(emojiFreq)
		sortCounts(topEmojis)
		if len(topEmojis) > 3 {
			topEmojis = topEmojis[:3]
		}
		emojiLabels := make([]string, len(topEmojis))
		for i, c := range topEmojis {
			emojiLabels[i] = c.Label
		}

		facts = append(facts, FunFact{
			Name:                 name,
			TotalWords:           totalWords,
			LongestMessageWords:  longest,
			UniqueWords:          unique,
			AverageMessageLength: avg,
			TopEmojis:            emojiLabels,
		})
	}

	sort.Slice(facts, func(i, j int) bool {
		if facts[i].TotalWords != facts[j].TotalWords {
			return facts[i].TotalWords > facts[j].TotalWords
		}
		return facts[i].Name < facts[j].Name
	})
	return facts
}

// PersonStats computes the richer per-sender cards: vocabulary size, average
// words per message, top ten emojis and a dominant color tint derived from
// color words the sender uses.
func PersonStats(messages []chat.Message) []PersonStat {
	grouped := groupBySender(messages)

	stats := make([]PersonStat, 0, len(grouped))
	for name, msgs := range grouped {
		var totalWords, longest, counted int
		vocab := make(map[string]int)
		emojiFreq := make(map[string]int)
		colorFreq := make(map[string]int)

		for _, msg := range msgs {
			if text.IsMediaOmitted(msg.Text) {
				continue
			}
			counted++
			inMessage := 0
			for _, w := range cleanWords(msg.Text) {
				inMessage++
				totalWords++
				vocab[w]++
				if text.ColorHex(w) != "" {
					colorFreq[w]++
				}
			}
			if inMessage > longest {
				longest = inMessage
			}
			for _, e := range text.ExtractEmojis(msg.Text) {
				emojiFreq[e]++
			}
		}

		avg := 0.0
		if counted > 0 {
			avg = float64(totalWords) / float64(counted)
		}

		topEmojis := countsFromMap(emojiFreq)
		sortCounts(topEmojis)
		if len(topEmojis) > 10 {
			topEmojis = topEmojis[:10]
		}

		stats = append(stats, PersonStat{
			Name:                   name,
			TotalWords:             totalWords,
			UniqueWords:            len(vocab),
			LongestMessageWords:    longest,
			AverageWordsPerMessage: avg,
			TopEmojis:              topEmojis,
			DominantColor:          text.PickDominantColor(colorFreq),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalWords != stats[j].TotalWords {
			return stats[i].TotalWords > stats[j].TotalWords
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// LongestStreak finds the longest run of consecutive days in a daily count
// table. Returns nil for an empty table.
func LongestStreak(daily []Count) *Streak {
	if len(daily) == 0 {
		return nil
	}
	sorted := make([]Count, len(daily))
	copy(sorted, daily)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })

	maxStreak, currentStreak := 1, 1
	maxStart, maxEnd := 0, 0
	currentStart := 0

	for i := 1; i < len(sorted); i++ {
		prev, errPrev := time.Parse(dayFormat, sorted[i-1].Label)
		curr, errCurr := time.Parse(dayFormat, sorted[i].Label)
		if errPrev == nil && errCurr == nil && curr.Sub(prev) == 24*time.Hour {
			currentStreak++
			if currentStreak > maxStreak {
				maxStreak = currentStreak
				maxStart = currentStart
				maxEnd = i
			}
			continue
		}
		currentStreak = 1
		currentStart = i
	}

	return &Streak{Days: maxStreak, Start: sorted[maxStart].Label, End: sorted[maxEnd].Label}
}

// LongestStreakFromRaw computes the streak straight from the raw export,
// counting header lines without reconstructing messages. Shares the header
// and timestamp logic with the parser so both paths see the same days.
func LongestStreakFromRaw(raw string) *Streak {
	m := make(map[string]int)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		date, clock, _, _, ok := chat.MatchHeader(line)
		if !ok {
			continue
		}
		if ts, ok := chat.ParseTimestamp(date, clock); ok {
			m[ts.Format(dayFormat)]++
		}
	}
	if len(m) == 0 {
		return nil
	}
	daily := countsFromMap(m)
	sort.Slice(daily, func(i, j int) bool { return daily[i].Label < daily[j].Label })
	return LongestStreak(daily)
}
