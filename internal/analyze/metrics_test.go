package analyze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvale/chatscope/internal/chat"
)

func msg(ts string, sender, text string) chat.Message {
	parsed, err := time.Parse("2006-01-02 15:04:05", ts)
	if err != nil {
		panic(err)
	}
	return chat.Message{Timestamp: parsed, Sender: sender, Text: text}
}

func TestTimelineFillsMissingDays(t *testing.T) {
	messages := []chat.Message{
		msg("2019-09-01 09:00:00", "A", "hello"),
		msg("2019-09-03 09:00:00", "A", "again"),
	}
	timeline := Timeline(messages)
	require.Len(t, timeline, 3)
	assert.Equal(t, "2019-09-02", timeline[1].Label)
	assert.Equal(t, 0, timeline[1].Value)
	assert.Equal(t, 1, timeline[0].Value)
	assert.Equal(t, 1, timeline[2].Value)
}

func TestConversationInitiationsRespectGap(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "Addy", "Hi"),
		msg("2019-08-19 17:10:00", "Em", "ok"),
		msg("2019-08-19 18:00:01", "Em", "New convo"),
		msg("2019-08-19 18:05:00", "Addy", "reply"),
	}
	starters, count := ConversationInitiations(messages, 30)
	assert.Equal(t, 2, count)

	byName := make(map[string]int)
	for _, c := range starters {
		byName[c.Label] = c.Value
	}
	assert.Equal(t, 1, byName["Addy"])
	assert.Equal(t, 1, byName["Em"])
}

func TestConversationInitiationsExactGapDoesNotSplit(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "Addy", "Hi"),
		msg("2019-08-19 17:30:00", "Em", "still same convo"),
	}
	_, count := ConversationInitiations(messages, 30)
	assert.Equal(t, 1, count)
}

func TestConversationInitiationsCountWholeMinutes(t *testing.T) {
	// 30m59s is still a 30-minute silence; leftover seconds do not split.
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "Addy", "Hi"),
		msg("2019-08-19 17:30:59", "Em", "same convo"),
		msg("2019-08-19 18:02:00", "Em", "new convo"),
	}
	_, count := ConversationInitiations(messages, 30)
	assert.Equal(t, 2, count)
}

func TestBucketsCoverHourDayMonth(t *testing.T) {
	messages := []chat.Message{
		msg("2024-01-01 01:00:00", "A", "hi"),
		msg("2024-01-01 13:00:00", "B", "hey"),
		msg("2024-02-02 01:00:00", "A", "yo"),
	}
	buckets := BucketsByPerson(messages)
	var a *PersonBuckets
	for i := range buckets {
		if buckets[i].Name == "A" {
			a = &buckets[i]
		}
	}
	require.NotNil(t, a)
	assert.Equal(t, 2, a.Hourly[1])
	assert.Equal(t, 1, a.Daily[1]) // Monday Jan 1
	assert.Equal(t, 1, a.Daily[5]) // Friday Feb 2
	assert.Equal(t, 1, a.Monthly[0])
	assert.Equal(t, 1, a.Monthly[1])
}

func TestWeeklyCountsSundayFirst(t *testing.T) {
	// 2019-08-18 was a Sunday.
	weekly := WeeklyCounts([]chat.Message{msg("2019-08-18 12:00:00", "A", "hi")})
	require.Len(t, weekly, 7)
	assert.Equal(t, "Sun", weekly[0].Label)
	assert.Equal(t, 1, weekly[0].Value)
	assert.Equal(t, "Sat", weekly[6].Label)
}

func TestDeletedCountsExactMatchOnly(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "A", "You deleted this message"),
		msg("2019-08-19 17:01:00", "B", "This message was deleted"),
		msg("2019-08-19 17:02:00", "A", "You deleted this message, right?"),
	}
	you, others := DeletedCounts(messages)
	assert.Equal(t, 1, you)
	assert.Equal(t, 1, others)
}

func TestPersonStatsCountsWordsAndEmojis(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:04:35", "Addy", "Hello hello 😀"),
		msg("2019-08-19 18:10:00", "Em", "wow 😀 great"),
	}
	stats := PersonStats(messages)
	require.Len(t, stats, 2)

	byName := make(map[string]PersonStat)
	for _, s := range stats {
		byName[s.Name] = s
	}
	assert.Equal(t, 2, byName["Addy"].TotalWords)
	assert.Equal(t, 1, byName["Addy"].UniqueWords) // "hello" twice
	require.NotEmpty(t, byName["Addy"].TopEmojis)
	assert.Equal(t, "😀", byName["Addy"].TopEmojis[0].Label)
	assert.Equal(t, 2, byName["Em"].TotalWords)
}

func TestPersonStatsExcludesMediaFromWordStats(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "A", "<Media omitted>"),
		msg("2019-08-19 17:01:00", "A", "two words"),
	}
	stats := PersonStats(messages)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].TotalWords)
	assert.Equal(t, 2.0, stats[0].AverageWordsPerMessage)
}

func TestPersonStatsDominantColorCaseInsensitive(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:04:35", "Addy", "BLUE blue Blue rocks"),
		msg("2019-08-19 18:10:00", "Em", "green vibes and more green"),
	}
	stats := PersonStats(messages)
	byName := make(map[string]PersonStat)
	for _, s := range stats {
		byName[s.Name] = s
	}
	assert.Equal(t, "#64d8ff", byName["Addy"].DominantColor)
	assert.Equal(t, "#06d6a0", byName["Em"].DominantColor)
}

func TestPersonStatsColorTieBreakAlphabetical(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "A", "red red"),
		msg("2019-08-19 17:01:00", "A", "blue blue"),
	}
	stats := PersonStats(messages)
	require.Len(t, stats, 1)
	assert.Equal(t, "#64d8ff", stats[0].DominantColor)
}

func TestFunFactsUniqueWordsAreHapaxes(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "A", "hello hello world"),
	}
	facts := FunFacts(messages)
	require.Len(t, facts, 1)
	assert.Equal(t, 3, facts[0].TotalWords)
	assert.Equal(t, 1, facts[0].UniqueWords) // only "world" appears once
	assert.Equal(t, 3, facts[0].LongestMessageWords)
	assert.Equal(t, 3, facts[0].AverageMessageLength)
}

func TestLongestStreakFindsEarliestRun(t *testing.T) {
	daily := []Count{
		{Label: "2019-08-01", Value: 1},
		{Label: "2019-08-02", Value: 2},
		{Label: "2019-08-05", Value: 1},
		{Label: "2019-08-06", Value: 1},
	}
	streak := LongestStreak(daily)
	require.NotNil(t, streak)
	assert.Equal(t, 2, streak.Days)
	// Ties favor the earliest run.
	assert.Equal(t, "2019-08-01", streak.Start)
	assert.Equal(t, "2019-08-02", streak.End)
}

func TestLongestStreakSingleDay(t *testing.T) {
	streak := LongestStreak([]Count{{Label: "2019-08-01", Value: 3}})
	require.NotNil(t, streak)
	assert.Equal(t, 1, streak.Days)
	assert.Equal(t, "2019-08-01", streak.Start)
	assert.Equal(t, "2019-08-01", streak.End)

	assert.Nil(t, LongestStreak(nil))
}

func TestLongestStreakFromRawMatchesParsedPath(t *testing.T) {
	raw := "19/08/2019, 17:04 - Addy: hi\n" +
		"20/08/2019, 09:00 - Em: hello\n" +
		"21/08/2019, 09:00 - Em: again\n" +
		"25/08/2019, 09:00 - Addy: later"

	fast := LongestStreakFromRaw(raw)
	require.NotNil(t, fast)

	slow := LongestStreak(DailyCounts(chat.Parse(raw)))
	require.NotNil(t, slow)

	assert.Equal(t, slow.Days, fast.Days)
	assert.Equal(t, slow.Start, fast.Start)
	assert.Equal(t, slow.End, fast.End)
	assert.Equal(t, 3, fast.Days)
	assert.Equal(t, "2019-08-19", fast.Start)
	assert.Equal(t, "2019-08-21", fast.End)
}

func TestCountBySenderOrdersByVolume(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "A", "1"),
		msg("2019-08-19 17:01:00", "B", "2"),
		msg("2019-08-19 17:02:00", "B", "3"),
	}
	counts := CountBySender(messages)
	require.Len(t, counts, 2)
	assert.Equal(t, Count{Label: "B", Value: 2}, counts[0])
	assert.Equal(t, Count{Label: "A", Value: 1}, counts[1])
}
