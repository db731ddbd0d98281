package analyze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvale/chatscope/internal/chat"
)

func journeyFixture() []chat.Message {
	texts := []string{
		"morning, did you sleep well last night?",
		"yes, slept like a log honestly",
		"same here, long day ahead though",
		"want to grab lunch somewhere nearby?",
		"sure, the usual place works for me",
		"You deleted this message",
		"this is amazing, congrats!! so happy for you ❤️",
		"thanks, it still does not feel real",
		"we need to mark the occasion somehow",
		"agreed, dinner is on me this time",
		"deal, see you at eight then",
		"perfect, do not be late again",
	}
	messages := make([]chat.Message, len(texts))
	for i, text := range texts {
		sender := "Addy"
		if i == 5 || i == 7 {
			sender = "Em"
		}
		messages[i] = msg(fmt.Sprintf("2019-08-19 17:%02d:00", i), sender, text)
	}
	return messages
}

func TestBuildJourneyIdentifiesYouFromDeletedMarker(t *testing.T) {
	j := NewLexicon().BuildJourney(journeyFixture())
	require.NotNil(t, j)

	assert.Equal(t, "August 19, 2019", j.FirstDay)
	assert.Equal(t, "August 19, 2019", j.LastDay)
	assert.Equal(t, 1, j.TotalDays)
	assert.Equal(t, 12, j.TotalMessages)

	// Em posted the "You deleted this message" notice, so Em is "you"
	// even though Addy sent more messages.
	require.Len(t, j.FirstMessages, 5)
	for _, m := range j.FirstMessages {
		assert.Equal(t, m.Sender == "Em", m.IsYou)
	}
}

func TestBuildJourneyFallsBackToQuietestSender(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "Addy", "hello there my friend"),
		msg("2019-08-19 17:01:00", "Addy", "are we still on for later"),
		msg("2019-08-19 17:02:00", "Em", "yes, absolutely"),
	}
	j := NewLexicon().BuildJourney(messages)
	require.NotNil(t, j)
	assert.True(t, j.FirstMessages[2].IsYou)  // Em
	assert.False(t, j.FirstMessages[0].IsYou) // Addy
}

func TestBuildJourneySnippetsStopAtConversationGap(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "Addy", "opening message"),
		msg("2019-08-19 17:05:00", "Em", "quick reply"),
		msg("2019-08-19 19:00:00", "Addy", "much later"),
		msg("2019-08-19 19:01:00", "Em", "right after"),
	}
	j := NewLexicon().BuildJourney(messages)
	require.NotNil(t, j)

	// The first snippet ends at the two-hour gap, the last begins after it.
	require.Len(t, j.FirstMessages, 2)
	assert.Equal(t, "opening message", j.FirstMessages[0].Text)
	require.Len(t, j.LastMessages, 2)
	assert.Equal(t, "much later", j.LastMessages[0].Text)
	assert.Equal(t, "right after", j.LastMessages[1].Text)
}

func TestBuildJourneySnippetGapCountsWholeMinutes(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "Addy", "opening message"),
		msg("2019-08-19 17:30:59", "Em", "thirty minutes and change later"),
	}
	j := NewLexicon().BuildJourney(messages)
	require.NotNil(t, j)

	// 30m59s truncates to a 30-minute silence, so the snippet keeps going.
	require.Len(t, j.FirstMessages, 2)
	assert.Equal(t, "thirty minutes and change later", j.FirstMessages[1].Text)
}

func TestBuildJourneyMomentsNeedTenMessages(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-19 17:00:00", "Addy", "wonderful amazing fantastic day!"),
		msg("2019-08-19 17:01:00", "Em", "truly the best news ever!!"),
	}
	j := NewLexicon().BuildJourney(messages)
	require.NotNil(t, j)
	assert.Empty(t, j.InterestingMoments)
}

func TestBuildJourneyPicksHighSentimentMoment(t *testing.T) {
	j := NewLexicon().BuildJourney(journeyFixture())
	require.NotNil(t, j)

	require.Len(t, j.InterestingMoments, 1)
	m := j.InterestingMoments[0]
	assert.Equal(t, "A joyful moment", m.Title)
	assert.Equal(t, "2019-08-19", m.Date)
	assert.Equal(t, "On August 19, 2019 at 05:06 PM", m.Description)
	assert.InDelta(t, 1.0, m.SentimentScore, 1e-9)
	// Two messages of context before, up to two after.
	assert.Len(t, m.Messages, 5)
	assert.Equal(t, "this is amazing, congrats!! so happy for you ❤️", m.Messages[2].Text)
}

func TestBuildJourneyEmpty(t *testing.T) {
	assert.Nil(t, NewLexicon().BuildJourney(nil))
}

func TestBuildJourneySortsInterleavedInput(t *testing.T) {
	messages := []chat.Message{
		msg("2019-08-20 09:00:00", "Addy", "second day begins"),
		msg("2019-08-19 17:00:00", "Em", "first day message"),
	}
	j := NewLexicon().BuildJourney(messages)
	require.NotNil(t, j)
	assert.Equal(t, "August 19, 2019", j.FirstDay)
	assert.Equal(t, "August 20, 2019", j.LastDay)
	assert.Equal(t, "first day message", j.FirstMessages[0].Text)
}
