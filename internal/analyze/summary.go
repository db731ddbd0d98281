package analyze

import (
	"errors"

	"github.com/nvale/chatscope/internal/chat"
	"github.com/nvale/chatscope/internal/text"
)

// ErrNoMessages is returned when the input yields no usable messages.
var ErrNoMessages = errors.New("no messages parsed")

// Analyzer bundles the stopword set and sentiment lexicon so they are built
// once and shared across runs.
type Analyzer struct {
	stop    text.Stopwords
	lexicon *Lexicon
}

func New() *Analyzer {
	return &Analyzer{
		stop:    text.NewStopwords(),
		lexicon: NewLexicon(),
	}
}

// Analyze parses a raw export and computes the full Summary. topWordsN and
// topEmojisN cap the top_words and top_emojis tables; the cloud tables have
// fixed caps of their own.
func (a *Analyzer) Analyze(raw string, topWordsN, topEmojisN int) (*Summary, error) {
	messages := chat.Parse(raw)
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	deletedYou, deletedOthers := DeletedCounts(messages)
	starters, conversationCount := ConversationInitiations(messages, text.ConversationGapMinutes)
	sentimentByDay, sentimentOverall := a.lexicon.Breakdown(messages)

	s := &Summary{
		TotalMessages:          len(messages),
		BySender:               CountBySender(messages),
		Daily:                  DailyCounts(messages),
		Hourly:                 HourlyCounts(messages),
		TopEmojis:              TopEmojis(messages, topEmojisN),
		TopWords:               TopWords(messages, topWordsN, true, a.stop),
		TopWordsNoStop:         TopWords(messages, topWordsN, false, a.stop),
		DeletedYou:             deletedYou,
		DeletedOthers:          deletedOthers,
		Timeline:               Timeline(messages),
		Weekly:                 WeeklyCounts(messages),
		Monthly:                MonthlyCounts(messages),
		ShareOfSpeech:          CountBySender(messages),
		BucketsByPerson:        BucketsByPerson(messages),
		WordCloud:              WordCloud(messages, 150, true, a.stop),
		WordCloudNoStop:        WordCloud(messages, 150, false, a.stop),
		EmojiCloud:             EmojiCloud(messages, 1000),
		SalientPhrases:         SalientPhrases(messages, 25, a.stop),
		TopPhrases:             TopPhrases(messages, 25, true, a.stop),
		TopPhrasesNoStop:       TopPhrases(messages, 25, false, a.stop),
		PerPersonPhrases:       PerPersonPhrases(messages, 10, true, a.stop),
		PerPersonPhrasesNoStop: PerPersonPhrases(messages, 10, false, a.stop),
		FunFacts:               FunFacts(messages),
		PersonStats:            PersonStats(messages),
		PerPersonDaily:         PerPersonDaily(messages),
		SentimentByDay:         sentimentByDay,
		SentimentOverall:       sentimentOverall,
		ConversationStarters:   starters,
		ConversationCount:      conversationCount,
	}

	if len(messages) >= 10 {
		s.Journey = a.lexicon.BuildJourney(messages)
	}
	return s, nil
}
