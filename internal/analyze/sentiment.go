package analyze

import (
	"sort"

	"github.com/nvale/chatscope/internal/chat"
	"github.com/nvale/chatscope/internal/text"
)

// SentimentClass is the coarse label derived from a compound score.
type SentimentClass int

const (
	Neutral SentimentClass = iota
	Positive
	Negative
)

// Compact lexicon so scoring stays fast and dependency-free. Each hit is
// worth +/-2; the compound score normalizes by the maximum possible.
var positiveWords = []string{
	"love", "loving", "loved", "like", "great", "good", "amazing", "awesome",
	"fantastic", "nice", "cool", "fun", "yay", "happy", "glad", "thanks",
	"thank", "thx", "congrats", "winner", "win", "excited", "sweet", "wow",
	"perfect", "best", "brilliant", "enjoy", "enjoying", "haha", "lol",
	"lmao", "pls", "plz", "support", "proud", "celebrate",
}

var negativeWords = []string{
	"hate", "hating", "hated", "bad", "terrible", "awful", "horrible",
	"worst", "sad", "angry", "mad", "upset", "tired", "annoyed", "pain",
	"hurt", "broken", "break", "breakup", "cry", "crying", "sucks", "suck",
	"wtf", "meh", "lame", "loser", "lost", "problem", "issues", "issue",
	"never", "nope", "cannot", "can't", "sorry", "ugh",
}

var positiveEmojis = []string{
	"😀", "😃", "😄", "😁", "😆", "😍", "😊", "😂", "🤣", "👍", "🙏", "❤️",
}

var negativeEmojis = []string{
	"😢", "😭", "😡", "😠", "👎", "💔", "😞", "😔", "🙁", "☹️",
}

// Lexicon holds the word and emoji sentiment sets, built once by NewLexicon.
type Lexicon struct {
	posWords  map[string]struct{}
	negWords  map[string]struct{}
	posEmojis map[string]struct{}
	negEmojis map[string]struct{}
}

func NewLexicon() *Lexicon {
	toSet := func(items []string) map[string]struct{} {
		set := make(map[string]struct{}, len(items))
		for _, s := range items {
			set[s] = struct{}{}
		}
		return set
	}
	return &Lexicon{
		posWords:  toSet(positiveWords),
		negWords:  toSet(negativeWords),
		posEmojis: toSet(positiveEmojis),
		negEmojis: toSet(negativeEmojis),
	}
}

// Score computes the compound sentiment of a text in [-1, 1] and its class.
// Each matching word or emoji counts +/-2; compound is score over the
// maximum attainable, 0 when nothing matched. Classes flip at +/-0.05.
func (l *Lexicon) Score(s string) (float64, SentimentClass) {
	score, hits := 0, 0

	for _, w := range cleanWords(s) {
		if _, ok := l.posWords[w]; ok {
			score += 2
			hits++
		} else if _, ok := l.negWords[w]; ok {
			score -= 2
			hits++
		}
	}

	for _, glyph := range text.ExtractEmojis(s) {
		if _, ok := l.posEmojis[glyph]; ok {
			score += 2
			hits++
		} else if _, ok := l.negEmojis[glyph]; ok {
			score -= 2
			hits++
		}
	}

	compound := 0.0
	if hits > 0 {
		compound = float64(score) / (float64(hits) * 2.0)
	}
	if compound > 1 {
		compound = 1
	} else if compound < -1 {
		compound = -1
	}
	return compound, Classify(compound)
}

// Classify maps a compound score to its class.
func Classify(compound float64) SentimentClass {
	switch {
	case compound > 0.05:
		return Positive
	case compound < -0.05:
		return Negative
	default:
		return Neutral
	}
}

type sentimentAgg struct {
	sum   float64
	count int
	pos   int
	neu   int
	neg   int
}

func (a *sentimentAgg) push(compound float64, class SentimentClass) {
	a.sum += compound
	a.count++
	switch class {
	case Positive:
		a.pos++
	case Negative:
		a.neg++
	default:
		a.neu++
	}
}

func (a *sentimentAgg) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// Breakdown aggregates message sentiment per (sender, day) and per sender.
// The by-day table sorts by day then name; the overall table sorts by mean
// descending then name.
func (l *Lexicon) Breakdown(messages []chat.Message) ([]SentimentDay, []SentimentOverall) {
	if len(messages) == 0 {
		return nil, nil
	}

	type dayKey struct{ name, day string }
	perDay := make(map[dayKey]*sentimentAgg)
	perPerson := make(map[string]*sentimentAgg)

	for _, msg := range messages {
		compound, class := l.Score(msg.Text)
		day := msg.Timestamp.Format(dayFormat)

		key := dayKey{name: msg.Sender, day: day}
		if perDay[key] == nil {
			perDay[key] = &sentimentAgg{}
		}
		perDay[key].push(compound, class)

		if perPerson[msg.Sender] == nil {
			perPerson[msg.Sender] = &sentimentAgg{}
		}
		perPerson[msg.Sender].push(compound, class)
	}

	byDay := make([]SentimentDay, 0, len(perDay))
	for key, agg := range perDay {
		byDay = append(byDay, SentimentDay{
			Name: key.name,
			Day:  key.day,
			Mean: agg.mean(),
			Pos:  agg.pos,
			Neu:  agg.neu,
			Neg:  agg.neg,
		})
	}
	sort.Slice(byDay, func(i, j int) bool {
		if byDay[i].Day != byDay[j].Day {
			return byDay[i].Day < byDay[j].Day
		}
		return byDay[i].Name < byDay[j].Name
	})

	overall := make([]SentimentOverall, 0, len(perPerson))
	for name, agg := range perPerson {
		overall = append(overall, SentimentOverall{
			Name: name,
			Mean: agg.mean(),
			Pos:  agg.pos,
			Neu:  agg.neu,
			Neg:  agg.neg,
		})
	}
	sort.Slice(overall, func(i, j int) bool {
		if overall[i].Mean != overall[j].Mean {
			return overall[i].Mean > overall[j].Mean
		}
		return overall[i].Name < overall[j].Name
	})

	return byDay, overall
}
