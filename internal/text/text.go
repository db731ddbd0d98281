// Package text holds the tokenizer, emoji extraction and small lexicons
// shared by the analysis pipeline.
package text

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// ConversationGapMinutes is the fixed silence threshold that starts a new
// conversation.
const ConversationGapMinutes = 30

var urlRe = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.[^\s]+`)

// emojiRe matches complete emoji sequences: regional-indicator pairs
// (flags), and base pictographs with optional skin tone, optional variation
// selector and zero or more ZWJ continuations.
var emojiRe = regexp.MustCompile(
	`[\x{1F1E6}-\x{1F1FF}]{2}` +
		`|(?:[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{2300}-\x{23FF}\x{2B50}-\x{2B55}\x{203C}\x{2049}\x{25AA}\x{25AB}\x{25B6}\x{25C0}\x{25FB}-\x{25FE}\x{00A9}\x{00AE}\x{2122}\x{2139}\x{2194}-\x{2199}\x{21A9}\x{21AA}\x{231A}\x{231B}\x{2328}\x{23CF}\x{23E9}-\x{23F3}\x{23F8}-\x{23FA}\x{24C2}\x{2934}\x{2935}\x{3030}\x{303D}\x{3297}\x{3299}]` +
		`[\x{1F3FB}-\x{1F3FF}]?\x{FE0F}?` +
		`(?:\x{200D}[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{2640}\x{2642}\x{2695}\x{2696}\x{2708}\x{2764}][\x{1F3FB}-\x{1F3FF}]?\x{FE0F}?)*)`,
)

// Tokenize strips URLs, splits on whitespace and lowercases. The stopword
// decision is made on the alphanumeric-trimmed form of the token, but the
// emitted token keeps its punctuation, so "<3" and "lol!!" survive intact.
func Tokenize(text string, filterStop bool, stop Stopwords) []string {
	cleaned := urlRe.ReplaceAllString(text, " ")

	var tokens []string
	for _, raw := range strings.Fields(cleaned) {
		token := strings.ToLower(raw)
		canonical := strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})

		if filterStop && canonical != "" && stop.Contains(canonical) {
			continue
		}
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// ExtractEmojis returns each complete emoji sequence in text. A ZWJ family
// or a tone-modified emoji counts as one unit.
func ExtractEmojis(text string) []string {
	return emojiRe.FindAllString(text, -1)
}

// IsMediaOmitted reports whether text is the media placeholder line.
func IsMediaOmitted(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "<media omitted>")
}

// StopStats counts how many tokens are stopwords and how many are not.
func StopStats(tokens []string, stop Stopwords) (stopCount, nonStop int) {
	for _, t := range tokens {
		if stop.Contains(t) {
			stopCount++
		}
	}
	return stopCount, len(tokens) - stopCount
}

// AlphaNumericStats splits tokens into pure-digit ones and everything else.
// Emoticons like "<3" land on the alpha side.
func AlphaNumericStats(tokens []string) (alpha, numeric int) {
	for _, t := range tokens {
		allDigits := t != ""
		for i := 0; i < len(t); i++ {
			if t[i] < '0' || t[i] > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			numeric++
		} else {
			alpha++
		}
	}
	return alpha, numeric
}

// Color words mapped to stable hex tints, used to derive a per-person accent
// from what they talk about.
var colorWords = []struct {
	word string
	hex  string
}{
	{"blue", "#64d8ff"},
	{"pink", "#ff7edb"},
	{"purple", "#8c7bff"},
	{"mint", "#7cf9c0"},
	{"orange", "#ffb347"},
	{"red", "#ff6b6b"},
	{"yellow", "#ffd166"},
	{"green", "#06d6a0"},
	{"teal", "#118ab2"},
	{"magenta", "#ef476f"},
	{"gold", "#f2c94c"},
	{"lavender", "#b39ddb"},
}

// ColorHex returns the hex tint for a color word, or "" when the word is not
// in the lexicon.
func ColorHex(word string) string {
	for _, c := range colorWords {
		if c.word == word {
			return c.hex
		}
	}
	return ""
}

// PickDominantColor resolves a color-word frequency table to a single hex
// tint. Ties break alphabetically so the result is stable.
func PickDominantColor(freq map[string]int) string {
	if len(freq) == 0 {
		return ""
	}
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	return ColorHex(words[0])
}
