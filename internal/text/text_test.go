package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeKeepsPunctuationTokens(t *testing.T) {
	stop := NewStopwords()
	tokens := Tokenize("sending you <3 lol!!", false, stop)
	assert.Equal(t, []string{"sending", "you", "<3", "lol!!"}, tokens)
}

func TestTokenizeStopwordDecisionUsesTrimmedForm(t *testing.T) {
	stop := NewStopwords()
	// "you" is a stopword even when wrapped in punctuation.
	tokens := Tokenize("hey (you) there", true, stop)
	assert.Equal(t, []string{"hey"}, tokens)
}

func TestTokenizeStripsURLs(t *testing.T) {
	stop := NewStopwords()
	tokens := Tokenize("look https://example.com/x?y=1 and www.test.org now", false, stop)
	assert.Equal(t, []string{"look", "and", "now"}, tokens)
}

func TestTokenizeLowercases(t *testing.T) {
	stop := NewStopwords()
	tokens := Tokenize("HELLO World", false, stop)
	assert.Equal(t, []string{"hello", "world"}, tokens)
}

func TestExtractEmojisCountsSequencesAsOne(t *testing.T) {
	assert.Equal(t, []string{"😂", "😂"}, ExtractEmojis("😂😂 wow"))
	// ZWJ family is a single unit.
	assert.Equal(t, []string{"👨‍👩‍👧‍👦"}, ExtractEmojis("👨‍👩‍👧‍👦"))
	// Flag pairs are a single unit.
	assert.Equal(t, []string{"🇺🇸"}, ExtractEmojis("go 🇺🇸 team"))
	// Skin tone modifier stays attached.
	assert.Equal(t, []string{"👍🏽"}, ExtractEmojis("nice 👍🏽"))
	assert.Empty(t, ExtractEmojis("plain text"))
}

func TestIsMediaOmitted(t *testing.T) {
	assert.True(t, IsMediaOmitted("<Media omitted>"))
	assert.True(t, IsMediaOmitted("  <media OMITTED>  "))
	assert.False(t, IsMediaOmitted("media omitted"))
	assert.False(t, IsMediaOmitted("<Media omitted> extra"))
}

func TestStopwordsIncludeExportArtifacts(t *testing.T) {
	stop := NewStopwords()
	assert.True(t, stop.Contains("the"))
	assert.True(t, stop.Contains("omitted>"))
	assert.True(t, stop.Contains("<media"))
	assert.False(t, stop.Contains("pizza"))
}

func TestStopStats(t *testing.T) {
	stop := NewStopwords()
	stopCount, nonStop := StopStats([]string{"the", "pizza", "and", "night"}, stop)
	assert.Equal(t, 2, stopCount)
	assert.Equal(t, 2, nonStop)
}

func TestAlphaNumericStats(t *testing.T) {
	alpha, numeric := AlphaNumericStats([]string{"hello", "123", "<3", "42"})
	assert.Equal(t, 2, alpha)
	assert.Equal(t, 2, numeric)
}

func TestPickDominantColorTieBreak(t *testing.T) {
	// Equal counts resolve alphabetically: blue before red.
	hex := PickDominantColor(map[string]int{"red": 2, "blue": 2})
	assert.Equal(t, "#64d8ff", hex)

	assert.Equal(t, "#06d6a0", PickDominantColor(map[string]int{"green": 3, "red": 1}))
	assert.Equal(t, "", PickDominantColor(nil))
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#ffb347", ColorHex("orange"))
	assert.Equal(t, "", ColorHex("beige"))
}
