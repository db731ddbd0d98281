package analyze

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/nvale/chatscope/internal/chat"
	"github.com/nvale/chatscope/internal/text"
)

// phraseRecord is a candidate phrase during extraction, before suppression
// and truncation.
type phraseRecord struct {
	phrase string
	count  int
	length int
	tokens []string
	score  float64
}

// ngramSep joins n-gram keys. NUL cannot appear in a whitespace-split token.
const ngramSep = "\x00"

// TopEmojis tallies emoji occurrences across all messages, most frequent
// first, truncated to take.
func TopEmojis(messages []chat.Message, take int) []Count {
	m := make(map[string]int)
	for _, msg := range messages {
		for _, hit := range text.ExtractEmojis(msg.Text) {
			m[hit]++
		}
	}
	items := countsFromMap(m)
	sortCounts(items)
	return truncate(items, take)
}

// EmojiCloud is the emoji table capped for cloud rendering.
func EmojiCloud(messages []chat.Message, take int) []Count {
	return TopEmojis(messages, take)
}

// TopWords tallies tokens across non-media messages, skipping short
// purely-alphanumeric tokens so "<3" stays but "ok" doesn't.
func TopWords(messages []chat.Message, take int, filterStop bool, stop text.Stopwords) []Count {
	m := make(map[string]int)
	for _, msg := range messages {
		if text.IsMediaOmitted(msg.Text) {
			continue
		}
		for _, token := range text.Tokenize(msg.Text, filterStop, stop) {
			if len(token) < 3 && isAllAlphanumeric(token) {
				continue
			}
			m[token]++
		}
	}
	items := countsFromMap(m)
	sortCounts(items)
	return truncate(items, take)
}

// WordCloud is the full token table (short tokens included) capped for cloud
// rendering.
func WordCloud(messages []chat.Message, take int, filterStop bool, stop text.Stopwords) []Count {
	m := make(map[string]int)
	for _, msg := range messages {
		if text.IsMediaOmitted(msg.Text) {
			continue
		}
		for _, token := range text.Tokenize(msg.Text, filterStop, stop) {
			m[token]++
		}
	}
	items := countsFromMap(m)
	sortCounts(items)
	return truncate(items, take)
}

func truncate(items []Count, take int) []Count {
	if take >= 0 && len(items) > take {
		return items[:take]
	}
	return items
}

func isAllAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// TopPhrases extracts the most characteristic n-grams (2..5 tokens) by
// pointwise mutual information. Larger corpora raise the minimum occurrence
// count. The filterStop flag is accepted for interface symmetry but phrase
// extraction always tokenizes unfiltered; stopwords are handled by the
// per-candidate non-stopword requirements instead.
func TopPhrases(messages []chat.Message, take int, filterStop bool, stop text.Stopwords) []Count {
	const maxN = 5
	const pmiThreshold = 0.1
	_ = filterStop

	totalTokens := 0
	var tokenLists [][]string
	for _, msg := range messages {
		if text.IsMediaOmitted(msg.Text) {
			continue
		}
		tokens := text.Tokenize(msg.Text, false, stop)
		if len(tokens) == 0 {
			continue
		}
		totalTokens += len(tokens)
		tokenLists = append(tokenLists, tokens)
	}
	if totalTokens == 0 {
		return nil
	}

	ngramCounts := make(map[string]int)
	unigramCounts := make(map[string]int)
	for _, tokens := range tokenLists {
		for i := range tokens {
			limit := maxN
			if rest := len(tokens) - i; rest < limit {
				limit = rest
			}
			for n := 1; n <= limit; n++ {
				slice := tokens[i : i+n]

				if n > 1 {
					nonStop := 0
					for _, t := range slice {
						if !stop.Contains(t) {
							nonStop++
						}
					}
					if nonStop == 0 {
						continue
					}
				}

				alpha, numeric := text.AlphaNumericStats(slice)
				if alpha == 0 || float64(numeric)/float64(n) > 0.5 {
					continue
				}

				ngramCounts[strings.Join(slice, ngramSep)]++
				if n == 1 {
					unigramCounts[slice[0]]++
				}
			}
		}
	}

	var minCount int
	switch {
	case totalTokens > 500000:
		minCount = 5
	case totalTokens > 100000:
		minCount = 4
	case totalTokens > 50000:
		minCount = 3
	case totalTokens > 10000:
		minCount = 2
	default:
		minCount = 1
	}

	totalF := float64(totalTokens)
	var records []phraseRecord
	for key, count := range ngramCounts {
		if count < minCount {
			continue
		}
		tokens := strings.Split(key, ngramSep)
		length := len(tokens)
		if length < 2 {
			continue
		}

		nonStop := 0
		for _, t := range tokens {
			if !stop.Contains(t) {
				nonStop++
			}
		}
		if nonStop == 0 {
			continue
		}
		if length == 2 && float64(nonStop)/float64(length) < 0.5 {
			continue
		}

		pPhrase := float64(count) / totalF
		prod := 1.0
		missing := false
		for _, t := range tokens {
			c, ok := unigramCounts[t]
			if !ok {
				missing = true
				break
			}
			prod *= float64(c) / totalF
		}
		if missing || prod == 0 {
			continue
		}
		pmi := math.Log2(pPhrase / prod)
		// Longer repeated phrases skip the threshold: they are rarely
		// coincidental even at low PMI.
		if !(length >= 4 && count >= 2) && pmi < pmiThreshold {
			continue
		}

		records = append(records, phraseRecord{
			phrase: strings.Join(tokens, " "),
			count:  count,
			length: length,
			tokens: tokens,
			score:  pmi * float64(count) * float64(length) * float64(length),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.length != b.length {
			return a.length > b.length
		}
		if a.score != b.score {
			return a.score > b.score
		}
		if a.count != b.count {
			return a.count > b.count
		}
		return a.phrase < b.phrase
	})

	return recordsToCounts(suppressSubphrases(records, take*5), take)
}

// SalientPhrases extracts distinctive 2..4-token windows scored by PMI
// against unigram probabilities, weighted toward phrases with real words.
func SalientPhrases(messages []chat.Message, take int, stop text.Stopwords) []Count {
	minCount := 2
	if len(messages) > 100000 {
		minCount = 5
	} else if len(messages) > 10000 {
		minCount = 3
	}

	unigramCounts := make(map[string]int)
	type phraseData struct {
		count  int
		length int
		tokens []string
	}
	phraseCounts := make(map[string]*phraseData)
	totalWindows := make(map[int]int)
	totalTokens := 0

	for _, msg := range messages {
		if text.IsMediaOmitted(msg.Text) {
			continue
		}
		tokens := text.Tokenize(msg.Text, false, stop)
		if len(tokens) < 2 {
			continue
		}
		for _, t := range tokens {
			unigramCounts[t]++
			totalTokens++
		}

		for window := 2; window <= 4; window++ {
			if len(tokens) < window {
				break
			}
			for i := 0; i+window <= len(tokens); i++ {
				slice := tokens[i : i+window]
				_, nonStop := text.StopStats(slice, stop)
				if nonStop == 0 {
					continue
				}
				hasLong := false
				for _, t := range slice {
					if len(t) >= 3 {
						hasLong = true
						break
					}
				}
				if !hasLong {
					continue
				}

				alpha, numeric := text.AlphaNumericStats(slice)
				if alpha == 0 || float64(numeric)/float64(window) > 0.5 {
					continue
				}
				if window == 2 && float64(nonStop)/float64(window) < 0.5 {
					continue
				}

				phrase := strings.Join(slice, " ")
				entry := phraseCounts[phrase]
				if entry == nil {
					entry = &phraseData{length: window, tokens: append([]string(nil), slice...)}
					phraseCounts[phrase] = entry
				}
				entry.count++
				if window > entry.length {
					entry.length = window
				}
				totalWindows[window]++
			}
		}
	}

	if totalTokens == 0 {
		return nil
	}

	var records []phraseRecord
	for phrase, data := range phraseCounts {
		if data.count < minCount {
			continue
		}
		totalW := totalWindows[data.length]
		if totalW == 0 {
			continue
		}

		sumLogUni := 0.0
		for _, t := range data.tokens {
			c, ok := unigramCounts[t]
			if !ok {
				sumLogUni = 0
				break
			}
			sumLogUni += math.Log(float64(c) / float64(totalTokens))
		}
		if sumLogUni == 0 {
			continue
		}
		pmi := math.Log(float64(data.count)/float64(totalW)) - sumLogUni
		if pmi <= 0 {
			continue
		}

		_, nonStop := text.StopStats(data.tokens, stop)
		if nonStop == 0 {
			continue
		}
		alpha, numeric := text.AlphaNumericStats(data.tokens)
		if alpha == 0 || float64(numeric)/float64(len(data.tokens)) > 0.5 {
			continue
		}
		nonStopRatio := float64(nonStop) / float64(data.length)
		if data.length == 2 && nonStopRatio < 0.5 {
			continue
		}

		score := pmi * float64(data.count) * math.Max(nonStopRatio, 0.3) *
			(1.0 + 0.25*(float64(data.length)-2.0))
		records = append(records, phraseRecord{
			phrase: phrase,
			count:  data.count,
			length: data.length,
			tokens: data.tokens,
			score:  score,
		})
	}

	sortRecordsByScore(records)
	return recordsToCounts(suppressSubphrases(records, take*5), take)
}

// PerPersonPhrases runs salient-style extraction separately per sender with
// 2..5-token windows, scored by raw count and length rather than PMI. The
// filterStop flag is accepted for interface symmetry; extraction always
// tokenizes unfiltered.
func PerPersonPhrases(messages []chat.Message, take int, filterStop bool, stop text.Stopwords) []PersonPhrases {
	_ = filterStop
	minCount := 1
	if len(messages) > 100000 {
		minCount = 5
	} else if len(messages) > 10000 {
		minCount = 3
	}

	type phraseData struct {
		count  int
		length int
		tokens []string
	}
	perSender := make(map[string]map[string]*phraseData)

	for _, msg := range messages {
		if text.IsMediaOmitted(msg.Text) {
			continue
		}
		tokens := text.Tokenize(msg.Text, false, stop)
		if len(tokens) < 2 {
			continue
		}
		for window := 2; window <= 5; window++ {
			if len(tokens) < window {
				break
			}
			for i := 0; i+window <= len(tokens); i++ {
				slice := tokens[i : i+window]
				_, nonStop := text.StopStats(slice, stop)
				if nonStop == 0 {
					continue
				}

				alpha, numeric := text.AlphaNumericStats(slice)
				if alpha == 0 || float64(numeric)/float64(window) > 0.5 {
					continue
				}
				if window == 2 && float64(nonStop)/float64(window) < 0.5 {
					continue
				}

				phrases := perSender[msg.Sender]
				if phrases == nil {
					phrases = make(map[string]*phraseData)
					perSender[msg.Sender] = phrases
				}
				phrase := strings.Join(slice, " ")
				entry := phrases[phrase]
				if entry == nil {
					entry = &phraseData{length: window, tokens: append([]string(nil), slice...)}
					phrases[phrase] = entry
				}
				entry.count++
				if window > entry.length {
					entry.length = window
				}
			}
		}
	}

	result := make([]PersonPhrases, 0, len(perSender))
	for name, phrases := range perSender {
		var records []phraseRecord
		for phrase, data := range phrases {
			if data.count < minCount {
				continue
			}
			_, nonStop := text.StopStats(data.tokens, stop)
			if nonStop == 0 {
				continue
			}
			alpha, numeric := text.AlphaNumericStats(data.tokens)
			if alpha == 0 || float64(numeric)/float64(len(data.tokens)) > 0.5 {
				continue
			}
			nonStopRatio := float64(nonStop) / float64(data.length)
			if data.length == 2 && nonStopRatio < 0.5 {
				continue
			}
			score := float64(data.count) * math.Pow(float64(data.length), 1.6) *
				math.Max(nonStopRatio, 0.3)
			records = append(records, phraseRecord{
				phrase: phrase,
				count:  data.count,
				length: data.length,
				tokens: data.tokens,
				score:  score,
			})
		}

		sortRecordsByScore(records)
		counts := recordsToCounts(suppressSubphrases(records, take*5), take)
		// Display order is by raw count, not extraction score.
		sort.SliceStable(counts, func(i, j int) bool { return counts[i].Value > counts[j].Value })

		result = append(result, PersonPhrases{Name: name, Phrases: counts})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func sortRecordsByScore(records []phraseRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.count != b.count {
			return a.count > b.count
		}
		if a.length != b.length {
			return a.length > b.length
		}
		return a.phrase < b.phrase
	})
}

func recordsToCounts(records []phraseRecord, take int) []Count {
	if len(records) > take {
		records = records[:take]
	}
	out := make([]Count, len(records))
	for i, r := range records {
		out[i] = Count{Label: r.phrase, Value: r.count}
	}
	return out
}

// containsSubsequence reports whether short appears as a contiguous run
// inside long.
func containsSubsequence(long, short []string) bool {
	if len(short) == 0 || len(short) > len(long) {
		return false
	}
outer:
	for i := 0; i+len(short) <= len(long); i++ {
		for j := range short {
			if long[i+j] != short[j] {
				continue outer
			}
		}
		return true
	}
	return false
}

// suppressSubphrases collapses overlapping candidates: a shorter phrase
// contained in an already-kept longer one (seen at least twice) is dropped,
// and a longer candidate replaces a kept shorter one when they overlap at
// least half and the longer occurs at least 60% as often.
func suppressSubphrases(records []phraseRecord, maxInput int) []phraseRecord {
	if len(records) > maxInput {
		records = records[:maxInput]
	}

	var kept []phraseRecord
outer:
	for _, rec := range records {
		for k := range kept {
			existing := &kept[k]
			if existing.length > rec.length && existing.count >= 2 &&
				containsSubsequence(existing.tokens, rec.tokens) {
				continue outer
			}
			if rec.length > existing.length && rec.count >= 2 &&
				containsSubsequence(rec.tokens, existing.tokens) {
				overlap := float64(existing.length) / float64(rec.length)
				if overlap >= 0.5 && rec.count*10 >= existing.count*6 {
					*existing = rec
					continue outer
				}
			}
		}
		kept = append(kept, rec)
	}
	return kept
}
