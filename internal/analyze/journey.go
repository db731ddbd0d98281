package analyze

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/nvale/chatscope/internal/chat"
	"github.com/nvale/chatscope/internal/text"
)

const (
	journeyDateFormat  = "January 02, 2006"
	journeyStampFormat = "2006-01-02T15:04:05"
	momentTimeFormat   = "January 02, 2006 at 03:04 PM"
)

// BuildJourney builds the narrative view of a chat: opening and closing
// snippets plus up to four interesting moments. "You" is guessed as the
// sender of a "You deleted this message" notice, falling back to the sender
// with the fewest messages.
func (l *Lexicon) BuildJourney(messages []chat.Message) *Journey {
	if len(messages) == 0 {
		return nil
	}

	sorted := sortedByTime(messages)
	first := sorted[0]
	last := sorted[len(sorted)-1]

	firstDay := dayOf(first.Timestamp)
	lastDay := dayOf(last.Timestamp)
	totalDays := int(lastDay.Sub(firstDay).Hours() / 24)
	if totalDays < 1 {
		totalDays = 1
	}

	senderCounts := make(map[string]int)
	likelyYou := ""
	for _, msg := range sorted {
		senderCounts[msg.Sender]++
		if likelyYou == "" && strings.Contains(msg.Text, "You deleted this message") {
			likelyYou = msg.Sender
		}
	}
	if likelyYou == "" {
		likelyYou = quietestSender(senderCounts)
	}

	var firstMessages []JourneyMessage
	for i, msg := range sorted {
		firstMessages = append(firstMessages, journeyMessage(msg, likelyYou))
		if len(firstMessages) >= 5 {
			break
		}
		if i+1 < len(sorted) && gapExceeds(msg.Timestamp, sorted[i+1].Timestamp, text.ConversationGapMinutes) {
			break
		}
	}

	var lastMessages []JourneyMessage
	for i := len(sorted) - 1; i >= 0; i-- {
		lastMessages = append(lastMessages, journeyMessage(sorted[i], likelyYou))
		if len(lastMessages) >= 5 {
			break
		}
		if i > 0 && gapExceeds(sorted[i-1].Timestamp, sorted[i].Timestamp, text.ConversationGapMinutes) {
			break
		}
	}
	reverseMessages(lastMessages)

	return &Journey{
		FirstDay:           firstDay.Format(journeyDateFormat),
		LastDay:            lastDay.Format(journeyDateFormat),
		TotalDays:          totalDays,
		TotalMessages:      len(sorted),
		FirstMessages:      firstMessages,
		LastMessages:       lastMessages,
		InterestingMoments: l.interestingMoments(sorted, likelyYou, 4),
	}
}

func journeyMessage(msg chat.Message, likelyYou string) JourneyMessage {
	return JourneyMessage{
		Sender:    msg.Sender,
		Text:      msg.Text,
		Timestamp: msg.Timestamp.Format(journeyStampFormat),
		IsYou:     msg.Sender == likelyYou,
	}
}

func quietestSender(counts map[string]int) string {
	best := ""
	bestCount := -1
	for name, count := range counts {
		if bestCount == -1 || count < bestCount || (count == bestCount && name < best) {
			best = name
			bestCount = count
		}
	}
	return best
}

func reverseMessages(msgs []JourneyMessage) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}

type scoredMessage struct {
	idx       int
	interest  float64
	sentiment float64
}

// interestingMoments picks up to maxMoments highlights. Messages are scored
// by sentiment strength, length, punctuation energy, emojis and shouting;
// the chat is cut into segments so picks spread across its whole life, and
// positive and negative picks alternate.
func (l *Lexicon) interestingMoments(sorted []chat.Message, likelyYou string, maxMoments int) []JourneyMoment {
	if len(sorted) < 10 {
		return nil
	}

	var scored []scoredMessage
	for i, msg := range sorted {
		if len(msg.Text) < 10 || strings.Contains(msg.Text, "omitted") ||
			strings.Contains(msg.Text, "deleted") {
			continue
		}

		sentiment, _ := l.Score(msg.Text)
		textLen := float64(len(msg.Text))
		exclaims := float64(strings.Count(msg.Text, "!"))
		questions := float64(strings.Count(msg.Text, "?"))
		emojis := float64(len(text.ExtractEmojis(msg.Text)))
		upper := 0
		for _, r := range msg.Text {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		capsRatio := float64(upper) / textLen

		interest := math.Abs(sentiment)*2 +
			math.Min(textLen/100, 3) +
			exclaims*0.5 +
			questions*0.3 +
			emojis*0.3 +
			capsRatio*2

		scored = append(scored, scoredMessage{idx: i, interest: interest, sentiment: sentiment})
	}
	if len(scored) == 0 {
		return nil
	}

	numSegments := maxMoments
	if numSegments < 3 {
		numSegments = 3
	}
	segmentSize := len(sorted) / numSegments

	var positives, negatives []scoredMessage
	for seg := 0; seg < numSegments; seg++ {
		segStart := seg * segmentSize
		segEnd := (seg + 1) * segmentSize
		if seg == numSegments-1 {
			segEnd = len(sorted)
		}

		if best, ok := bestInSegment(scored, segStart, segEnd, func(s float64) bool { return s > 0.1 }); ok {
			positives = append(positives, best)
		}
		if best, ok := bestInSegment(scored, segStart, segEnd, func(s float64) bool { return s < -0.1 }); ok {
			negatives = append(negatives, best)
		}
	}

	byInterest := func(items []scoredMessage) {
		sort.SliceStable(items, func(i, j int) bool { return items[i].interest > items[j].interest })
	}
	byInterest(positives)
	byInterest(negatives)

	minGap := len(sorted) / (maxMoments + 1)
	if minGap < 30 {
		minGap = 30
	}

	type pick struct {
		idx       int
		sentiment float64
	}
	var selected []pick
	tooClose := func(idx int) bool {
		for _, sel := range selected {
			d := idx - sel.idx
			if d < 0 {
				d = -d
			}
			if d < minGap {
				return true
			}
		}
		return false
	}
	// Candidates rejected for crowding are consumed, not revisited.
	takeNext := func(items []scoredMessage, cursor *int) {
		for *cursor < len(items) {
			cand := items[*cursor]
			*cursor++
			if !tooClose(cand.idx) {
				selected = append(selected, pick{idx: cand.idx, sentiment: cand.sentiment})
				return
			}
		}
	}

	posCursor, negCursor := 0, 0
	for len(selected) < maxMoments {
		takeNext(positives, &posCursor)
		if len(selected) >= maxMoments {
			break
		}
		takeNext(negatives, &negCursor)
		if posCursor >= len(positives) && negCursor >= len(negatives) {
			break
		}
	}

	if len(selected) < maxMoments {
		byInterest(scored)
		for _, cand := range scored {
			if tooClose(cand.idx) {
				continue
			}
			selected = append(selected, pick{idx: cand.idx, sentiment: cand.sentiment})
			if len(selected) >= maxMoments {
				break
			}
		}
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].idx < selected[j].idx })

	moments := make([]JourneyMoment, 0, len(selected))
	for _, sel := range selected {
		start := sel.idx - 2
		if start < 0 {
			start = 0
		}
		end := sel.idx + 3
		if end > len(sorted) {
			end = len(sorted)
		}

		context := make([]JourneyMessage, 0, end-start)
		for _, msg := range sorted[start:end] {
			context = append(context, journeyMessage(msg, likelyYou))
		}

		main := sorted[sel.idx]
		moments = append(moments, JourneyMoment{
			Title:          momentTitle(sel.sentiment, main.Text),
			Description:    "On " + main.Timestamp.Format(momentTimeFormat),
			Date:           main.Timestamp.Format(dayFormat),
			Messages:       context,
			SentimentScore: sel.sentiment,
		})
	}
	return moments
}

func bestInSegment(scored []scoredMessage, start, end int, match func(float64) bool) (scoredMessage, bool) {
	var best scoredMessage
	found := false
	for _, cand := range scored {
		if cand.idx < start || cand.idx >= end || !match(cand.sentiment) {
			continue
		}
		if !found || cand.interest > best.interest {
			best = cand
			found = true
		}
	}
	return best, found
}

func momentTitle(sentiment float64, mainText string) string {
	switch {
	case sentiment > 0.3:
		return "A joyful moment"
	case sentiment < -0.3:
		return "A heartfelt exchange"
	case strings.Contains(mainText, "?"):
		return "A curious conversation"
	case len(mainText) > 200:
		return "A meaningful message"
	default:
		return "A memorable moment"
	}
}
