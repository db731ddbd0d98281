// Package analyze turns a parsed chat transcript into a Summary: per-sender
// and temporal counts, word/emoji/phrase tables, sentiment and a curated
// journey of notable moments.
package analyze

// Count is a labeled tally. The JSON shape is shared by senders, days,
// words, emojis and phrases alike.
type Count struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// HourCount is a tally for one hour of the day, 0..23.
type HourCount struct {
	Hour  int `json:"hour"`
	Value int `json:"value"`
}

// PersonBuckets holds one sender's histograms over hour of day, weekday
// (Sunday first) and calendar month.
type PersonBuckets struct {
	Name     string  `json:"name"`
	Messages int     `json:"messages"`
	Hourly   [24]int `json:"hourly"`
	Daily    [7]int  `json:"daily"`
	Monthly  [12]int `json:"monthly"`
}

// FunFact is the lightweight per-sender word-stat card. UniqueWords counts
// words used exactly once.
type FunFact struct {
	Name                 string   `json:"name"`
	TotalWords           int      `json:"total_words"`
	LongestMessageWords  int      `json:"longest_message_words"`
	UniqueWords          int      `json:"unique_words"`
	AverageMessageLength int      `json:"average_message_length"`
	TopEmojis            []string `json:"top_emojis"`
}

// PersonStat is the richer per-sender card. UniqueWords here is vocabulary
// size, not hapax count.
type PersonStat struct {
	Name                   string  `json:"name"`
	TotalWords             int     `json:"total_words"`
	UniqueWords            int     `json:"unique_words"`
	LongestMessageWords    int     `json:"longest_message_words"`
	AverageWordsPerMessage float64 `json:"average_words_per_message"`
	TopEmojis              []Count `json:"top_emojis"`
	DominantColor          string  `json:"dominant_color,omitempty"`
}

// PersonDaily is one sender's message count per day.
type PersonDaily struct {
	Name  string  `json:"name"`
	Daily []Count `json:"daily"`
}

// PersonPhrases is one sender's characteristic phrases.
type PersonPhrases struct {
	Name    string  `json:"name"`
	Phrases []Count `json:"phrases"`
}

// SentimentDay is one sender's sentiment aggregate for one day.
type SentimentDay struct {
	Name string  `json:"name"`
	Day  string  `json:"day"`
	Mean float64 `json:"mean"`
	Pos  int     `json:"pos"`
	Neu  int     `json:"neu"`
	Neg  int     `json:"neg"`
}

// SentimentOverall is one sender's sentiment aggregate over the whole chat.
type SentimentOverall struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
	Pos  int     `json:"pos"`
	Neu  int     `json:"neu"`
	Neg  int     `json:"neg"`
}

// JourneyMessage is a single rendered message inside a journey snippet.
type JourneyMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	IsYou     bool   `json:"is_you"`
}

// JourneyMoment is one highlighted moment with surrounding context.
type JourneyMoment struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Date           string           `json:"date"`
	Messages       []JourneyMessage `json:"messages"`
	SentimentScore float64          `json:"sentiment_score"`
}

// Journey is the narrative view of a chat: where it started, where it is
// now, and the moments in between worth revisiting.
type Journey struct {
	FirstDay           string           `json:"first_day"`
	LastDay            string           `json:"last_day"`
	TotalDays          int              `json:"total_days"`
	TotalMessages      int              `json:"total_messages"`
	FirstMessages      []JourneyMessage `json:"first_messages"`
	LastMessages       []JourneyMessage `json:"last_messages"`
	InterestingMoments []JourneyMoment  `json:"interesting_moments"`
}

// Summary is the full analysis output. Field names are the stable output
// contract consumed by the renderer, the store cache and JSON export.
//
// The *_no_stop variants are the tables computed WITHOUT stopword filtering;
// the base tables have stopwords removed.
type Summary struct {
	TotalMessages          int                `json:"total_messages"`
	BySender               []Count            `json:"by_sender"`
	Daily                  []Count            `json:"daily"`
	Hourly                 []HourCount        `json:"hourly"`
	TopEmojis              []Count            `json:"top_emojis"`
	TopWords               []Count            `json:"top_words"`
	TopWordsNoStop         []Count            `json:"top_words_no_stop"`
	DeletedYou             int                `json:"deleted_you"`
	DeletedOthers          int                `json:"deleted_others"`
	Timeline               []Count            `json:"timeline"`
	Weekly                 []Count            `json:"weekly"`
	Monthly                []Count            `json:"monthly"`
	ShareOfSpeech          []Count            `json:"share_of_speech"`
	BucketsByPerson        []PersonBuckets    `json:"buckets_by_person"`
	WordCloud              []Count            `json:"word_cloud"`
	WordCloudNoStop        []Count            `json:"word_cloud_no_stop"`
	EmojiCloud             []Count            `json:"emoji_cloud"`
	SalientPhrases         []Count            `json:"salient_phrases"`
	TopPhrases             []Count            `json:"top_phrases"`
	TopPhrasesNoStop       []Count            `json:"top_phrases_no_stop"`
	PerPersonPhrases       []PersonPhrases    `json:"per_person_phrases"`
	PerPersonPhrasesNoStop []PersonPhrases    `json:"per_person_phrases_no_stop"`
	FunFacts               []FunFact          `json:"fun_facts"`
	PersonStats            []PersonStat       `json:"person_stats"`
	PerPersonDaily         []PersonDaily      `json:"per_person_daily"`
	SentimentByDay         []SentimentDay     `json:"sentiment_by_day"`
	SentimentOverall       []SentimentOverall `json:"sentiment_overall"`
	ConversationStarters   []Count            `json:"conversation_starters"`
	ConversationCount      int                `json:"conversation_count"`
	Journey                *Journey           `json:"journey"`
}

// Streak is the longest run of consecutive active days.
type Streak struct {
	Days  int    `json:"days"`
	Start string `json:"start"`
	End   string `json:"end"`
}
