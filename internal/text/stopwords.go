package text

// Stopwords is an immutable lookup set built once by NewStopwords and passed
// into every pipeline stage that needs it.
type Stopwords struct {
	set map[string]struct{}
}

// english is the Spark English stopword list.
var english = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can't",
	"cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't",
	"doing", "don't", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn't", "has", "hasn't", "have", "haven't", "having",
	"he", "he'd", "he'll", "he's", "her", "here", "here's", "hers",
	"herself", "him", "himself", "his", "how", "how's", "i", "i'd", "i'll",
	"i'm", "i've", "if", "in", "into", "is", "isn't", "it", "it's", "its",
	"itself", "let's", "me", "more", "most", "mustn't", "my", "myself",
	"no", "nor", "not", "of", "off", "on", "once", "only", "or", "other",
	"ought", "our", "ours", "ourselves", "out", "over", "own", "same",
	"shan't", "she", "she'd", "she'll", "she's", "should", "shouldn't",
	"so", "some", "such", "than", "that", "that's", "the", "their",
	"theirs", "them", "themselves", "then", "there", "there's", "these",
	"they", "they'd", "they'll", "they're", "they've", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was",
	"wasn't", "we", "we'd", "we'll", "we're", "we've", "were", "weren't",
	"what", "what's", "when", "when's", "where", "where's", "which",
	"while", "who", "who's", "whom", "why", "why's", "with", "won't",
	"would", "wouldn't", "you", "you'd", "you'll", "you're", "you've",
	"your", "yours", "yourself", "yourselves",
}

// whatsappExtras are artifact tokens that show up in exports (media
// placeholders, call notices, localized variants) and should never surface
// as top words or phrase members.
var whatsappExtras = []string{
	"<media",
	"<attached:",
	"audio",
	"omitted>",
	"_",
	"_weggelassen>",
	"_ommited>",
	"_omesso>",
	"_omitted",
	"_attached",
	"edited>",
	"<this",
	"message",
	"missed",
	"voice",
	"call.",
	"location:",
	"deleted",
	"ich",
	"du",
	"wir",
	"bild",
	"image",
	"<medien",
	"ausgeschlossen>",
	"weggelassen",
	"omitted",
}

// NewStopwords builds the combined English + export-artifact stopword set.
func NewStopwords() Stopwords {
	set := make(map[string]struct{}, len(english)+len(whatsappExtras))
	for _, w := range english {
		set[w] = struct{}{}
	}
	for _, w := range whatsappExtras {
		set[w] = struct{}{}
	}
	return Stopwords{set: set}
}

// Contains reports whether w is a stopword. w must already be lowercased.
func (s Stopwords) Contains(w string) bool {
	_, ok := s.set[w]
	return ok
}
