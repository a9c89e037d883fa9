package moodscope

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Text  string // The token's lowercase content.
	Start int    // Start position in the sentence
	End   int    // End position in the sentence
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text string // The sentence's lowercase text.
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// Language is an ISO 639-1 code used to pick a stop-word list.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
	German  Language = "de"
)

// Emotion names one of the fixed emotion categories.
type Emotion string

const (
	Joy         Emotion = "joy"
	Sadness     Emotion = "sadness"
	Fear        Emotion = "fear"
	Anger       Emotion = "anger"
	Surprise    Emotion = "surprise"
	Shame       Emotion = "shame"
	Envy        Emotion = "envy"
	Pride       Emotion = "pride"
	Frustration Emotion = "frustration"
	Gratitude   Emotion = "gratitude"

	// NoEmotion is the sentinel reported when nothing qualifies.
	NoEmotion Emotion = "neutral"
)

// AllEmotions lists the emotion categories in enumeration order. Ranking ties
// are broken by position in this slice.
var AllEmotions = []Emotion{
	Joy, Sadness, Fear, Anger, Surprise,
	Shame, Envy, Pride, Frustration, Gratitude,
}

// IsKnownEmotion reports whether e is one of the fixed categories.
func IsKnownEmotion(e Emotion) bool {
	return emotionRank(e) < len(AllEmotions)
}

// emotionRank returns the enumeration position of e; the sentinel and unknown
// names sort after every category.
func emotionRank(e Emotion) int {
	for i, known := range AllEmotions {
		if known == e {
			return i
		}
	}
	return len(AllEmotions)
}

// SentimentLabel is one of five ordinal sentiment classes.
type SentimentLabel string

const (
	VeryPositive SentimentLabel = "Very Positive"
	Positive     SentimentLabel = "Positive"
	Neutral      SentimentLabel = "Neutral"
	Negative     SentimentLabel = "Negative"
	VeryNegative SentimentLabel = "Very Negative"
)

// Probabilities holds the three sentiment class probabilities.
type Probabilities struct {
	Positive float64 `json:"positive" yaml:"positive"`
	Neutral  float64 `json:"neutral" yaml:"neutral"`
	Negative float64 `json:"negative" yaml:"negative"`
}

// PolarityResult is the output of a PolarityScorer.
type PolarityResult struct {
	Compound float64 // -1.0 (negative) to 1.0 (positive)
	Probabilities
}

// EmotionScores maps an emotion (or the neutral sentinel) to its score.
type EmotionScores map[Emotion]float64

// EmotionResult is the output of the EmotionScorer.
type EmotionResult struct {
	Scores    EmotionScores
	Primary   Emotion
	Secondary []Emotion
}

// AnalysisReport is the full result of analyzing one text.
type AnalysisReport struct {
	SentimentScore    float64        `json:"sentiment_score" yaml:"sentiment_score"`
	SentimentLabel    SentimentLabel `json:"sentiment_label" yaml:"sentiment_label"`
	Magnitude         float64        `json:"magnitude" yaml:"magnitude"`
	Confidence        float64        `json:"confidence" yaml:"confidence"`
	Probabilities     Probabilities  `json:"probabilities" yaml:"probabilities"`
	PrimaryEmotion    Emotion        `json:"primary_emotion" yaml:"primary_emotion"`
	SecondaryEmotions []Emotion      `json:"secondary_emotions" yaml:"secondary_emotions"`
	EmotionScores     EmotionScores  `json:"emotion_scores" yaml:"emotion_scores"`
	KeyPhrases        []string       `json:"key_phrases" yaml:"key_phrases"`
}
