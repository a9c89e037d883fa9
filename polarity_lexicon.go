package moodscope

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// LexiconScorerConfig configures the word-list polarity backend
type LexiconScorerConfig struct {
	NegationWindow int     // Words to check for negation
	ModifierWindow int     // Words to check for intensifiers and diminishers
	NegationFactor float64 // Multiplier applied to a negated word
}

// DefaultLexiconScorerConfig returns standard configuration
func DefaultLexiconScorerConfig() LexiconScorerConfig {
	return LexiconScorerConfig{
		NegationWindow: 3,
		ModifierWindow: 2,
		NegationFactor: -0.5, // Negation reverses but weakens
	}
}

// LexiconScorer is an offline PolarityScorer driven by a fixed English word
// list with negation and modifier handling.
type LexiconScorer struct {
	tokenizer Tokenizer
	words     map[string]float64
	modifiers map[string]float64
	negations map[string]struct{}
	config    LexiconScorerConfig
}

// NewLexiconScorer creates a lexicon scorer with the built-in English tables.
func NewLexiconScorer(config LexiconScorerConfig) *LexiconScorer {
	ls := &LexiconScorer{
		tokenizer: NewIterTokenizer(),
		words:     polarityWords,
		modifiers: polarityModifiers,
		negations: make(map[string]struct{}, len(negationWords)),
		config:    config,
	}
	for _, w := range negationWords {
		ls.negations[w] = struct{}{}
	}
	return ls
}

// Score implements PolarityScorer.
func (ls *LexiconScorer) Score(text string) PolarityResult {
	toks := ls.tokenizer.Tokenize(strings.ToLower(text))
	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.Text
	}

	var pos, neg []float64
	neutral := 0
	for i, word := range words {
		if !isContentWord(word) {
			continue
		}

		sentiment := ls.words[word]
		if sentiment == 0 {
			neutral++
			continue
		}

		sentiment = ls.applyModifiers(sentiment, words, i)
		if ls.isNegated(words, i) {
			sentiment *= ls.config.NegationFactor
		}

		if sentiment > 0 {
			pos = append(pos, sentiment)
		} else {
			neg = append(neg, -sentiment)
		}
	}

	posScore, negScore := floats.Sum(pos), floats.Sum(neg)
	hits := len(pos) + len(neg)
	if hits == 0 {
		return normalizePolarity(PolarityResult{Probabilities: Probabilities{Neutral: 1}})
	}

	// Probabilities are per-token shares: each content word counts once,
	// whatever its strength.
	return normalizePolarity(PolarityResult{
		Compound: lexiconCompound(posScore/float64(hits), negScore/float64(hits)),
		Probabilities: Probabilities{
			Positive: float64(len(pos)),
			Neutral:  float64(neutral),
			Negative: float64(len(neg)),
		},
	})
}

// lexiconCompound folds average positive and negative strength into a score
// in [-1, 1].
func lexiconCompound(posScore, negScore float64) float64 {
	switch {
	case posScore == 0 && negScore == 0:
		return 0
	case negScore == 0:
		return math.Min(1.0, posScore*1.5)
	case posScore == 0:
		return math.Max(-1.0, -negScore*1.5)
	default:
		return (posScore - negScore) / (posScore + negScore)
	}
}

// isNegated reports whether a negation precedes position within the window
// without an intervening clause boundary.
func (ls *LexiconScorer) isNegated(words []string, position int) bool {
	start := max(0, position-ls.config.NegationWindow)
	for i := position - 1; i >= start; i-- {
		if isClauseBoundary(words[i]) {
			return false
		}
		if _, ok := ls.negations[words[i]]; ok || strings.HasSuffix(words[i], "n't") {
			return true
		}
	}
	return false
}

// applyModifiers scales a sentiment by the nearest preceding intensifier or
// diminisher.
func (ls *LexiconScorer) applyModifiers(sentiment float64, words []string, position int) float64 {
	start := max(0, position-ls.config.ModifierWindow)
	for i := position - 1; i >= start; i-- {
		if modifier, ok := ls.modifiers[words[i]]; ok {
			return sentiment * (1 + modifier)
		}
	}
	return sentiment
}

func isContentWord(word string) bool {
	for _, r := range word {
		if isWordRune(r) {
			return true
		}
	}
	return false
}

func isClauseBoundary(word string) bool {
	switch word {
	case ",", ";", ":", ".", "!", "?", "but", "however", "although":
		return true
	}
	return false
}

var polarityWords = map[string]float64{
	// Strong positive
	"excellent": 0.9, "amazing": 0.85, "wonderful": 0.85, "fantastic": 0.85,
	"outstanding": 0.9, "perfect": 0.95, "brilliant": 0.85, "superb": 0.85,
	"magnificent": 0.9, "ecstatic": 0.9, "thrilled": 0.85, "elated": 0.85,

	// Moderate positive
	"good": 0.6, "great": 0.75, "nice": 0.5, "love": 0.8, "happy": 0.7,
	"beautiful": 0.75, "enjoy": 0.65, "like": 0.5, "pleasant": 0.6,
	"positive": 0.6, "best": 0.85, "better": 0.5, "fun": 0.65,
	"interesting": 0.5, "awesome": 0.8, "joy": 0.75, "excited": 0.7,
	"delight": 0.75, "pleased": 0.6, "proud": 0.65, "confident": 0.55,
	"grateful": 0.7, "thankful": 0.7, "blessed": 0.65, "successful": 0.65,
	"accomplished": 0.6, "triumphant": 0.7, "appreciative": 0.6,

	// Mild positive
	"okay": 0.2, "fine": 0.3, "decent": 0.4, "satisfactory": 0.4,
	"surprised": 0.2, "amazed": 0.5,

	// Strong negative
	"terrible": -0.9, "awful": -0.85, "horrible": -0.85, "disgusting": -0.9,
	"appalling": -0.9, "dreadful": -0.85, "atrocious": -0.9, "abysmal": -0.95,
	"furious": -0.85, "terrified": -0.85, "heartbroken": -0.85,
	"miserable": -0.8, "enraged": -0.85, "humiliated": -0.8, "outraged": -0.8,

	// Moderate negative
	"bad": -0.6, "hate": -0.8, "sad": -0.7, "ugly": -0.75,
	"disappointing": -0.7, "disappointed": -0.65, "poor": -0.65,
	"wrong": -0.6, "worst": -0.85, "worse": -0.5, "dislike": -0.5,
	"negative": -0.6, "annoying": -0.65, "boring": -0.6, "fail": -0.7,
	"failure": -0.75, "angry": -0.7, "scared": -0.65, "afraid": -0.65,
	"worried": -0.55, "anxious": -0.55, "depressed": -0.75, "upset": -0.6,
	"frustrated": -0.6, "annoyed": -0.55, "irritated": -0.55, "mad": -0.6,
	"ashamed": -0.6, "embarrassed": -0.5, "guilty": -0.55, "jealous": -0.5,
	"envious": -0.45, "bitter": -0.5, "resentful": -0.55, "unhappy": -0.65,
	"grief": -0.75, "sorrow": -0.7, "fear": -0.6, "panic": -0.7,
	"nervous": -0.45, "regret": -0.55, "exasperated": -0.6,

	// Context dependent
	"cheap": -0.3, "simple": 0.1, "fast": 0.3, "slow": -0.3, "hard": -0.2,
	"easy": 0.3, "complex": -0.1, "new": 0.2, "old": -0.2,
}

var polarityModifiers = map[string]float64{
	// Intensifiers
	"very": 0.3, "extremely": 0.5, "absolutely": 0.5, "totally": 0.4,
	"really": 0.3, "so": 0.3, "quite": 0.2, "incredibly": 0.5,
	"remarkably": 0.4, "particularly": 0.3, "especially": 0.3, "super": 0.4,
	"utterly": 0.5, "completely": 0.4, "thoroughly": 0.4,

	// Diminishers
	"slightly": -0.3, "somewhat": -0.3, "rather": -0.2, "fairly": -0.1,
	"marginally": -0.4, "barely": -0.5, "hardly": -0.5, "scarcely": -0.5,
}

var negationWords = []string{
	"not", "no", "never", "neither", "nor", "cannot", "without",
	"nobody", "nothing", "nowhere", "none",
}
