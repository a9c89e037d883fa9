package moodscope

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// WeightingMode selects how a trigger-word hit is counted.
type WeightingMode int

const (
	// WeightedMode counts a hit with the emotion's positive weight when the
	// compound score is above zero and its negative weight otherwise.
	WeightedMode WeightingMode = iota
	// UniformMode counts every hit as 1.
	UniformMode
)

// String implements fmt.Stringer.
func (m WeightingMode) String() string {
	switch m {
	case WeightedMode:
		return "weighted"
	case UniformMode:
		return "uniform"
	default:
		return fmt.Sprintf("WeightingMode(%d)", int(m))
	}
}

// ParseWeightingMode converts a configuration string into a WeightingMode.
func ParseWeightingMode(s string) (WeightingMode, error) {
	switch s {
	case "", "weighted":
		return WeightedMode, nil
	case "uniform":
		return UniformMode, nil
	default:
		return 0, ConfigErrorf(nil, "unknown weighting mode %q", s)
	}
}

// EmotionConfig configures emotion scoring
type EmotionConfig struct {
	Mode         WeightingMode
	Threshold    float64 // Minimum normalized score for an emotion to rank
	MaxSecondary int     // Secondary emotions reported after the primary
}

// DefaultEmotionConfig returns standard configuration
func DefaultEmotionConfig() EmotionConfig {
	return EmotionConfig{
		Mode:         WeightedMode,
		Threshold:    0.1,
		MaxSecondary: 3,
	}
}

// Compound scores beyond these bounds pick a non-neutral fallback
// distribution when no trigger word is found.
const (
	fallbackPositiveBound = 0.2
	fallbackNegativeBound = -0.2
)

// EmotionScorer detects emotions by matching tokens against an
// EmotionLexicon. It keeps no per-call state.
type EmotionScorer struct {
	lexicon *EmotionLexicon
	config  EmotionConfig
}

// NewEmotionScorer creates an emotion scorer.
func NewEmotionScorer(lexicon *EmotionLexicon, config EmotionConfig) (*EmotionScorer, error) {
	if lexicon == nil {
		return nil, ConfigErrorf(nil, "emotion lexicon is required")
	}
	if config.Mode != WeightedMode && config.Mode != UniformMode {
		return nil, ConfigErrorf(nil, "unknown weighting mode %s", config.Mode)
	}
	if config.Threshold <= 0 || config.Threshold > 1 {
		return nil, ConfigErrorf(nil, "threshold must be in (0, 1], got %v", config.Threshold)
	}
	if config.MaxSecondary < 0 {
		return nil, ConfigErrorf(nil, "max secondary emotions must not be negative, got %d", config.MaxSecondary)
	}
	return &EmotionScorer{lexicon: lexicon, config: config}, nil
}

// Score turns a lowercase token stream and the text's compound polarity into
// an emotion distribution with a primary and ranked secondary emotions.
func (es *EmotionScorer) Score(tokens []string, compound float64) EmotionResult {
	scores := es.distribution(es.count(tokens, compound), compound)
	ranked := es.rank(scores)

	result := EmotionResult{
		Scores:    scores,
		Primary:   NoEmotion,
		Secondary: []Emotion{},
	}
	if len(ranked) == 0 {
		return result
	}

	result.Primary = ranked[0]
	for _, emotion := range ranked[1:] {
		if len(result.Secondary) == es.config.MaxSecondary {
			break
		}
		result.Secondary = append(result.Secondary, emotion)
	}

	// Non-neutral text always gets secondary emotions; the injected pair is
	// not added to Scores.
	if len(result.Secondary) == 0 && result.Primary != NoEmotion && es.config.MaxSecondary > 0 {
		result.Secondary = defaultSecondary(compound, es.config.MaxSecondary)
	}

	return result
}

// count accumulates weighted trigger hits per emotion, indexed like
// AllEmotions. A token in several trigger sets counts for each of them.
func (es *EmotionScorer) count(tokens []string, compound float64) []float64 {
	counts := make([]float64, len(AllEmotions))
	for _, token := range tokens {
		for _, emotion := range es.lexicon.index[token] {
			counts[emotionRank(emotion)] += es.weight(emotion, compound)
		}
	}
	return counts
}

func (es *EmotionScorer) weight(emotion Emotion, compound float64) float64 {
	if es.config.Mode == UniformMode {
		return 1
	}
	return es.lexicon.weights[emotion].For(compound)
}

// distribution rescales counts by (count/max)*(count/total), which favors
// the dominant emotion and squeezes minor ones toward zero. The result sums
// to at most 1. With no hits it falls back on the compound score.
func (es *EmotionScorer) distribution(counts []float64, compound float64) EmotionScores {
	total := floats.Sum(counts)
	if total > 0 {
		peak := floats.Max(counts)
		scores := make(EmotionScores, len(AllEmotions))
		for i, emotion := range AllEmotions {
			c := counts[i]
			scores[emotion] = (c / peak) * (c / total)
		}
		return scores
	}

	switch {
	case compound > fallbackPositiveBound:
		return EmotionScores{Joy: 0.6, Gratitude: 0.4}
	case compound < fallbackNegativeBound:
		return EmotionScores{Sadness: 0.6, Frustration: 0.4}
	default:
		return EmotionScores{NoEmotion: 1.0}
	}
}

// rank returns the emotions meeting the threshold, highest score first. Ties
// keep enumeration order, with the neutral sentinel last.
func (es *EmotionScorer) rank(scores EmotionScores) []Emotion {
	ranked := make([]Emotion, 0, len(scores))
	for emotion, score := range scores {
		if score >= es.config.Threshold {
			ranked = append(ranked, emotion)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i]], scores[ranked[j]]
		if si != sj {
			return si > sj
		}
		return emotionRank(ranked[i]) < emotionRank(ranked[j])
	})
	return ranked
}

// defaultSecondary is the polarity-driven pair used when nothing else
// qualifies.
func defaultSecondary(compound float64, limit int) []Emotion {
	pair := []Emotion{Frustration, Sadness}
	if compound > 0 {
		pair = []Emotion{Gratitude, Pride}
	}
	if limit < len(pair) {
		pair = pair[:limit]
	}
	return pair
}
