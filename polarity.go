package moodscope

import (
	"math"

	"github.com/jonreiter/govader"
)

// Polarity backends selectable by name.
const (
	BackendVader   = "vader"
	BackendLexicon = "lexicon"
)

// PolarityScorer assigns a compound polarity score and class probabilities
// to raw text. Implementations must be safe for concurrent use.
type PolarityScorer interface {
	Score(text string) PolarityResult
}

// PolarityFunc adapts an ordinary function to the PolarityScorer interface.
type PolarityFunc func(text string) PolarityResult

// Score calls f(text).
func (f PolarityFunc) Score(text string) PolarityResult {
	return f(text)
}

// NewPolarityScorer returns the named backend. An empty name selects VADER.
func NewPolarityScorer(backend string) (PolarityScorer, error) {
	switch backend {
	case "", BackendVader:
		return NewVaderScorer(), nil
	case BackendLexicon:
		return NewLexiconScorer(DefaultLexiconScorerConfig()), nil
	default:
		return nil, ConfigErrorf(nil, "unknown polarity backend %q", backend)
	}
}

// VaderScorer scores text with the VADER valence rules and lexicon.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the VADER lexicon. The analyzer is read-only after
// construction, so one scorer serves every request.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements PolarityScorer.
func (vs *VaderScorer) Score(text string) PolarityResult {
	s := vs.analyzer.PolarityScores(text)
	return normalizePolarity(PolarityResult{
		Compound: s.Compound,
		Probabilities: Probabilities{
			Positive: s.Positive,
			Neutral:  s.Neutral,
			Negative: s.Negative,
		},
	})
}

// normalizePolarity clamps the compound score to [-1, 1] and rescales the
// probabilities to sum to 1. All-zero or invalid probabilities become
// fully neutral.
func normalizePolarity(r PolarityResult) PolarityResult {
	r.Compound = clamp(r.Compound, -1, 1)
	if math.IsNaN(r.Compound) {
		r.Compound = 0
	}

	p := r.Probabilities
	p.Positive = nonNegative(p.Positive)
	p.Neutral = nonNegative(p.Neutral)
	p.Negative = nonNegative(p.Negative)

	sum := p.Positive + p.Neutral + p.Negative
	if sum == 0 || math.IsInf(sum, 0) {
		r.Probabilities = Probabilities{Neutral: 1}
		return r
	}
	r.Probabilities = Probabilities{
		Positive: p.Positive / sum,
		Neutral:  p.Neutral / sum,
		Negative: p.Negative / sum,
	}
	return r
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func nonNegative(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	return x
}
