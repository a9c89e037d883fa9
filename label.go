package moodscope

import "math"

// Compound score cut points between the five sentiment labels.
const (
	veryPositiveBound = 0.6
	positiveBound     = 0.2
	negativeBound     = -0.2
	veryNegativeBound = -0.6
)

// ClassifyCompound maps a compound score to its ordinal sentiment label.
// Exactly 0.2 is Positive and exactly -0.2 is Negative.
func ClassifyCompound(compound float64) SentimentLabel {
	switch {
	case compound >= veryPositiveBound:
		return VeryPositive
	case compound >= positiveBound:
		return Positive
	case compound > negativeBound:
		return Neutral
	case compound > veryNegativeBound:
		return Negative
	default:
		return VeryNegative
	}
}

// Magnitude is the strength of a compound score regardless of direction.
func Magnitude(compound float64) float64 {
	return math.Abs(compound)
}

// Confidence is the largest of the three class probabilities.
func Confidence(p Probabilities) float64 {
	return math.Max(p.Positive, math.Max(p.Neutral, p.Negative))
}
