package moodscope

import "testing"

func TestClassifyCompound(t *testing.T) {
	tests := []struct {
		compound float64
		expected SentimentLabel
	}{
		{1.0, VeryPositive},
		{0.6, VeryPositive},
		{0.59999, Positive},
		{0.2, Positive},
		{0.19999, Neutral},
		{0.0, Neutral},
		{-0.19999, Neutral},
		{-0.2, Negative},
		{-0.59999, Negative},
		{-0.6, VeryNegative},
		{-1.0, VeryNegative},
	}

	for _, tt := range tests {
		if got := ClassifyCompound(tt.compound); got != tt.expected {
			t.Errorf("ClassifyCompound(%v) = %q, want %q", tt.compound, got, tt.expected)
		}
	}
}

func TestMagnitude(t *testing.T) {
	for _, c := range []float64{-0.75, 0, 0.75} {
		got := Magnitude(c)
		if got < 0 || (c != 0 && got != 0.75) {
			t.Errorf("Magnitude(%v) = %v", c, got)
		}
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		p        Probabilities
		expected float64
	}{
		{Probabilities{Positive: 0.5, Neutral: 0.3, Negative: 0.2}, 0.5},
		{Probabilities{Positive: 0.1, Neutral: 0.7, Negative: 0.2}, 0.7},
		{Probabilities{Positive: 0.1, Neutral: 0.1, Negative: 0.8}, 0.8},
		{Probabilities{Neutral: 1}, 1},
	}

	for _, tt := range tests {
		if got := Confidence(tt.p); got != tt.expected {
			t.Errorf("Confidence(%+v) = %v, want %v", tt.p, got, tt.expected)
		}
	}
}
