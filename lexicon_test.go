package moodscope

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeLexiconFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write lexicon file: %v", err)
	}
	return path
}

func TestDefaultEmotionLexicon(t *testing.T) {
	lex := DefaultEmotionLexicon()

	for _, emotion := range AllEmotions {
		if len(lex.Triggers(emotion)) == 0 {
			t.Errorf("Emotion %s has no triggers", emotion)
		}
		w := lex.Weight(emotion)
		if w.Positive <= 0 || w.Negative <= 0 {
			t.Errorf("Emotion %s has weights %+v", emotion, w)
		}
	}

	if !reflect.DeepEqual(lex.Emotions(), AllEmotions) {
		t.Errorf("Emotions() = %v", lex.Emotions())
	}
	if lex.Size() == 0 {
		t.Error("Expected a non-empty trigger index")
	}
}

func TestLexiconMatch(t *testing.T) {
	lex := DefaultEmotionLexicon()

	tests := []struct {
		token    string
		expected []Emotion
	}{
		{"happy", []Emotion{Joy}},
		{"frustrated", []Emotion{Anger, Frustration}},
		{"annoyed", []Emotion{Anger, Frustration}},
		{"grateful", []Emotion{Gratitude}},
		{"green-eyed", []Emotion{Envy}},
		{"HAPPY", nil},
		{"table", nil},
	}

	for _, tt := range tests {
		got := lex.Match(tt.token)
		if len(got) == 0 && len(tt.expected) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Match(%q) = %v, want %v", tt.token, got, tt.expected)
		}
	}
}

func TestWeightFor(t *testing.T) {
	w := EmotionWeight{Positive: 1.2, Negative: 0.3}
	if w.For(0.5) != 1.2 {
		t.Errorf("Expected positive weight for positive compound")
	}
	if w.For(0) != 0.3 {
		t.Errorf("Expected negative weight for zero compound")
	}
	if w.For(-0.5) != 0.3 {
		t.Errorf("Expected negative weight for negative compound")
	}
}

func TestNewEmotionLexiconValidation(t *testing.T) {
	fullTriggers := func() map[Emotion][]string {
		out := make(map[Emotion][]string)
		for _, e := range AllEmotions {
			out[e] = []string{string(e) + "word"}
		}
		return out
	}
	fullWeights := func() map[Emotion]EmotionWeight {
		out := make(map[Emotion]EmotionWeight)
		for _, e := range AllEmotions {
			out[e] = EmotionWeight{Positive: 1, Negative: 1}
		}
		return out
	}

	tests := []struct {
		name   string
		mutate func(map[Emotion][]string, map[Emotion]EmotionWeight)
	}{
		{"Missing triggers", func(tr map[Emotion][]string, _ map[Emotion]EmotionWeight) { delete(tr, Envy) }},
		{"Blank triggers", func(tr map[Emotion][]string, _ map[Emotion]EmotionWeight) { tr[Envy] = []string{" ", ""} }},
		{"Missing weights", func(_ map[Emotion][]string, w map[Emotion]EmotionWeight) { delete(w, Pride) }},
		{"Zero weight", func(_ map[Emotion][]string, w map[Emotion]EmotionWeight) { w[Pride] = EmotionWeight{Positive: 1} }},
		{"Unknown emotion", func(tr map[Emotion][]string, _ map[Emotion]EmotionWeight) { tr["boredom"] = []string{"meh"} }},
		{"Sentinel as emotion", func(_ map[Emotion][]string, w map[Emotion]EmotionWeight) { w[NoEmotion] = EmotionWeight{1, 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, w := fullTriggers(), fullWeights()
			tt.mutate(tr, w)
			_, err := NewEmotionLexicon(tr, w)
			if !IsConfigurationError(err) {
				t.Errorf("Expected configuration error, got %v", err)
			}
		})
	}

	t.Run("Inputs are copied and lowercased", func(t *testing.T) {
		tr, w := fullTriggers(), fullWeights()
		tr[Joy] = []string{"  Yay "}
		lex, err := NewEmotionLexicon(tr, w)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		tr[Joy][0] = "changed"
		if got := lex.Triggers(Joy); !reflect.DeepEqual(got, []string{"yay"}) {
			t.Errorf("Triggers(joy) = %v", got)
		}
	})
}

func TestLoadEmotionLexicon(t *testing.T) {
	t.Run("JSON merge", func(t *testing.T) {
		path := writeLexiconFile(t, "extra.json", `{
			"emotions": {
				"joy": {"words": ["Wonderful", "amazing"]},
				"pride": {"weights": {"positive": 2.0, "negative": 0.5}}
			}
		}`)

		lex, err := LoadEmotionLexicon(path)
		if err != nil {
			t.Fatalf("Failed to load lexicon: %v", err)
		}
		if !reflect.DeepEqual(lex.Match("wonderful"), []Emotion{Joy}) {
			t.Error("Expected merged trigger 'wonderful'")
		}
		if !reflect.DeepEqual(lex.Match("happy"), []Emotion{Joy}) {
			t.Error("Expected default trigger 'happy' to survive the merge")
		}
		if w := lex.Weight(Pride); w.Positive != 2.0 || w.Negative != 0.5 {
			t.Errorf("Expected replaced pride weights, got %+v", w)
		}
		if w := lex.Weight(Joy); w != defaultWeights[Joy] {
			t.Errorf("Expected default joy weights, got %+v", w)
		}
	})

	t.Run("YAML merge", func(t *testing.T) {
		path := writeLexiconFile(t, "extra.yaml", `
emotions:
  gratitude:
    words: [thanks, appreciate]
`)
		lex, err := LoadEmotionLexicon(path)
		if err != nil {
			t.Fatalf("Failed to load lexicon: %v", err)
		}
		if !reflect.DeepEqual(lex.Match("thanks"), []Emotion{Gratitude}) {
			t.Error("Expected merged trigger 'thanks'")
		}
	})

	t.Run("Unknown emotion", func(t *testing.T) {
		path := writeLexiconFile(t, "bad.json", `{"emotions": {"boredom": {"words": ["meh"]}}}`)
		_, err := LoadEmotionLexicon(path)
		if !IsConfigurationError(err) {
			t.Errorf("Expected configuration error, got %v", err)
		}
	})

	t.Run("Malformed file", func(t *testing.T) {
		path := writeLexiconFile(t, "broken.json", `{"emotions": `)
		_, err := LoadEmotionLexicon(path)
		if !IsConfigurationError(err) {
			t.Errorf("Expected configuration error, got %v", err)
		}
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		path := writeLexiconFile(t, "lexicon.txt", `joy happy`)
		_, err := LoadEmotionLexicon(path)
		if !IsConfigurationError(err) {
			t.Errorf("Expected configuration error, got %v", err)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadEmotionLexicon(filepath.Join(t.TempDir(), "nope.json"))
		if !IsConfigurationError(err) {
			t.Errorf("Expected configuration error, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected wrapped not-exist error, got %v", err)
		}
	})
}

func TestLoadEmotionLexiconStrict(t *testing.T) {
	t.Run("Incomplete file", func(t *testing.T) {
		path := writeLexiconFile(t, "partial.json", `{
			"emotions": {"joy": {"words": ["yay"], "weights": {"positive": 1, "negative": 1}}}
		}`)
		_, err := LoadEmotionLexiconStrict(path)
		if !IsConfigurationError(err) {
			t.Errorf("Expected configuration error for incomplete lexicon, got %v", err)
		}
	})

	t.Run("Round trip through export", func(t *testing.T) {
		exported := DefaultEmotionLexicon().Export()
		if len(exported.Emotions) != len(AllEmotions) {
			t.Fatalf("Expected %d exported emotions, got %d", len(AllEmotions), len(exported.Emotions))
		}

		path := filepath.Join(t.TempDir(), "full.json")
		data, err := json.MarshalIndent(exported, "", "  ")
		if err != nil {
			t.Fatalf("Failed to marshal: %v", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}

		lex, err := LoadEmotionLexiconStrict(path)
		if err != nil {
			t.Fatalf("Failed to load exported lexicon: %v", err)
		}
		for _, emotion := range AllEmotions {
			if !reflect.DeepEqual(lex.Triggers(emotion), DefaultEmotionLexicon().Triggers(emotion)) {
				t.Errorf("Triggers for %s changed in round trip", emotion)
			}
		}
	})
}
