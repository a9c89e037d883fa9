package moodscope

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmotionWeight biases an emotion's trigger count by the overall polarity of
// the text.
type EmotionWeight struct {
	Positive float64 `json:"positive" yaml:"positive"`
	Negative float64 `json:"negative" yaml:"negative"`
}

// For returns the weight that applies to a text with the given compound score.
func (w EmotionWeight) For(compound float64) float64 {
	if compound > 0 {
		return w.Positive
	}
	return w.Negative
}

// EmotionLexicon maps each emotion to its trigger words and weights. It is
// immutable once built and may be shared between goroutines.
type EmotionLexicon struct {
	triggers map[Emotion]map[string]struct{}
	weights  map[Emotion]EmotionWeight
	index    map[string][]Emotion // trigger word -> emotions, enumeration order
}

// ExternalLexicon represents the structure of an external lexicon file.
type ExternalLexicon struct {
	Emotions map[string]EmotionEntry `json:"emotions" yaml:"emotions"`
}

// EmotionEntry is one emotion in an external lexicon file.
type EmotionEntry struct {
	Words   []string       `json:"words,omitempty" yaml:"words,omitempty"`
	Weights *EmotionWeight `json:"weights,omitempty" yaml:"weights,omitempty"`
}

var defaultTriggers = map[Emotion][]string{
	Joy:         {"joy", "happy", "excited", "delight", "pleased", "thrilled", "ecstatic", "elated"},
	Sadness:     {"sad", "unhappy", "disappointed", "grief", "sorry", "depressed", "heartbroken", "miserable", "sorrow", "down", "blue"},
	Fear:        {"fear", "scared", "afraid", "worried", "anxious", "terrified", "nervous", "dread", "panic", "frightened", "intimidated"},
	Anger:       {"angry", "mad", "frustrated", "annoyed", "upset", "irritated", "furious", "outraged", "enraged", "fuming"},
	Surprise:    {"surprised", "amazed", "shocked", "unexpected", "astonished", "astounded", "stunned", "bewildered"},
	Shame:       {"ashamed", "embarrassed", "guilty", "regret", "humiliated", "remorseful", "mortified"},
	Envy:        {"envious", "jealous", "covet", "resentful", "bitter", "green-eyed"},
	Pride:       {"proud", "accomplished", "achieved", "successful", "triumphant", "confident", "dignified"},
	Frustration: {"frustrated", "annoyed", "irritated", "exasperated", "aggravated", "bothered"},
	Gratitude:   {"thankful", "grateful", "appreciative", "indebted", "obliged", "blessed"},
}

var defaultWeights = map[Emotion]EmotionWeight{
	Joy:         {Positive: 1.2, Negative: 0.3},
	Sadness:     {Positive: 0.3, Negative: 1.2},
	Fear:        {Positive: 0.4, Negative: 1.1},
	Anger:       {Positive: 0.2, Negative: 1.3},
	Surprise:    {Positive: 0.9, Negative: 0.9},
	Shame:       {Positive: 0.3, Negative: 1.2},
	Envy:        {Positive: 0.4, Negative: 1.1},
	Pride:       {Positive: 1.2, Negative: 0.3},
	Frustration: {Positive: 0.3, Negative: 1.2},
	Gratitude:   {Positive: 1.3, Negative: 0.2},
}

// DefaultEmotionLexicon returns the built-in lexicon.
func DefaultEmotionLexicon() *EmotionLexicon {
	lex, err := NewEmotionLexicon(defaultTriggers, defaultWeights)
	if err != nil {
		// The built-in tables are complete.
		panic(err)
	}
	return lex
}

// NewEmotionLexicon builds a lexicon from trigger and weight tables. The
// inputs are copied. Every emotion in AllEmotions needs at least one trigger
// word and a weight pair with both components above zero.
func NewEmotionLexicon(triggers map[Emotion][]string, weights map[Emotion]EmotionWeight) (*EmotionLexicon, error) {
	lex := &EmotionLexicon{
		triggers: make(map[Emotion]map[string]struct{}, len(AllEmotions)),
		weights:  make(map[Emotion]EmotionWeight, len(AllEmotions)),
		index:    make(map[string][]Emotion),
	}

	for emotion, words := range triggers {
		if !IsKnownEmotion(emotion) {
			return nil, ConfigErrorf(nil, "unknown emotion %q in trigger table", emotion)
		}
		set := make(map[string]struct{}, len(words))
		for _, word := range words {
			word = strings.ToLower(strings.TrimSpace(word))
			if word != "" {
				set[word] = struct{}{}
			}
		}
		lex.triggers[emotion] = set
	}

	for emotion, weight := range weights {
		if !IsKnownEmotion(emotion) {
			return nil, ConfigErrorf(nil, "unknown emotion %q in weight table", emotion)
		}
		lex.weights[emotion] = weight
	}

	if err := lex.validate(); err != nil {
		return nil, err
	}

	for _, emotion := range AllEmotions {
		for word := range lex.triggers[emotion] {
			lex.index[word] = append(lex.index[word], emotion)
		}
	}

	return lex, nil
}

// validate checks that the fixed emotion set is fully covered.
func (el *EmotionLexicon) validate() error {
	for _, emotion := range AllEmotions {
		if len(el.triggers[emotion]) == 0 {
			return ConfigErrorf(nil, "emotion %q has no trigger words", emotion)
		}
		weight, ok := el.weights[emotion]
		if !ok {
			return ConfigErrorf(nil, "emotion %q has no weights", emotion)
		}
		if weight.Positive <= 0 || weight.Negative <= 0 {
			return ConfigErrorf(nil, "emotion %q weights must be positive, got %+v", emotion, weight)
		}
	}
	return nil
}

// LoadEmotionLexicon merges an external lexicon file onto the built-in
// tables. Trigger words in the file are added; weights in the file replace
// the defaults.
func LoadEmotionLexicon(path string) (*EmotionLexicon, error) {
	return loadEmotionLexicon(path, true)
}

// LoadEmotionLexiconStrict builds a lexicon from an external file alone. The
// file must cover every emotion.
func LoadEmotionLexiconStrict(path string) (*EmotionLexicon, error) {
	return loadEmotionLexicon(path, false)
}

func loadEmotionLexicon(path string, withDefaults bool) (*EmotionLexicon, error) {
	external, err := readExternalLexicon(path)
	if err != nil {
		return nil, err
	}

	triggers := make(map[Emotion][]string, len(AllEmotions))
	weights := make(map[Emotion]EmotionWeight, len(AllEmotions))
	if withDefaults {
		for emotion, words := range defaultTriggers {
			triggers[emotion] = append([]string(nil), words...)
		}
		for emotion, weight := range defaultWeights {
			weights[emotion] = weight
		}
	}

	for name, entry := range external.Emotions {
		emotion := Emotion(strings.ToLower(strings.TrimSpace(name)))
		if !IsKnownEmotion(emotion) {
			return nil, ConfigErrorf(nil, "%s: unknown emotion %q", path, name)
		}
		triggers[emotion] = append(triggers[emotion], entry.Words...)
		if entry.Weights != nil {
			weights[emotion] = *entry.Weights
		}
	}

	lex, err := NewEmotionLexicon(triggers, weights)
	if err != nil {
		return nil, ConfigErrorf(err, "invalid lexicon %s", path)
	}
	return lex, nil
}

// readExternalLexicon parses a JSON or YAML lexicon file, chosen by extension.
func readExternalLexicon(path string) (*ExternalLexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ConfigErrorf(err, "error reading lexicon file %s", path)
	}

	var external ExternalLexicon
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &external)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &external)
	default:
		return nil, ConfigErrorf(nil, "unsupported lexicon format %q", ext)
	}
	if err != nil {
		return nil, ConfigErrorf(err, "error parsing lexicon %s", path)
	}
	return &external, nil
}

// Emotions returns the emotion categories in enumeration order.
func (el *EmotionLexicon) Emotions() []Emotion {
	return append([]Emotion(nil), AllEmotions...)
}

// Triggers returns the sorted trigger words for an emotion.
func (el *EmotionLexicon) Triggers(emotion Emotion) []string {
	words := make([]string, 0, len(el.triggers[emotion]))
	for word := range el.triggers[emotion] {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Weight returns the weight pair for an emotion.
func (el *EmotionLexicon) Weight(emotion Emotion) EmotionWeight {
	return el.weights[emotion]
}

// Match returns every emotion the token triggers, in enumeration order.
func (el *EmotionLexicon) Match(token string) []Emotion {
	return append([]Emotion(nil), el.index[token]...)
}

// Size returns the number of distinct trigger words.
func (el *EmotionLexicon) Size() int {
	return len(el.index)
}

// Export returns the lexicon in its external file representation.
func (el *EmotionLexicon) Export() ExternalLexicon {
	out := ExternalLexicon{Emotions: make(map[string]EmotionEntry, len(AllEmotions))}
	for _, emotion := range AllEmotions {
		weight := el.weights[emotion]
		out.Emotions[string(emotion)] = EmotionEntry{
			Words:   el.Triggers(emotion),
			Weights: &weight,
		}
	}
	return out
}

// String summarizes the lexicon.
func (el *EmotionLexicon) String() string {
	return fmt.Sprintf("EmotionLexicon{emotions: %d, triggers: %d}", len(AllEmotions), el.Size())
}
