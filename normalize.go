package moodscope

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A NormalizerOpt represents a setting that changes how text is normalized.
//
// For example, it might disable sentence segmentation:
//
//	n, err := moodscope.NewNormalizer(moodscope.WithSegmentation(false))
type NormalizerOpt func(n *Normalizer)

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(t Tokenizer) NormalizerOpt {
	return func(n *Normalizer) {
		n.tokenizer = t
	}
}

// WithSegmentation can enable (the default) or disable sentence segmentation.
// With segmentation on, a period is split off only at the end of a sentence,
// so abbreviations such as "dr." stay whole. Without it every trailing
// period becomes its own token.
func WithSegmentation(include bool) NormalizerOpt {
	return func(n *Normalizer) {
		n.segment = include
	}
}

// UsingStopWords sets the stop-word filter used for key-phrase candidates.
func UsingStopWords(sw *StopWords) NormalizerOpt {
	return func(n *Normalizer) {
		n.stopWords = sw
	}
}

// WithMinPhraseLength sets the rune length a filtered token must exceed.
func WithMinPhraseLength(length int) NormalizerOpt {
	return func(n *Normalizer) {
		n.minPhraseLen = length
	}
}

// Normalizer turns raw text into the token streams the scorers consume.
type Normalizer struct {
	tokenizer    Tokenizer
	segmenter    *sentences.DefaultSentenceTokenizer
	segment      bool
	stopWords    *StopWords
	minPhraseLen int
}

// Normalized is the result of normalizing one text.
type Normalized struct {
	Text      string     // Lowercased input.
	Sentences []Sentence // Sentences; the whole text when segmentation is off.
	Tokens    []string   // Every token, lowercase; used for emotion matching.
	Filtered  []string   // Tokens minus stop words and short words.
}

// NewNormalizer creates a Normalizer according to the user-specified options.
func NewNormalizer(opts ...NormalizerOpt) (*Normalizer, error) {
	n := &Normalizer{
		tokenizer:    NewIterTokenizer(),
		segment:      true,
		stopWords:    NewStopWords(English),
		minPhraseLen: 3,
	}
	for _, applyOpt := range opts {
		applyOpt(n)
	}

	if n.segment {
		segmenter, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			return nil, ConfigErrorf(err, "error loading sentence segmenter")
		}
		n.segmenter = segmenter
	}

	return n, nil
}

// Normalize lowercases text, splits it into sentences and tokens, and derives
// the filtered token list. Empty input gives empty slices.
func (n *Normalizer) Normalize(text string) Normalized {
	lower := strings.ToLower(text)
	out := Normalized{
		Text:     lower,
		Tokens:   []string{},
		Filtered: []string{},
	}
	if strings.TrimSpace(lower) == "" {
		return out
	}

	for _, sent := range n.sentences(lower) {
		out.Sentences = append(out.Sentences, sent)
		toks := n.tokenizer.Tokenize(sent.Text)
		if n.segmenter != nil {
			toks = joinInnerPeriods(toks)
		}
		for _, tok := range toks {
			out.Tokens = append(out.Tokens, tok.Text)
		}
	}

	for _, tok := range out.Tokens {
		if utf8.RuneCountInString(tok) <= n.minPhraseLen {
			continue
		}
		if n.stopWords != nil && n.stopWords.IsStopWord(tok) {
			continue
		}
		out.Filtered = append(out.Filtered, tok)
	}

	return out
}

func (n *Normalizer) sentences(text string) []Sentence {
	if n.segmenter == nil {
		return []Sentence{{Text: text}}
	}

	var out []Sentence
	for _, s := range n.segmenter.Tokenize(text) {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		out = append(out, Sentence{Text: s.Text})
	}
	if len(out) == 0 {
		out = append(out, Sentence{Text: text})
	}
	return out
}

// joinInnerPeriods reattaches periods the tokenizer split off inside one
// sentence: "dr", "." becomes "dr.". The last period of the sentence, before
// any closing quotes or brackets, stays a separate token, and runs of
// periods are left alone.
func joinInnerPeriods(toks []*Token) []*Token {
	final := len(toks) - 1
	for final >= 0 && isCloser(toks[final].Text) {
		final--
	}

	out := make([]*Token, 0, len(toks))
	for i, tok := range toks {
		if tok.Text == "." && i != final && len(out) > 0 {
			prev := out[len(out)-1]
			nextDot := i+1 < len(toks) && toks[i+1].Text == "." && toks[i+1].Start == tok.End
			if prev.End == tok.Start && !nextDot && strings.IndexFunc(prev.Text, unicode.IsLetter) >= 0 &&
				!strings.HasSuffix(prev.Text, ".") {
				out[len(out)-1] = &Token{Text: prev.Text + ".", Start: prev.Start, End: tok.End}
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

func isCloser(s string) bool {
	switch s {
	case ")", "]", `"`, "'":
		return true
	}
	return false
}
