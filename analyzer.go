package moodscope

import (
	"context"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Option configures an Analyzer.
type Option func(*analyzerOptions)

type analyzerOptions struct {
	lexicon        *EmotionLexicon
	polarity       PolarityScorer
	emotionConfig  EmotionConfig
	normalizer     *Normalizer
	language       Language
	extraStopWords []string
	keyPhraseLimit int
	maxTextLength  int
}

// WithLexicon replaces the built-in emotion lexicon.
func WithLexicon(lex *EmotionLexicon) Option {
	return func(o *analyzerOptions) {
		o.lexicon = lex
	}
}

// WithPolarityScorer replaces the default VADER backend.
func WithPolarityScorer(ps PolarityScorer) Option {
	return func(o *analyzerOptions) {
		o.polarity = ps
	}
}

// WithEmotionConfig sets the weighting mode, threshold and secondary count.
func WithEmotionConfig(cfg EmotionConfig) Option {
	return func(o *analyzerOptions) {
		o.emotionConfig = cfg
	}
}

// WithNormalizer replaces the default English normalizer. It takes
// precedence over WithLanguage and WithExtraStopWords.
func WithNormalizer(n *Normalizer) Option {
	return func(o *analyzerOptions) {
		o.normalizer = n
	}
}

// WithLanguage selects the stop-word list.
func WithLanguage(lang Language) Option {
	return func(o *analyzerOptions) {
		o.language = lang
	}
}

// WithExtraStopWords adds words that never become key phrases.
func WithExtraStopWords(words ...string) Option {
	return func(o *analyzerOptions) {
		o.extraStopWords = append(o.extraStopWords, words...)
	}
}

// WithKeyPhraseLimit caps the number of key phrases per report.
func WithKeyPhraseLimit(n int) Option {
	return func(o *analyzerOptions) {
		o.keyPhraseLimit = n
	}
}

// WithMaxTextLength rejects texts longer than n runes. Zero means no limit.
func WithMaxTextLength(n int) Option {
	return func(o *analyzerOptions) {
		o.maxTextLength = n
	}
}

// Analyzer produces an AnalysisReport for a piece of text. All of its
// collaborators are read-only after construction, so one Analyzer can serve
// concurrent callers.
type Analyzer struct {
	normalizer     *Normalizer
	polarity       PolarityScorer
	emotions       *EmotionScorer
	keyPhraseLimit int
	maxTextLength  int
}

// NewAnalyzer builds an Analyzer. Invalid settings are reported as
// ConfigurationError.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	o := analyzerOptions{
		emotionConfig:  DefaultEmotionConfig(),
		language:       English,
		keyPhraseLimit: DefaultKeyPhraseLimit,
	}
	for _, applyOpt := range opts {
		applyOpt(&o)
	}

	if o.lexicon == nil {
		o.lexicon = DefaultEmotionLexicon()
	}
	if o.polarity == nil {
		o.polarity = NewVaderScorer()
	}
	if o.keyPhraseLimit < 0 {
		return nil, ConfigErrorf(nil, "key phrase limit must not be negative, got %d", o.keyPhraseLimit)
	}
	if o.maxTextLength < 0 {
		return nil, ConfigErrorf(nil, "max text length must not be negative, got %d", o.maxTextLength)
	}

	if o.normalizer == nil {
		if !IsMultilingualSupported(o.language) {
			return nil, ConfigErrorf(nil, "unsupported language %q", o.language)
		}
		n, err := NewNormalizer(UsingStopWords(NewStopWords(o.language, o.extraStopWords...)))
		if err != nil {
			return nil, err
		}
		o.normalizer = n
	}

	emotions, err := NewEmotionScorer(o.lexicon, o.emotionConfig)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		normalizer:     o.normalizer,
		polarity:       o.polarity,
		emotions:       emotions,
		keyPhraseLimit: o.keyPhraseLimit,
		maxTextLength:  o.maxTextLength,
	}, nil
}

// Analyze scores one text. The image is accepted for interface compatibility
// with multimodal callers and is not used. Empty text is valid and yields the
// neutral report; invalid UTF-8 and over-long text are InvalidInput.
func (a *Analyzer) Analyze(text string, image []byte) (*AnalysisReport, error) {
	_ = image

	if !utf8.ValidString(text) {
		return nil, InvalidInputf("text is not valid UTF-8")
	}
	if a.maxTextLength > 0 {
		if n := utf8.RuneCountInString(text); n > a.maxTextLength {
			return nil, InvalidInputf("text is %d characters long, limit is %d", n, a.maxTextLength)
		}
	}

	normalized := a.normalizer.Normalize(text)
	polarity := a.polarity.Score(text)
	emotions := a.emotions.Score(normalized.Tokens, polarity.Compound)

	return &AnalysisReport{
		SentimentScore:    polarity.Compound,
		SentimentLabel:    ClassifyCompound(polarity.Compound),
		Magnitude:         Magnitude(polarity.Compound),
		Confidence:        Confidence(polarity.Probabilities),
		Probabilities:     polarity.Probabilities,
		PrimaryEmotion:    emotions.Primary,
		SecondaryEmotions: emotions.Secondary,
		EmotionScores:     emotions.Scores,
		KeyPhrases:        ExtractKeyPhrases(normalized.Filtered, a.keyPhraseLimit),
	}, nil
}

// AnalyzeBatch analyzes texts with at most concurrency goroutines and returns
// the reports in input order. It stops at the first error or when ctx is
// done.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string, concurrency int) ([]*AnalysisReport, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	reports := make([]*AnalysisReport, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, text := range texts {
		i, text := i, text
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := a.Analyze(text, nil)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
