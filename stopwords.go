package moodscope

import (
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
)

// StopWords decides whether a token is a stop word for one language. The
// bbalet/stopwords lists are used as-is; extra words can be layered on top
// without touching the library's package-level tables.
type StopWords struct {
	language Language
	extra    map[string]struct{}
}

// NewStopWords creates a stop-word filter for lang with optional extra words.
func NewStopWords(lang Language, extra ...string) *StopWords {
	if lang == "" {
		lang = English
	}
	sw := &StopWords{
		language: lang,
		extra:    make(map[string]struct{}, len(extra)),
	}
	for _, word := range extra {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			sw.extra[word] = struct{}{}
		}
	}
	return sw
}

// Language returns the filter's language.
func (sw *StopWords) Language() Language {
	return sw.language
}

// IsStopWord reports whether word should be dropped from key phrases. Bare
// punctuation counts as a stop word; numbers such as "2024" never do.
func (sw *StopWords) IsStopWord(word string) bool {
	lower := strings.ToLower(word)
	if _, ok := sw.extra[lower]; ok {
		return true
	}
	if strings.IndexFunc(lower, unicode.IsLetter) < 0 {
		// The library's segmenter strips digits, so letterless tokens are
		// decided here.
		return strings.IndexFunc(lower, unicode.IsDigit) < 0
	}
	// CleanString pads every kept word with a space.
	return strings.TrimSpace(stopwords.CleanString(lower, string(sw.language), false)) == ""
}

// IsMultilingualSupported reports whether stop-word lists exist for lang.
func IsMultilingualSupported(lang Language) bool {
	for _, supported := range GetSupportedLanguages() {
		if lang == supported {
			return true
		}
	}
	return false
}

// GetSupportedLanguages returns the languages accepted in configuration.
func GetSupportedLanguages() []Language {
	return []Language{English, Spanish, French, German}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
