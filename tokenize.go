package moodscope

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenTester func(string) bool

type Tokenizer interface {
	Tokenize(string) []*Token
}

// iterTokenizer splits a sentence into words.
type iterTokenizer struct {
	splitCases     []string
	suffixes       []string
	prefixes       []string
	isUnsplittable TokenTester
}

type TokenizerOptFunc func(*iterTokenizer)

// UsingIsUnsplittable gives a function that tests whether a token is splittable or not.
func UsingIsUnsplittable(x TokenTester) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.isUnsplittable = x
	}
}

// Use the provided suffixes.
func UsingSuffixes(x []string) TokenizerOptFunc {
	return func(tokenizer *iterTokenizer) {
		tokenizer.suffixes = x
	}
}

// NewIterTokenizer returns the default word tokenizer. It holds no mutable
// state and may be shared.
func NewIterTokenizer(opts ...TokenizerOptFunc) *iterTokenizer {
	tok := new(iterTokenizer)

	tok.isUnsplittable = func(_ string) bool { return false }
	tok.prefixes = prefixes
	tok.suffixes = suffixes

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	tok.splitCases = append(tok.splitCases, contractions...)

	return tok
}

func addToken(s string, start int, toks []*Token) []*Token {
	if strings.TrimSpace(s) != "" {
		toks = append(toks, &Token{Text: s, Start: start, End: start + len(s)})
	}
	return toks
}

func (t *iterTokenizer) isSpecial(token string) bool {
	_, found := emoticons[token]
	return found || internalRE.MatchString(token) || t.isUnsplittable(token)
}

// doSplit breaks one whitespace-delimited span into tokens. offset is the
// span's position in the sanitized text.
func (t *iterTokenizer) doSplit(token string, offset int) []*Token {
	tokens := []*Token{}
	suffs := []*Token{}

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		if t.isSpecial(token) {
			// Emoticons and dotted abbreviations are kept whole.
			tokens = addToken(token, offset, tokens)
			break
		}
		last = utf8.RuneCountInString(token)
		lower := strings.ToLower(token)
		if hasAnyPrefix(token, t.prefixes) {
			// $100 -> [$, 100].
			tokens = addToken(token[:1], offset, tokens)
			token = token[1:]
			offset++
		} else if idx := hasAnyIndex(lower, t.splitCases); idx > 0 {
			// they'll -> [they, 'll], don't -> [do, n't].
			tokens = addToken(token[:idx], offset, tokens)
			token = token[idx:]
			offset += idx
		} else if hasAnySuffix(token, t.suffixes) {
			// Well) -> [Well, )].
			end := len(token) - 1
			suffs = append([]*Token{{Text: token[end:], Start: offset + end, End: offset + end + 1}}, suffs...)
			token = token[:end]
		} else {
			tokens = addToken(token, offset, tokens)
			break
		}
	}

	return append(tokens, suffs...)
}

// Tokenize splits a sentence into a slice of words. Offsets refer to the text
// after sanitizing; every replacement keeps or shortens byte length.
func (t *iterTokenizer) Tokenize(text string) []*Token {
	var tokens []*Token

	clean := sanitizer.Replace(text)
	start := -1
	for i, r := range clean {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, t.doSplit(clean[start:i], start)...)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, t.doSplit(clean[start:], start)...)
	}

	return tokens
}

func hasAnyPrefix(s string, prefixes []string) bool {
	n := len(s)
	for _, prefix := range prefixes {
		if n > len(prefix) && strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	n := len(s)
	for _, suffix := range suffixes {
		if n > len(suffix) && strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// hasAnyIndex returns the position of the first split case found inside s,
// or -1.
func hasAnyIndex(s string, cases []string) int {
	n := len(s)
	for _, c := range cases {
		if idx := strings.Index(s, c); idx >= 0 && n > len(c) {
			return idx
		}
	}
	return -1
}

var internalRE = regexp.MustCompile(`(?i)^(?:[a-z]\.){2,}$`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
var contractions = []string{"'ll", "'s", "'re", "'m", "n't", "'ve", "'d"}
var suffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var prefixes = []string{"$", "(", `"`, "["}
var emoticons = map[string]int{
	"(-8":   1,
	"(-;":   1,
	"(-_-)": 1,
	"(._.)": 1,
	"(:":    1,
	"(=":    1,
	"(o:":   1,
	"-__-":  1,
	"8-)":   1,
	"8-d":   1,
	"8d":    1,
	":(":    1,
	":((":   1,
	":(((":  1,
	":()":   1,
	":)":    1,
	":))":   1,
	":)))":  1,
	":-)":   1,
	":-))":  1,
	":-)))": 1,
	":-(":   1,
	":-*":   1,
	":-/":   1,
	":-x":   1,
	":-]":   1,
	":-o":   1,
	":-p":   1,
	":-|":   1,
	":-}":   1,
	":0":    1,
	":3":    1,
	":p":    1,
	":]":    1,
	":`(":   1,
	":`)":   1,
	":`-(":  1,
	":o":    1,
	":o)":   1,
	"=(":    1,
	"=)":    1,
	"=d":    1,
	"=|":    1,
	"@_@":   1,
	"o.o":   1,
	"o_o":   1,
	"v_v":   1,
	"xd":    1,
	"xdd":   1,
	"[-:":   1,
	"^___^": 1,
	"o_0":   1,
	"¯\\(ツ)/¯": 1,
}
