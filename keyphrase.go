package moodscope

// DefaultKeyPhraseLimit is the number of key phrases reported per text.
const DefaultKeyPhraseLimit = 5

// ExtractKeyPhrases returns up to limit distinct tokens from a filtered token
// stream, in order of first occurrence. The result is never nil.
func ExtractKeyPhrases(filtered []string, limit int) []string {
	phrases := []string{}
	if limit <= 0 {
		return phrases
	}

	seen := make(map[string]struct{}, len(filtered))
	for _, token := range filtered {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		phrases = append(phrases, token)
		if len(phrases) == limit {
			break
		}
	}
	return phrases
}
