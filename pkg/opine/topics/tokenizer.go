package topics

import (
	"strings"
	"unicode"
)

// Tokenizer handles text tokenization and normalization for topic
// extraction.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the given stopword list. A nil
// list falls back to the built-in English stopwords.
func NewTokenizer(stopwords []string) *Tokenizer {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize splits text into normalized tokens, removing stopwords,
// short tokens, and pure-numeric tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			if current.Len() > 0 {
				if word := t.processToken(current.String()); word != "" {
					tokens = append(tokens, word)
				}
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		if word := t.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// processToken applies cleaning and stopword filtering.
func (t *Tokenizer) processToken(token string) string {
	word := cleanToken(token)
	// Topics shorter than three characters carry little signal.
	if len(word) <= 2 {
		return ""
	}

	// Mixed tokens like "v2" or "usb-c" are kept; bare numbers dropped.
	if isNumericOnly(word) {
		return ""
	}

	if _, stop := t.stopwords[word]; stop {
		return ""
	}
	return word
}

// cleanToken strips leading/trailing hyphens and collapses runs.
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

// AddStopword adds a word to the stopword list.
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// DefaultStopwords returns the built-in English stopword list.
func DefaultStopwords() []string {
	return []string{
		"the", "a", "an", "and", "or", "but", "if", "then", "else",
		"in", "on", "at", "to", "for", "of", "with", "by", "from",
		"is", "are", "was", "were", "be", "been", "being", "its",
		"has", "have", "had", "do", "does", "did", "done", "took",
		"will", "would", "should", "could", "can", "may", "might",
		"this", "that", "these", "those", "there", "here", "where",
		"when", "what", "which", "who", "whom", "how", "why",
		"i", "me", "my", "we", "our", "you", "your", "he", "she",
		"it", "they", "them", "their", "his", "her",
		"not", "no", "nor", "so", "too", "very", "just", "only",
		"also", "than", "both", "each", "all", "any", "some", "such",
		"get", "got", "one", "two", "either", "because", "about",
		"into", "over", "under", "after", "before", "again", "more",
		"most", "other", "own", "same", "out", "off", "up", "down",
	}
}
