// Package topics derives recurring keyword and category mentions from a
// feedback corpus. It is pure counting: no statistical model beyond
// term frequency with a stopword filter.
package topics

import (
	"sort"

	"github.com/opinelab/opine/pkg/opine/feedback"
)

// TopicCount aggregates one topic across a corpus. Rebuilt fresh per
// run; no persistence.
type TopicCount struct {
	Topic     string   `json:"topic"`
	Count     int      `json:"count"`
	RecordIDs []string `json:"record_ids"`
}

// Extractor counts keyword topics over a corpus.
type Extractor struct {
	tokenizer *Tokenizer
	minCount  int
}

// NewExtractor creates a keyword extractor. Topics mentioned fewer than
// minCount times are excluded; minCount below 1 is clamped to 1.
func NewExtractor(stopwords []string, minCount int) *Extractor {
	if minCount < 1 {
		minCount = 1
	}
	return &Extractor{
		tokenizer: NewTokenizer(stopwords),
		minCount:  minCount,
	}
}

// Extract counts keyword occurrences across the corpus. Results are
// ordered by descending count; ties keep first-seen order.
func (e *Extractor) Extract(records []feedback.Record) []TopicCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	mentions := make(map[string][]string)
	seenIn := make(map[string]map[string]struct{})
	order := 0

	for _, rec := range records {
		for _, tok := range e.tokenizer.Tokenize(rec.Text) {
			if _, ok := counts[tok]; !ok {
				firstSeen[tok] = order
				order++
				seenIn[tok] = make(map[string]struct{})
			}
			counts[tok]++
			if _, ok := seenIn[tok][rec.ID]; !ok {
				seenIn[tok][rec.ID] = struct{}{}
				mentions[tok] = append(mentions[tok], rec.ID)
			}
		}
	}

	out := make([]TopicCount, 0, len(counts))
	for topic, count := range counts {
		if count < e.minCount {
			continue
		}
		out = append(out, TopicCount{
			Topic:     topic,
			Count:     count,
			RecordIDs: mentions[topic],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Topic] < firstSeen[out[j].Topic]
	})

	return out
}
