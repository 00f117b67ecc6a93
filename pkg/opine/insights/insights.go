// Package insights turns aggregate sentiment and topic statistics into
// a short list of priority-tagged action items. All of it is pure
// arithmetic over fixed thresholds; no side effects.
package insights

import (
	"fmt"
	"strings"

	"github.com/opinelab/opine/pkg/opine/sentiment"
	"github.com/opinelab/opine/pkg/opine/topics"
)

// Priority tags how urgently an insight needs attention.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// Insight is a generated, human-readable recommendation.
type Insight struct {
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
	Topics   []string `json:"topics,omitempty"`
}

// Thresholds defines the ratios that trigger insights.
type Thresholds struct {
	// HighNegativeRatio flags the corpus as needing immediate action.
	HighNegativeRatio float64
	// MediumNegativeRatio flags a significant negative share.
	MediumNegativeRatio float64
	// HealthyPositiveRatio produces a "maintain course" note.
	HealthyPositiveRatio float64
}

// DefaultThresholds returns the standard trigger ratios.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighNegativeRatio:    0.40,
		MediumNegativeRatio:  0.20,
		HealthyPositiveRatio: 0.60,
	}
}

// maxNamedTopics bounds how many topics an insight calls out.
const maxNamedTopics = 3

// actionItems maps categories to the follow-up they suggest when they
// co-occur with negative feedback.
var actionItems = map[string]string{
	"quality":          "Review product quality control processes",
	"price":            "Re-evaluate pricing against perceived value",
	"customer_service": "Review customer service response workflows",
	"shipping":         "Audit packaging and carrier performance",
	"usability":        "Schedule a usability review of recent complaints",
	"performance":      "Profile the product paths customers call slow",
}

// Summarizer derives insights from aggregate counts.
type Summarizer struct {
	thresholds Thresholds
}

// NewSummarizer creates a summarizer; zero thresholds fall back to the
// defaults.
func NewSummarizer(t Thresholds) *Summarizer {
	def := DefaultThresholds()
	if t.HighNegativeRatio <= 0 {
		t.HighNegativeRatio = def.HighNegativeRatio
	}
	if t.MediumNegativeRatio <= 0 {
		t.MediumNegativeRatio = def.MediumNegativeRatio
	}
	if t.HealthyPositiveRatio <= 0 {
		t.HealthyPositiveRatio = def.HealthyPositiveRatio
	}
	return &Summarizer{thresholds: t}
}

// Summarize is a pure function of the aggregate results. An empty
// corpus produces no insights.
func (s *Summarizer) Summarize(sentiments []sentiment.Result, keywords, categories []topics.TopicCount) []Insight {
	total := len(sentiments)
	if total == 0 {
		return nil
	}

	negIDs := make(map[string]struct{})
	var negative, positive int
	for _, res := range sentiments {
		switch res.Label {
		case sentiment.Negative:
			negative++
			if res.RecordID != "" {
				negIDs[res.RecordID] = struct{}{}
			}
		case sentiment.Positive:
			positive++
		}
	}

	negRatio := float64(negative) / float64(total)
	posRatio := float64(positive) / float64(total)
	negTopics := negativeTopics(keywords, negIDs)

	var out []Insight
	switch {
	case negRatio > s.thresholds.HighNegativeRatio:
		text := fmt.Sprintf("Immediate attention required: %.0f%% of feedback is negative", negRatio*100)
		if len(negTopics) > 0 {
			text += ", driven by " + strings.Join(negTopics, ", ")
		}
		out = append(out, Insight{Text: text, Priority: High, Topics: negTopics})
	case negRatio > s.thresholds.MediumNegativeRatio:
		text := fmt.Sprintf("Significant negative feedback detected (%.0f%%)", negRatio*100)
		if len(negTopics) > 0 {
			text += "; recurring complaints: " + strings.Join(negTopics, ", ")
		}
		out = append(out, Insight{Text: text, Priority: Medium, Topics: negTopics})
	}

	if posRatio >= s.thresholds.HealthyPositiveRatio {
		out = append(out, Insight{
			Text:     fmt.Sprintf("Mostly positive feedback (%.0f%%); maintain current approach", posRatio*100),
			Priority: Low,
		})
	}

	out = append(out, s.categoryInsights(categories, negIDs, negRatio)...)
	return out
}

// categoryInsights produces per-category action items for categories
// co-occurring with negative records. Categories arrive sorted by
// mention count, so output order follows impact.
func (s *Summarizer) categoryInsights(categories []topics.TopicCount, negIDs map[string]struct{}, negRatio float64) []Insight {
	priority := Medium
	if negRatio > s.thresholds.HighNegativeRatio {
		priority = High
	}

	var out []Insight
	for _, cat := range categories {
		hits := 0
		for _, id := range cat.RecordIDs {
			if _, ok := negIDs[id]; ok {
				hits++
			}
		}
		if hits == 0 {
			continue
		}

		text, ok := actionItems[cat.Topic]
		if !ok {
			text = fmt.Sprintf("Investigate recurring complaints about %s", cat.Topic)
		}
		out = append(out, Insight{
			Text:     fmt.Sprintf("%s (%d negative mention(s))", text, hits),
			Priority: priority,
			Topics:   []string{cat.Topic},
		})
	}
	return out
}

// negativeTopics returns up to maxNamedTopics keyword topics mentioned
// by negative records, preserving the extractor's count order.
func negativeTopics(keywords []topics.TopicCount, negIDs map[string]struct{}) []string {
	if len(negIDs) == 0 {
		return nil
	}

	var out []string
	for _, tc := range keywords {
		for _, id := range tc.RecordIDs {
			if _, ok := negIDs[id]; ok {
				out = append(out, tc.Topic)
				break
			}
		}
		if len(out) == maxNamedTopics {
			break
		}
	}
	return out
}
