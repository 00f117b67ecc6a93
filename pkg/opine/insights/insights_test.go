package insights

import (
	"testing"

	"github.com/opinelab/opine/pkg/opine/sentiment"
	"github.com/opinelab/opine/pkg/opine/topics"
)

func labels(ls ...sentiment.Label) []sentiment.Result {
	out := make([]sentiment.Result, len(ls))
	for i, l := range ls {
		out[i] = sentiment.Result{RecordID: recordID(i), Label: l}
	}
	return out
}

func recordID(i int) string {
	return string(rune('a' + i))
}

func TestSummarizeEmptyCorpus(t *testing.T) {
	s := NewSummarizer(DefaultThresholds())
	if got := s.Summarize(nil, nil, nil); got != nil {
		t.Fatalf("expected no insights, got %v", got)
	}
}

func TestSummarizeHighNegativeRatio(t *testing.T) {
	s := NewSummarizer(DefaultThresholds())

	// 50% negative exceeds the 40% trigger.
	sentiments := labels(sentiment.Positive, sentiment.Negative)
	keywords := []topics.TopicCount{
		{Topic: "shipping", Count: 1, RecordIDs: []string{"a"}},
		{Topic: "support", Count: 1, RecordIDs: []string{"b"}},
	}

	out := s.Summarize(sentiments, keywords, nil)

	var high *Insight
	for i := range out {
		if out[i].Priority == High {
			high = &out[i]
			break
		}
	}
	if high == nil {
		t.Fatalf("expected a high priority insight, got %v", out)
	}

	found := false
	for _, topic := range high.Topics {
		if topic == "support" {
			found = true
		}
	}
	if !found {
		t.Errorf("high insight should reference support, got topics %v", high.Topics)
	}
}

func TestSummarizeMediumNegativeRatio(t *testing.T) {
	s := NewSummarizer(DefaultThresholds())

	// 25% negative: above medium, below high.
	sentiments := labels(sentiment.Positive, sentiment.Neutral, sentiment.Neutral, sentiment.Negative)
	out := s.Summarize(sentiments, nil, nil)

	for _, in := range out {
		if in.Priority == High {
			t.Fatalf("unexpected high insight: %v", in)
		}
	}

	var medium bool
	for _, in := range out {
		if in.Priority == Medium {
			medium = true
		}
	}
	if !medium {
		t.Fatalf("expected a medium priority insight, got %v", out)
	}
}

func TestSummarizeHealthyPositive(t *testing.T) {
	s := NewSummarizer(DefaultThresholds())

	sentiments := labels(sentiment.Positive, sentiment.Positive, sentiment.Positive, sentiment.Neutral)
	out := s.Summarize(sentiments, nil, nil)

	if len(out) != 1 || out[0].Priority != Low {
		t.Fatalf("expected a single low priority insight, got %v", out)
	}
}

func TestSummarizeCategoryActionItems(t *testing.T) {
	s := NewSummarizer(DefaultThresholds())

	sentiments := labels(sentiment.Negative, sentiment.Positive)
	categories := []topics.TopicCount{
		{Topic: "customer_service", Count: 2, RecordIDs: []string{"a"}},
		{Topic: "shipping", Count: 1, RecordIDs: []string{"b"}}, // positive record only
	}

	out := s.Summarize(sentiments, nil, categories)

	var serviceItem, shippingItem bool
	for _, in := range out {
		for _, topic := range in.Topics {
			if topic == "customer_service" {
				serviceItem = true
			}
			if topic == "shipping" {
				shippingItem = true
			}
		}
	}
	if !serviceItem {
		t.Errorf("expected customer_service action item, got %v", out)
	}
	if shippingItem {
		t.Errorf("shipping has no negative mentions, got %v", out)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	s := NewSummarizer(DefaultThresholds())
	sentiments := labels(sentiment.Negative, sentiment.Negative, sentiment.Positive)
	keywords := []topics.TopicCount{{Topic: "support", Count: 2, RecordIDs: []string{"a", "b"}}}

	first := s.Summarize(sentiments, keywords, nil)
	for i := 0; i < 5; i++ {
		again := s.Summarize(sentiments, keywords, nil)
		if len(again) != len(first) {
			t.Fatal("non-deterministic insight count")
		}
		for j := range again {
			if again[j].Text != first[j].Text || again[j].Priority != first[j].Priority {
				t.Fatalf("non-deterministic insight: %+v vs %+v", again[j], first[j])
			}
		}
	}
}

func TestThresholdOverrides(t *testing.T) {
	s := NewSummarizer(Thresholds{HighNegativeRatio: 0.10, MediumNegativeRatio: 0.05, HealthyPositiveRatio: 0.99})

	sentiments := labels(sentiment.Negative, sentiment.Positive, sentiment.Positive, sentiment.Positive)
	out := s.Summarize(sentiments, nil, nil)

	var high bool
	for _, in := range out {
		if in.Priority == High {
			high = true
		}
	}
	if !high {
		t.Fatalf("expected high insight with lowered threshold, got %v", out)
	}
}
