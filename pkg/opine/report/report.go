// Package report assembles and serializes the final analysis result. A
// report is immutable once written; Write followed by Read yields a
// field-for-field identical structure.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/opinelab/opine/pkg/opine/insights"
	"github.com/opinelab/opine/pkg/opine/internalerr"
	"github.com/opinelab/opine/pkg/opine/sentiment"
	"github.com/opinelab/opine/pkg/opine/topics"
)

// Stats summarizes the sentiment distribution of one run.
type Stats struct {
	TotalRecords   int     `json:"total_records"`
	Positive       int     `json:"positive"`
	Neutral        int     `json:"neutral"`
	Negative       int     `json:"negative"`
	PositiveRatio  float64 `json:"positive_ratio"`
	NegativeRatio  float64 `json:"negative_ratio"`
	MeanPolarity   float64 `json:"mean_polarity"`
	MedianPolarity float64 `json:"median_polarity"`
	StdevPolarity  float64 `json:"stdev_polarity"`
}

// Report is the complete output of one analysis run.
type Report struct {
	RunID       string              `json:"run_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Source      string              `json:"source,omitempty"`
	Stats       Stats               `json:"stats"`
	Sentiments  []sentiment.Result  `json:"sentiments"`
	Topics      []topics.TopicCount `json:"topics"`
	Categories  []topics.TopicCount `json:"categories"`
	Insights    []insights.Insight  `json:"insights"`
}

// Build assembles a report and computes its summary statistics.
func Build(runID string, generatedAt time.Time, sentiments []sentiment.Result, keywords, categories []topics.TopicCount, ins []insights.Insight) Report {
	return Report{
		RunID:       runID,
		GeneratedAt: generatedAt.UTC().Truncate(time.Second),
		Stats:       buildStats(sentiments),
		Sentiments:  sentiments,
		Topics:      keywords,
		Categories:  categories,
		Insights:    ins,
	}
}

func buildStats(sentiments []sentiment.Result) Stats {
	s := Stats{TotalRecords: len(sentiments)}
	if s.TotalRecords == 0 {
		return s
	}

	polarities := make([]float64, 0, len(sentiments))
	for _, res := range sentiments {
		polarities = append(polarities, res.Polarity)
		switch res.Label {
		case sentiment.Positive:
			s.Positive++
		case sentiment.Negative:
			s.Negative++
		default:
			s.Neutral++
		}
	}

	total := float64(s.TotalRecords)
	s.PositiveRatio = float64(s.Positive) / total
	s.NegativeRatio = float64(s.Negative) / total

	// Errors only occur on empty input, which is excluded above.
	s.MeanPolarity, _ = stats.Mean(polarities)
	s.MedianPolarity, _ = stats.Median(polarities)
	s.StdevPolarity, _ = stats.StandardDeviation(polarities)
	return s
}

// Write serializes the report as indented JSON. An unwritable
// destination is an IO error and fatal to the run.
func Write(r Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", internalerr.ErrIO, path, err)
	}
	return nil
}

// Read loads a previously written report.
func Read(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("%w: read %s: %v", internalerr.ErrIO, path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidInput, path, err)
	}
	return r, nil
}
