// Package charts renders the optional report visualizations: a
// sentiment distribution pie and a topic frequency bar chart.
package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/opinelab/opine/pkg/opine/internalerr"
	"github.com/opinelab/opine/pkg/opine/report"
)

// DefaultTopicLimit bounds how many topics the bar chart shows.
const DefaultTopicLimit = 12

// RenderAll writes sentiment.png and topics.png into dir. Charts for an
// empty corpus are skipped rather than rendered blank.
func RenderAll(r report.Report, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", internalerr.ErrIO, dir, err)
	}
	if err := RenderSentimentPie(r, filepath.Join(dir, "sentiment.png")); err != nil {
		return err
	}
	return RenderTopicBars(r, filepath.Join(dir, "topics.png"), DefaultTopicLimit)
}

// RenderSentimentPie draws the label distribution. No-op when the run
// had no records.
func RenderSentimentPie(r report.Report, path string) error {
	if r.Stats.TotalRecords == 0 {
		return nil
	}

	var values []chart.Value
	for _, slice := range []struct {
		label string
		count int
	}{
		{"positive", r.Stats.Positive},
		{"neutral", r.Stats.Neutral},
		{"negative", r.Stats.Negative},
	} {
		if slice.count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", slice.label, slice.count),
			Value: float64(slice.count),
		})
	}

	pie := chart.PieChart{
		Title:  "Sentiment Distribution",
		Width:  600,
		Height: 600,
		Values: values,
	}
	return renderTo(pie.Render, path)
}

// RenderTopicBars draws the top topic mention counts. No-op when there
// are no topics.
func RenderTopicBars(r report.Report, path string, limit int) error {
	if len(r.Topics) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultTopicLimit
	}

	top := r.Topics
	if len(top) > limit {
		top = top[:limit]
	}
	values := make([]chart.Value, 0, len(top))
	for _, tc := range top {
		values = append(values, chart.Value{Label: tc.Topic, Value: float64(tc.Count)})
	}

	bars := chart.BarChart{
		Title:    "Topic Mentions",
		Width:    1024,
		Height:   512,
		BarWidth: 48,
		Bars:     values,
	}
	return renderTo(bars.Render, path)
}

func renderTo(render func(chart.RendererProvider, io.Writer) error, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", internalerr.ErrIO, path, err)
	}
	defer f.Close()

	if err := render(chart.PNG, f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
