package opine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/opinelab/opine/pkg/opine/feedback"
	"github.com/opinelab/opine/pkg/opine/insights"
	"github.com/opinelab/opine/pkg/opine/internalerr"
	"github.com/opinelab/opine/pkg/opine/report"
	"github.com/opinelab/opine/pkg/opine/sentiment"
	"github.com/opinelab/opine/pkg/opine/store/memstore"
)

func newTestAgent(opts Options) *Agent {
	if opts.Log == nil {
		log := logrus.New()
		log.SetLevel(logrus.PanicLevel)
		opts.Log = log
	}
	return New(opts)
}

func TestAnalyzeScenario(t *testing.T) {
	agent := newTestAgent(Options{})
	defer agent.Close()

	records := []feedback.Record{
		{ID: "r1", Text: "Great product, fast shipping!"},
		{ID: "r2", Text: "Terrible support, took 2 weeks to respond."},
	}

	rep, err := agent.Analyze(context.Background(), "reviews.txt", records)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rep.Source != "reviews.txt" {
		t.Errorf("Source = %q, want reviews.txt", rep.Source)
	}

	// Sentiments: [positive, negative] in record order.
	if len(rep.Sentiments) != 2 {
		t.Fatalf("expected 2 sentiments, got %d", len(rep.Sentiments))
	}
	if rep.Sentiments[0].Label != sentiment.Positive {
		t.Errorf("record r1 label = %s, want positive", rep.Sentiments[0].Label)
	}
	if rep.Sentiments[1].Label != sentiment.Negative {
		t.Errorf("record r2 label = %s, want negative", rep.Sentiments[1].Label)
	}

	// Topics include ("shipping", 1) and ("support", 1).
	counts := make(map[string]int)
	for _, tc := range rep.Topics {
		counts[tc.Topic] = tc.Count
	}
	if counts["shipping"] != 1 {
		t.Errorf("shipping count = %d, want 1", counts["shipping"])
	}
	if counts["support"] != 1 {
		t.Errorf("support count = %d, want 1", counts["support"])
	}

	// At least one high priority insight referencing support.
	var found bool
	for _, in := range rep.Insights {
		if in.Priority != insights.High {
			continue
		}
		for _, topic := range in.Topics {
			if topic == "support" || topic == "customer_service" {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected a high priority insight referencing support, got %+v", rep.Insights)
	}
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	agent := newTestAgent(Options{})
	defer agent.Close()

	rep, err := agent.Analyze(context.Background(), "empty.txt", nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if rep.Stats.TotalRecords != 0 {
		t.Errorf("TotalRecords = %d", rep.Stats.TotalRecords)
	}
	if len(rep.Sentiments) != 0 || len(rep.Topics) != 0 || len(rep.Insights) != 0 {
		t.Errorf("empty corpus produced content: %+v", rep)
	}

	// Writing the empty report still succeeds.
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := report.Write(rep, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
}

func TestAnalyzeDuplicateIDs(t *testing.T) {
	agent := newTestAgent(Options{})
	defer agent.Close()

	records := []feedback.Record{
		{ID: "same", Text: "fine"},
		{ID: "same", Text: "also fine"},
	}
	_, err := agent.Analyze(context.Background(), "dupes.txt", records)
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate ids, got %v", err)
	}
}

type failingClassifier struct{}

func (failingClassifier) Classify(ctx context.Context, text string) (sentiment.Result, error) {
	return sentiment.Result{}, errors.New("remote unavailable")
}
func (failingClassifier) Name() string { return "remote" }

func TestAnalyzeWithFallbackBackend(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	agent := newTestAgent(Options{
		Classifier: &sentiment.Fallback{
			Primary:   failingClassifier{},
			Secondary: sentiment.NewLexicon(nil),
			Log:       log,
		},
	})
	defer agent.Close()

	records := []feedback.Record{{ID: "r1", Text: "Great product, fast shipping!"}}
	rep, err := agent.Analyze(context.Background(), "reviews.txt", records)
	if err != nil {
		t.Fatalf("Analyze with unreachable primary: %v", err)
	}
	if rep.Sentiments[0].Label != sentiment.Positive {
		t.Errorf("fallback label = %s", rep.Sentiments[0].Label)
	}
	if rep.Sentiments[0].Backend != "lexicon" {
		t.Errorf("fallback backend = %q", rep.Sentiments[0].Backend)
	}
}

func TestAnalyzeSavesRun(t *testing.T) {
	st := memstore.New()
	agent := newTestAgent(Options{Store: st})
	defer agent.Close()

	records := []feedback.Record{{ID: "r1", Text: "love it"}}
	rep, err := agent.Analyze(context.Background(), "reviews.csv", records)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	run, err := st.GetRun(context.Background(), rep.RunID)
	if err != nil {
		t.Fatalf("run not persisted: %v", err)
	}
	if run.Report.Stats.TotalRecords != 1 {
		t.Errorf("persisted report: %+v", run.Report.Stats)
	}
	if run.Source != "reviews.csv" {
		t.Errorf("persisted Source = %q, want reviews.csv", run.Source)
	}
	if run.Report.Source != "reviews.csv" {
		t.Errorf("persisted report Source = %q, want reviews.csv", run.Report.Source)
	}
}

func TestAnalyzeOne(t *testing.T) {
	agent := newTestAgent(Options{})
	defer agent.Close()

	res, err := agent.AnalyzeOne(context.Background(), "Terrible support, took 2 weeks to respond.")
	if err != nil {
		t.Fatalf("AnalyzeOne: %v", err)
	}
	if res.Sentiment.Label != sentiment.Negative {
		t.Errorf("label = %s", res.Sentiment.Label)
	}
	if res.Record.ID == "" {
		t.Error("record id not assigned")
	}

	var service bool
	for _, cat := range res.Categories {
		if cat == "customer_service" {
			service = true
		}
	}
	if !service {
		t.Errorf("categories = %v, want customer_service", res.Categories)
	}
}

func TestAnalyzeContextCancelled(t *testing.T) {
	agent := newTestAgent(Options{})
	defer agent.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agent.Analyze(ctx, "reviews.txt", []feedback.Record{{ID: "r1", Text: "fine"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
