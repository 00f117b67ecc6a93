// Package opine is the feedback analysis engine facade. It wires the
// pipeline together: records flow one way through classification, topic
// extraction, insight generation, and report assembly.
package opine

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/opinelab/opine/pkg/opine/feedback"
	"github.com/opinelab/opine/pkg/opine/insights"
	"github.com/opinelab/opine/pkg/opine/internalerr"
	"github.com/opinelab/opine/pkg/opine/report"
	"github.com/opinelab/opine/pkg/opine/sentiment"
	"github.com/opinelab/opine/pkg/opine/store"
	"github.com/opinelab/opine/pkg/opine/topics"
)

// Agent orchestrates the analysis pipeline.
type Agent struct {
	classifier sentiment.Classifier
	extractor  *topics.Extractor
	catalog    *topics.Catalog
	summarizer *insights.Summarizer
	store      store.Store
	log        logrus.FieldLogger
	now        func() time.Time
	entropy    *ulid.MonotonicEntropy
	factory    *feedback.Factory
}

// Options configures an Agent. Zero-value fields get working defaults;
// Store is optional and only enables run history.
type Options struct {
	Classifier sentiment.Classifier
	Extractor  *topics.Extractor
	Catalog    *topics.Catalog
	Summarizer *insights.Summarizer
	Store      store.Store
	Log        logrus.FieldLogger
	Now        func() time.Time
}

// New creates an Agent with the given dependencies.
func New(opts Options) *Agent {
	if opts.Classifier == nil {
		opts.Classifier = sentiment.NewLexicon(nil)
	}
	if opts.Extractor == nil {
		opts.Extractor = topics.NewExtractor(nil, 1)
	}
	if opts.Catalog == nil {
		opts.Catalog = topics.DefaultCatalog()
	}
	if opts.Summarizer == nil {
		opts.Summarizer = insights.NewSummarizer(insights.DefaultThresholds())
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Agent{
		classifier: opts.Classifier,
		extractor:  opts.Extractor,
		catalog:    opts.Catalog,
		summarizer: opts.Summarizer,
		store:      opts.Store,
		log:        opts.Log,
		now:        opts.Now,
		entropy:    ulid.Monotonic(rand.Reader, 0),
		factory:    feedback.NewFactory(),
	}
}

// Close shuts down the agent's store, if any.
func (a *Agent) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// Analyze runs the full pipeline over a corpus and returns the report.
// source labels where the corpus came from (typically the input path)
// and is carried into the report and the persisted run. Record IDs must
// be unique within a run.
func (a *Agent) Analyze(ctx context.Context, source string, records []feedback.Record) (report.Report, error) {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			return report.Report{}, fmt.Errorf("%w: record with empty id", internalerr.ErrInvalidInput)
		}
		if _, dup := seen[rec.ID]; dup {
			return report.Report{}, fmt.Errorf("%w: duplicate record id %s", internalerr.ErrInvalidInput, rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}

	startedAt := a.now()
	a.log.Infof("analyzing %d feedback record(s) with %s backend", len(records), a.classifier.Name())

	var sentiments []sentiment.Result
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report.Report{}, err
		}
		res, err := a.classifier.Classify(ctx, rec.Text)
		if err != nil {
			// Backends recover internally (fallback); anything that
			// reaches here is unrecoverable for this run.
			return report.Report{}, fmt.Errorf("classify record %s: %w", rec.ID, err)
		}
		res.RecordID = rec.ID
		sentiments = append(sentiments, res)
	}

	keywords := a.extractor.Extract(records)
	categories := a.catalog.Extract(records)
	ins := a.summarizer.Summarize(sentiments, keywords, categories)

	runID := ulid.MustNew(ulid.Timestamp(startedAt), a.entropy).String()
	rep := report.Build(runID, startedAt, sentiments, keywords, categories, ins)
	rep.Source = source

	if a.store != nil {
		if err := a.store.SaveRun(ctx, store.Run{
			ID:        runID,
			StartedAt: startedAt,
			Source:    source,
			Report:    rep,
		}); err != nil {
			return report.Report{}, fmt.Errorf("save run: %w", err)
		}
	}

	a.log.Infof("run %s: %d positive / %d neutral / %d negative, %d insight(s)",
		runID, rep.Stats.Positive, rep.Stats.Neutral, rep.Stats.Negative, len(rep.Insights))
	return rep, nil
}

// RecordAnalysis is the interactive-mode result for one feedback string.
type RecordAnalysis struct {
	Record     feedback.Record
	Sentiment  sentiment.Result
	Categories []string
}

// AnalyzeOne classifies a single feedback string, used by the
// interactive prompt loop.
func (a *Agent) AnalyzeOne(ctx context.Context, text string) (RecordAnalysis, error) {
	rec := a.factory.New(text, "interactive")
	res, err := a.classifier.Classify(ctx, rec.Text)
	if err != nil {
		return RecordAnalysis{}, fmt.Errorf("classify: %w", err)
	}
	res.RecordID = rec.ID

	return RecordAnalysis{
		Record:     rec,
		Sentiment:  res,
		Categories: a.catalog.Match(rec.Text),
	}, nil
}
