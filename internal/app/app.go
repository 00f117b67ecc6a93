// Package app assembles an analysis agent from configuration, shared by
// the command-line tools so they honor the same config fields.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opinelab/opine/internal/remote"
	"github.com/opinelab/opine/pkg/opine"
	"github.com/opinelab/opine/pkg/opine/config"
	"github.com/opinelab/opine/pkg/opine/insights"
	"github.com/opinelab/opine/pkg/opine/sentiment"
	"github.com/opinelab/opine/pkg/opine/store/sqlite"
	"github.com/opinelab/opine/pkg/opine/topics"
)

// BuildClassifier picks the sentiment backend. "auto" uses the remote
// backend with local fallback when an API key is available, and local
// only otherwise; "remote" without a key is a configuration error.
func BuildClassifier(cfg config.Config, backend, apiKey string, log logrus.FieldLogger) (sentiment.Classifier, error) {
	local := sentiment.NewLexicon(cfg.Lexicon)

	newRemote := func() (sentiment.Classifier, error) {
		return remote.New(remote.Config{
			BaseURL: cfg.Remote.BaseURL,
			APIKey:  apiKey,
			Model:   cfg.Remote.Model,
			Timeout: time.Duration(cfg.Remote.TimeoutSeconds) * time.Second,
		})
	}

	switch backend {
	case "local":
		return local, nil
	case "remote":
		hosted, err := newRemote()
		if err != nil {
			return nil, err
		}
		return &sentiment.Fallback{Primary: hosted, Secondary: local, Log: log}, nil
	case "auto":
		if apiKey == "" {
			return local, nil
		}
		hosted, err := newRemote()
		if err != nil {
			return nil, err
		}
		return &sentiment.Fallback{Primary: hosted, Secondary: local, Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want auto, local, or remote)", backend)
	}
}

// BuildOptions wires the whole config into agent options: backend
// selection, extractor, summarizer, category catalog, and the optional
// sqlite run-history store when dbPath is set.
func BuildOptions(ctx context.Context, cfg config.Config, backend, apiKey, dbPath string, log logrus.FieldLogger) (opine.Options, error) {
	classifier, err := BuildClassifier(cfg, backend, apiKey, log)
	if err != nil {
		return opine.Options{}, err
	}

	opts := opine.Options{
		Classifier: classifier,
		Extractor:  topics.NewExtractor(stopwordsOrDefault(cfg), cfg.MinTopicCount),
		Summarizer: insights.NewSummarizer(insights.Thresholds{
			HighNegativeRatio:    cfg.Thresholds.HighNegativeRatio,
			MediumNegativeRatio:  cfg.Thresholds.MediumNegativeRatio,
			HealthyPositiveRatio: cfg.Thresholds.HealthyPositiveRatio,
		}),
		Log: log,
	}
	if len(cfg.Categories) > 0 {
		opts.Catalog = topics.NewCatalog(cfg.Categories)
	}
	if dbPath != "" {
		st, err := sqlite.Open(ctx, dbPath)
		if err != nil {
			return opine.Options{}, fmt.Errorf("open store: %w", err)
		}
		opts.Store = st
	}
	return opts, nil
}

func stopwordsOrDefault(cfg config.Config) []string {
	if len(cfg.Stopwords) > 0 {
		return cfg.Stopwords
	}
	return nil // extractor falls back to the built-in list
}
