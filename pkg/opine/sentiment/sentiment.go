// Package sentiment classifies feedback polarity. Two backends satisfy
// the Classifier contract: the deterministic lexicon analyzer in this
// package and the hosted-model client in internal/remote.
package sentiment

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Label is the coarse polarity of a feedback record.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Result is the outcome of classifying one record. Produced once per
// record, never mutated afterward.
type Result struct {
	RecordID string  `json:"record_id"`
	Label    Label   `json:"label"`
	Score    float64 `json:"score"`    // confidence in [0,1]
	Polarity float64 `json:"polarity"` // signed strength in [-1,1]
	Backend  string  `json:"backend"`
}

// Classifier is the pluggable sentiment backend.
type Classifier interface {
	// Classify analyzes a single piece of text. Implementations must
	// return Neutral with score 0 for empty input, never an error.
	Classify(ctx context.Context, text string) (Result, error)
	Name() string
}

// Fallback tries Primary and degrades to Secondary when the primary
// backend fails (the documented policy for remote outages). It never
// retries the primary within a call.
type Fallback struct {
	Primary   Classifier
	Secondary Classifier
	Log       logrus.FieldLogger
}

// Classify implements Classifier.
func (f *Fallback) Classify(ctx context.Context, text string) (Result, error) {
	res, err := f.Primary.Classify(ctx, text)
	if err == nil {
		return res, nil
	}

	log := f.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithError(err).Warnf("%s backend failed, falling back to %s", f.Primary.Name(), f.Secondary.Name())

	return f.Secondary.Classify(ctx, text)
}

// Name implements Classifier.
func (f *Fallback) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}
