package feedback

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Record is a single piece of product feedback. Records are immutable
// once loaded; IDs are unique within a run.
type Record struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Factory mints records with monotonic ULIDs so ordering within a run
// follows load order.
type Factory struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewFactory creates a record factory.
func NewFactory() *Factory {
	return &Factory{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// New creates a record from raw text.
func (f *Factory) New(text, source string) Record {
	ts := f.now().UTC()
	return Record{
		ID:        ulid.MustNew(ulid.Timestamp(ts), f.entropy).String(),
		Text:      text,
		Source:    source,
		Timestamp: ts,
	}
}
