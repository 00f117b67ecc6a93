package sentiment

import (
	"context"
	"strings"
	"unicode"
)

// Polarity thresholds for mapping a signed score onto a label. Values
// inside (-0.1, 0.1) are considered neutral.
const polarityBand = 0.1

// negationWindow is how many tokens after a negator still get flipped
// ("not very good" → negative).
const negationWindow = 2

// Lexicon is the local backend: a weighted term list with negation and
// intensifier handling. Deterministic and synchronous; safe for
// concurrent use once built.
type Lexicon struct {
	weights      map[string]float64
	negators     map[string]struct{}
	intensifiers map[string]float64
}

// NewLexicon creates the local backend with the built-in term list.
// Extra terms (from configuration) override built-ins.
func NewLexicon(extra map[string]float64) *Lexicon {
	weights := make(map[string]float64, len(defaultWeights)+len(extra))
	for w, v := range defaultWeights {
		weights[w] = v
	}
	for w, v := range extra {
		weights[strings.ToLower(w)] = clamp(v)
	}

	negators := make(map[string]struct{}, len(defaultNegators))
	for _, n := range defaultNegators {
		negators[n] = struct{}{}
	}

	return &Lexicon{
		weights:      weights,
		negators:     negators,
		intensifiers: defaultIntensifiers,
	}
}

// Name implements Classifier.
func (l *Lexicon) Name() string { return "lexicon" }

// Classify implements Classifier. Empty or whitespace-only input yields
// Neutral with score 0 and no error.
func (l *Lexicon) Classify(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{Label: Neutral, Score: 0, Backend: l.Name()}, nil
	}

	tokens := splitWords(text)

	var sum float64
	var hits int
	negateLeft := 0
	boost := 1.0

	for _, tok := range tokens {
		if _, ok := l.negators[tok]; ok {
			negateLeft = negationWindow
			continue
		}
		if mult, ok := l.intensifiers[tok]; ok {
			boost = mult
			if negateLeft > 0 {
				negateLeft--
			}
			continue
		}

		if w, ok := l.weights[tok]; ok {
			w *= boost
			if negateLeft > 0 {
				w = -w
			}
			sum += clamp(w)
			hits++
		}

		boost = 1.0
		if negateLeft > 0 {
			negateLeft--
		}
	}

	var polarity float64
	if hits > 0 {
		polarity = clamp(sum / float64(hits))
	}

	res := Result{Polarity: polarity, Backend: l.Name()}
	switch {
	case polarity > polarityBand:
		res.Label = Positive
		res.Score = polarity
	case polarity < -polarityBand:
		res.Label = Negative
		res.Score = -polarity
	default:
		res.Label = Neutral
		res.Score = 1 - abs(polarity)
	}
	return res, nil
}

// splitWords lowercases and splits on non-letter runs, dropping
// apostrophes so "don't" matches the negator "dont".
func splitWords(text string) []string {
	var words []string
	var current strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			current.WriteRune(unicode.ToLower(r))
		case r == '\'':
			// skip
		default:
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var defaultNegators = []string{
	"not", "no", "never", "nothing", "neither", "nor", "cannot",
	"dont", "doesnt", "didnt", "cant", "wont", "isnt", "wasnt", "werent", "havent",
}

var defaultIntensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"incredibly": 1.5,
	"so":         1.2,
	"too":        1.2,
	"quite":      1.1,
	"somewhat":   0.7,
	"slightly":   0.6,
	"barely":     0.5,
}

var defaultWeights = map[string]float64{
	// positive
	"amazing": 1.0, "excellent": 1.0, "outstanding": 1.0, "fantastic": 1.0,
	"love": 0.9, "perfect": 0.9, "perfectly": 0.9, "wonderful": 0.9,
	"great": 0.8, "awesome": 0.8, "best": 0.8, "delighted": 0.8,
	"happy": 0.7, "impressed": 0.7, "beautiful": 0.7, "sturdy": 0.6,
	"good": 0.6, "nice": 0.5, "reliable": 0.6, "smooth": 0.5,
	"easy": 0.5, "helpful": 0.5, "responsive": 0.5, "durable": 0.6,
	"fast": 0.4, "quick": 0.4, "works": 0.3, "fine": 0.3,
	"reasonable": 0.3, "okay": 0.15, "decent": 0.2,

	// negative
	"terrible": -1.0, "horrible": -1.0, "awful": -1.0, "worst": -1.0,
	"hate": -0.9, "useless": -0.9, "unusable": -0.9, "scam": -0.9,
	"damaged": -0.8, "defective": -0.8, "disappointed": -0.8, "disappointing": -0.7,
	"broken": -0.7, "poor": -0.7, "refund": -0.6, "waste": -0.7,
	"broke": -0.6, "bad": -0.6, "flimsy": -0.6, "frustrating": -0.6,
	"expensive": -0.5, "confusing": -0.5, "annoying": -0.5, "overpriced": -0.6,
	"slow": -0.4, "difficult": -0.4, "laggy": -0.4, "complicated": -0.4,
	"cheap": -0.3, "mediocre": -0.3,
}
