package sentiment

import (
	"context"
	"testing"
)

func TestLexiconClassify(t *testing.T) {
	lex := NewLexicon(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want Label
	}{
		{"positive", "Great product, fast shipping!", Positive},
		{"negative", "Terrible support, took 2 weeks to respond.", Negative},
		{"strongly positive", "Amazing quality, love the design, works perfectly.", Positive},
		{"strongly negative", "Way too expensive for what you get. Poor quality and broke quickly.", Negative},
		{"mixed leans neutral", "It's okay, not great but not bad either. The price is reasonable.", Neutral},
		{"no sentiment terms", "The package contains a charger and a cable.", Neutral},
		{"negation flips positive", "This is not good at all.", Negative},
		{"negation flips negative", "Not bad for the price.", Positive},
		{"intensifier", "Really terrible experience.", Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := lex.Classify(ctx, tt.text)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if res.Label != tt.want {
				t.Errorf("Classify(%q) = %s (polarity %.2f), want %s", tt.text, res.Label, res.Polarity, tt.want)
			}
			if res.Score < 0 || res.Score > 1 {
				t.Errorf("score %v out of [0,1]", res.Score)
			}
			if res.Backend != "lexicon" {
				t.Errorf("backend = %q", res.Backend)
			}
		})
	}
}

func TestLexiconEmptyInput(t *testing.T) {
	lex := NewLexicon(nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		res, err := lex.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("Classify(%q): %v", text, err)
		}
		if res.Label != Neutral {
			t.Errorf("Classify(%q) label = %s, want neutral", text, res.Label)
		}
		if res.Score != 0 {
			t.Errorf("Classify(%q) score = %v, want 0", text, res.Score)
		}
	}
}

func TestLexiconDeterministic(t *testing.T) {
	lex := NewLexicon(nil)
	text := "Great product but slow delivery and confusing setup."

	first, err := lex.Classify(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		res, err := lex.Classify(context.Background(), text)
		if err != nil {
			t.Fatal(err)
		}
		if res != first {
			t.Fatalf("non-deterministic result: %+v vs %+v", res, first)
		}
	}
}

func TestLexiconExtraTerms(t *testing.T) {
	lex := NewLexicon(map[string]float64{"glitchy": -0.8})

	res, err := lex.Classify(context.Background(), "The app is glitchy.")
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != Negative {
		t.Errorf("custom term not applied: %s", res.Label)
	}
}

func TestLexiconExtraTermsOverrideBuiltins(t *testing.T) {
	// A domain where "cheap" is praise.
	lex := NewLexicon(map[string]float64{"cheap": 0.6})

	res, err := lex.Classify(context.Background(), "Nice and cheap.")
	if err != nil {
		t.Fatal(err)
	}
	if res.Label != Positive {
		t.Errorf("override not applied: %s (polarity %.2f)", res.Label, res.Polarity)
	}
}
