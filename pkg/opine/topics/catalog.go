package topics

import (
	"sort"
	"strings"

	"github.com/opinelab/opine/pkg/opine/feedback"
)

// Catalog maps product-facing category names to the lowercase keywords
// that signal them, substring matched against the record text.
type Catalog struct {
	categories map[string][]string
	order      []string
}

// NewCatalog builds a catalog from category keyword lists. Category
// iteration order is alphabetical so runs are reproducible.
func NewCatalog(categories map[string][]string) *Catalog {
	c := &Catalog{categories: make(map[string][]string, len(categories))}
	for name, keywords := range categories {
		normalized := make([]string, len(keywords))
		for i, kw := range keywords {
			normalized[i] = strings.ToLower(kw)
		}
		c.categories[name] = normalized
		c.order = append(c.order, name)
	}
	sort.Strings(c.order)
	return c
}

// DefaultCatalog returns the built-in product feedback categories.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[string][]string{
		"quality":          {"quality", "build", "material", "durable", "cheap", "flimsy", "solid", "sturdy"},
		"usability":        {"easy", "difficult", "user-friendly", "confusing", "intuitive", "complicated"},
		"performance":      {"fast", "slow", "speed", "performance", "lag", "smooth", "responsive"},
		"design":           {"design", "appearance", "look", "style", "color", "beautiful", "ugly"},
		"price":            {"price", "cost", "expensive", "value", "money", "budget", "overpriced"},
		"customer_service": {"service", "support", "help", "staff", "representative", "respond", "response"},
		"shipping":         {"shipping", "delivery", "packaging", "arrived", "package", "box"},
		"features":         {"feature", "function", "capability", "option", "settings", "customization"},
	})
}

// Categories lists the catalog's category names in iteration order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Extract rolls the corpus up by category. Count is the total keyword
// occurrences; RecordIDs are the records mentioning the category.
// Ordered by descending count, ties alphabetical.
func (c *Catalog) Extract(records []feedback.Record) []TopicCount {
	counts := make(map[string]int)
	mentions := make(map[string][]string)

	for _, rec := range records {
		text := strings.ToLower(rec.Text)
		for _, name := range c.order {
			score := 0
			for _, kw := range c.categories[name] {
				score += strings.Count(text, kw)
			}
			if score > 0 {
				counts[name] += score
				mentions[name] = append(mentions[name], rec.ID)
			}
		}
	}

	out := make([]TopicCount, 0, len(counts))
	for _, name := range c.order {
		if counts[name] == 0 {
			continue
		}
		out = append(out, TopicCount{
			Topic:     name,
			Count:     counts[name],
			RecordIDs: mentions[name],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	return out
}

// Match returns the categories mentioned by a single record, in catalog
// order. Used by the interactive mode.
func (c *Catalog) Match(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, name := range c.order {
		for _, kw := range c.categories[name] {
			if strings.Contains(lower, kw) {
				out = append(out, name)
				break
			}
		}
	}
	return out
}
