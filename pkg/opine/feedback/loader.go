package feedback

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/opinelab/opine/pkg/opine/internalerr"
)

// Load reads feedback records from path, picking the parser from the
// file extension: .json, .csv, anything else is treated as one record
// per line.
func Load(path string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return LoadLines(path)
	}
}

// LoadLines reads a plain-text file with one feedback record per line.
// Blank lines and lines starting with '#' are skipped.
func LoadLines(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", internalerr.ErrIO, path, err)
	}

	factory := NewFactory()
	var records []Record
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, factory.New(cleanText(line), path))
	}
	return records, nil
}

// LoadJSON reads a JSON array of feedback objects. Each element needs a
// "feedback" (or "text") field; "metadata.rating" and "metadata.source"
// are picked up when present. Parsing is tolerant: malformed elements
// are skipped rather than failing the whole file.
func LoadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", internalerr.ErrIO, path, err)
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: %s: expected a JSON array", internalerr.ErrInvalidInput, path)
	}

	factory := NewFactory()
	var records []Record
	parsed.ForEach(func(_, item gjson.Result) bool {
		text := item.Get("feedback").String()
		if text == "" {
			text = item.Get("text").String()
		}
		if strings.TrimSpace(text) == "" {
			return true
		}

		source := item.Get("metadata.source").String()
		if source == "" {
			source = path
		}
		rec := factory.New(cleanText(text), source)
		rec.Rating = int(item.Get("metadata.rating").Int())
		records = append(records, rec)
		return true
	})
	return records, nil
}

// LoadCSV reads a CSV file with a header row. The "text" (or "feedback")
// column is required; "source" and "rating" columns are optional.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", internalerr.ErrIO, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidInput, path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	textCol, ok := cols["text"]
	if !ok {
		textCol, ok = cols["feedback"]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing text column", internalerr.ErrInvalidInput, path)
	}

	factory := NewFactory()
	var records []Record
	for _, row := range rows[1:] {
		if textCol >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[textCol])
		if text == "" {
			continue
		}

		source := path
		if i, ok := cols["source"]; ok && i < len(row) && row[i] != "" {
			source = row[i]
		}
		rec := factory.New(cleanText(text), source)
		if i, ok := cols["rating"]; ok && i < len(row) {
			// Unparseable ratings are skipped, same as a missing column.
			if rating, err := strconv.Atoi(strings.TrimSpace(row[i])); err == nil {
				rec.Rating = rating
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// cleanText strips markup from exported feedback (review platforms often
// export HTML fragments) and collapses whitespace.
func cleanText(text string) string {
	if looksLikeHTML(text) {
		text = StripHTML(text)
	}
	return strings.Join(strings.Fields(text), " ")
}
