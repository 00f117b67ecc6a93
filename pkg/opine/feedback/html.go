package feedback

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML extracts the text content of an HTML fragment. Review
// platform exports frequently wrap feedback in markup like <p> or <br>.
func StripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}

// looksLikeHTML is a cheap check for markup: an opening angle bracket
// followed by a letter and a matching close bracket somewhere after.
func looksLikeHTML(s string) bool {
	open := strings.IndexByte(s, '<')
	if open < 0 || open+1 >= len(s) {
		return false
	}
	c := s[open+1]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '/') {
		return false
	}
	return strings.IndexByte(s[open:], '>') > 0
}
