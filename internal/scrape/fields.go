package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Lines collapses a document's visible text into a deduplicated ordered
// line list. Label/value pairs render as adjacent lines on the status
// pages, once per viewport variant; deduplication keeps the first.
func Lines(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var lines []string
	for _, raw := range strings.Split(doc.Text(), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	return lines
}

// LabelValue returns the line following the first occurrence of label.
func LabelValue(lines []string, label string) (string, bool) {
	for i, line := range lines {
		if line == label && i+1 < len(lines) {
			return lines[i+1], true
		}
	}
	return "", false
}

// ExtractLines is the label-line strategy: for each output key the label's
// following line is taken. Every requested key is present in the result;
// unmatched keys default to N/A rather than being omitted.
func ExtractLines(input string, keys map[string]string) map[string]string {
	result := make(map[string]string, len(keys))
	for key := range keys {
		result[key] = NotAvailable
	}
	if strings.TrimSpace(input) == "" {
		return result
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return result
	}
	lines := Lines(doc)
	for key, label := range keys {
		if value, ok := LabelValue(lines, label); ok {
			result[key] = value
		}
	}
	return result
}

// ExtractByID is the id-container strategy: locate an element by id and
// normalize its text.
func ExtractByID(doc *goquery.Document, id string) string {
	return CleanText(doc.Find("div#" + id))
}
