package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// Unknown marks a fragment that could not be located or was empty.
	Unknown = "Unknown"
	// NotAvailable marks a requested field whose label was not found.
	NotAvailable = "N/A"
)

// Dedup resolves a recurring firmware quirk: mobile and desktop renderings
// of the same value share one container, so its text is the value
// concatenated with itself. Must run before any key matching.
func Dedup(text string) string {
	if len(text) > 1 && len(text)%2 == 0 {
		mid := len(text) / 2
		if text[:mid] == text[mid:] {
			return text[:mid]
		}
	}
	return text
}

// CleanText extracts the scalar text of a fragment, preferring an inner <p>
// when present, with the duplication quirk resolved. Missing or empty
// fragments yield Unknown.
func CleanText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return Unknown
	}
	target := sel
	if p := sel.Find("p").First(); p.Length() > 0 {
		target = p
	}
	text := nodeText(target)
	if text == "" {
		return Unknown
	}
	return Dedup(text)
}

// nodeText concatenates the trimmed text nodes of a fragment without
// separators, matching how the firmware's markup is meant to render.
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeText(node, &b)
	}
	return b.String()
}

func writeText(node *html.Node, b *strings.Builder) {
	if node.Type == html.TextNode {
		b.WriteString(strings.TrimSpace(node.Data))
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(child, b)
	}
}

// segments splits a fragment's text at <br> boundaries, trimming and
// deduplicating each piece. The device table packs ip/mac and up/down
// pairs into single cells this way.
func segments(sel *goquery.Selection) []string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeSegmented(node, &b)
	}
	var parts []string
	for _, raw := range strings.Split(b.String(), "\n") {
		part := Dedup(strings.TrimSpace(raw))
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func writeSegmented(node *html.Node, b *strings.Builder) {
	if node.Type == html.TextNode {
		if text := strings.TrimSpace(node.Data); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
		return
	}
	if node.Type == html.ElementNode && node.Data == "br" {
		b.WriteString("\n")
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeSegmented(child, b)
	}
}
