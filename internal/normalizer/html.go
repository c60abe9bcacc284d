package normalizer

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedTags are elements whose text content is never visible.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
}

// HTMLText strips markup from an HTML payload and returns the visible text,
// text nodes joined with single spaces. Shared by the HTTP downloader (which
// writes stripped text into the cache) and the normalizer.
func HTMLText(data []byte) (string, error) {
	utf8Data, err := toUTF8(data)
	if err != nil {
		utf8Data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8Data))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, root := range doc.Nodes {
		collectText(root, &sb)
	}
	return sb.String(), nil
}

// collectText walks the node tree appending visible text nodes.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && skippedTags[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
