package fetcher

import "strings"

// contentTypeExtensions maps content-type markers to file extensions.
// Matching is substring containment, not equality, so values like
// "text/plain; charset=utf-8" resolve correctly.
var contentTypeExtensions = []struct {
	marker string
	ext    string
}{
	{"text/html", ".html"},
	{"application/json", ".json"},
	{"text/plain", ".txt"},
	{"application/pdf", ".pdf"},
}

// ExtensionForContentType resolves a response content type to the extension
// the payload is cached under. Unmatched types default to .txt.
func ExtensionForContentType(contentType string) string {
	ct := strings.ToLower(contentType)
	for _, m := range contentTypeExtensions {
		if strings.Contains(ct, m.marker) {
			return m.ext
		}
	}
	return ".txt"
}
