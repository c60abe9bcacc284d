package normalizer

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// detectEncoding detects the character encoding of HTML content.
func detectEncoding(content []byte) string {
	head := content
	if len(head) > 1024 {
		head = head[:1024]
	}

	if enc := charsetFromMeta(string(head)); enc != "" {
		return enc
	}

	_, name, _ := charset.DetermineEncoding(content, "")
	if name != "" {
		return name
	}

	return "utf-8"
}

// charsetFromMeta extracts a charset declaration from a meta tag.
func charsetFromMeta(html string) string {
	html = strings.ToLower(html)

	idx := strings.Index(html, "charset=")
	if idx == -1 {
		return ""
	}

	start := idx + len("charset=")
	if start < len(html) && (html[start] == '"' || html[start] == '\'') {
		start++
	}

	end := start
	for ; end < len(html); end++ {
		c := html[end]
		if c == '"' || c == '\'' || c == ';' || c == '>' || c == ' ' {
			break
		}
	}

	return strings.TrimSpace(html[start:end])
}

// toUTF8 converts HTML content from its declared or detected encoding to
// UTF-8. Unknown encodings pass through unchanged.
func toUTF8(content []byte) ([]byte, error) {
	enc := detectEncoding(content)
	if enc == "utf-8" || enc == "utf8" {
		return content, nil
	}

	e, err := htmlindex.Get(enc)
	if err != nil {
		return content, nil
	}

	reader := transform.NewReader(bytes.NewReader(content), e.NewDecoder())
	return io.ReadAll(reader)
}
