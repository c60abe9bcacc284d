// Package source classifies document URIs: local filesystem paths versus
// remote URLs, and for remote URLs, which downloader applies.
package source

import (
	"os"
	"strings"

	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/utils"
)

const fileScheme = "file://"

// NormalizeLocalURI strips an optional file:// prefix and expands ~ so the
// result can be used as a plain filesystem path.
func NormalizeLocalURI(uri string) string {
	uri = strings.TrimPrefix(uri, fileScheme)
	return utils.ExpandPath(uri)
}

// IsFileScheme reports whether uri carries an explicit file:// scheme. Such
// a URI names a filesystem path by definition, whether or not it exists.
func IsFileScheme(uri string) bool {
	return strings.HasPrefix(uri, fileScheme)
}

// IsLocal reports whether uri names a local path: any file:// URI, or a bare
// path that exists on disk. The existence check is the only side effect; no
// network I/O happens here.
func IsLocal(uri string) bool {
	if IsFileScheme(uri) {
		return true
	}
	_, err := os.Stat(NormalizeLocalURI(uri))
	return err == nil
}

// Preprocess applies domain-specific URL rewrites before any caching
// decision, so the rewritten URL determines the cache key. arXiv abstract
// pages are rewritten to their PDF counterpart.
func Preprocess(url string) string {
	if strings.Contains(url, "arxiv.org") {
		url = strings.Replace(url, "abs", "pdf", 1)
	}
	return url
}

// DetectKind determines which downloader handles a remote URL. Git-hosting
// markers win over video markers; everything else goes to the generic HTTP
// downloader.
func DetectKind(url string) domain.Kind {
	lower := strings.ToLower(url)

	if strings.Contains(lower, "github.com") {
		return domain.KindGit
	}

	if strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be") {
		return domain.KindVideo
	}

	return domain.KindHTTP
}

// Classify decides whether a URI is local or remote.
func Classify(uri string) domain.Kind {
	if IsLocal(uri) {
		return domain.KindLocal
	}
	return DetectKind(uri)
}
