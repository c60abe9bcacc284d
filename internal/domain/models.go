package domain

import "net/http"

// Source is one logical document-bearing URI. A single source may expand to
// many files on disk (a cloned repository, a directory of notes).
type Source struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	URI   string `json:"uri" yaml:"uri"`
}

// Kind classifies where a source lives and which downloader handles it.
type Kind int

const (
	KindLocal Kind = iota
	KindGit
	KindVideo
	KindHTTP
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindGit:
		return "git"
	case KindVideo:
		return "video"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// File is a fetched file before normalization: the on-disk path plus its raw
// bytes. Created by a downloader or a cache read-back, consumed by the
// normalizer, then discarded.
type File struct {
	Path string
	Data []byte
}

// Document is the final output unit: a source path and its unicode text.
// Downstream sentence parsing consumes Text; nothing here knows about that
// consumer.
type Document struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

// Response represents an HTTP response from the fetcher.
type Response struct {
	StatusCode  int
	Body        []byte
	Headers     http.Header
	ContentType string
	URL         string
	FromCache   bool
}

// Result pairs a source with its fetch outcome. Err is non-nil when the fetch
// failed; an empty Documents slice with a nil Err means the source genuinely
// had no readable content.
type Result struct {
	Source    Source
	Documents []Document
	Err       error
}
