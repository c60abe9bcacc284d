package fetcher

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/normalizer"
	"github.com/quantmind-br/docfetch-go/internal/utils"
)

// Ensure Downloader implements domain.Downloader
var _ domain.Downloader = (*Downloader)(nil)

// Downloader is the generic HTTP downloader. It GETs a URL, resolves the
// payload's extension from the content type, and writes a single file into
// the cache directory.
type Downloader struct {
	client domain.Getter
	log    *utils.Logger
}

// NewDownloader creates an HTTP Downloader.
func NewDownloader(client domain.Getter, log *utils.Logger) *Downloader {
	if log == nil {
		log = utils.NopLogger()
	}
	return &Downloader{
		client: client,
		log:    log.WithComponent("http"),
	}
}

// Download fetches url and writes the payload under dir. HTML payloads are
// stripped to visible text before the write; PDFs are written as raw bytes
// and left to the normalizer; everything else is written as-is.
func (d *Downloader) Download(ctx context.Context, title, url, dir string) error {
	log := d.log.WithURL(url)

	resp, err := d.client.Get(ctx, url)
	if err != nil {
		return err
	}

	ext := ExtensionForContentType(resp.ContentType)
	log.Info().Str("ext", ext).Msg("Downloading URL")

	var payload []byte
	switch ext {
	case ".html":
		payload, title, err = d.htmlPayload(resp.Body, title)
		if err != nil {
			return domain.NewFetchError(url, resp.StatusCode, err)
		}
	default:
		// PDF and unknown payloads are cached byte-for-byte; text
		// extraction is the normalizer's job.
		payload = resp.Body
	}

	if title == "" {
		title = utils.Sanitize(url)
	}

	if err := utils.EnsureDir(dir); err != nil {
		return err
	}

	path := filepath.Join(dir, utils.FileName(title, ext))
	log.Debug().Str("path", path).Msg("Writing cached file")
	return os.WriteFile(path, payload, 0644)
}

// htmlPayload strips an HTML body to visible text and infers a title when
// the caller supplied none.
func (d *Downloader) htmlPayload(body []byte, title string) ([]byte, string, error) {
	text, err := normalizer.HTMLText(body)
	if err != nil {
		return nil, title, err
	}

	if title == "" {
		title = inferTitle(body)
	}

	return []byte(text), title, nil
}

// inferTitle looks for a document title in, in order: an og:title meta tag,
// a generic title meta tag, then the title element.
func inferTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && content != "" {
		return content
	}

	if content, ok := doc.Find(`meta[property="title"]`).Attr("content"); ok && content != "" {
		return content
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}
