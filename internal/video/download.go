package video

import (
	"context"
	"os"
	"path/filepath"

	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/utils"
)

// Ensure Downloader implements domain.Downloader
var _ domain.Downloader = (*Downloader)(nil)

// Downloader caches video transcripts. When no video identifier can be
// extracted it performs no write at all, so a later call retries.
type Downloader struct {
	transcripts domain.TranscriptClient
	log         *utils.Logger
}

// NewDownloader creates a video Downloader.
func NewDownloader(transcripts domain.TranscriptClient, log *utils.Logger) *Downloader {
	if log == nil {
		log = utils.NopLogger()
	}
	return &Downloader{
		transcripts: transcripts,
		log:         log.WithComponent("video"),
	}
}

// Download resolves the video identifier from url, fetches its transcript,
// and writes it to <dir>/<title>.txt. The title comes from the caller, then
// page metadata, then the video identifier.
func (d *Downloader) Download(ctx context.Context, title, url, dir string) error {
	id, ok := ExtractID(url)
	if !ok {
		d.log.Error().Str("url", url).Msg("Could not extract video ID from URL")
		return domain.ErrNoVideoID
	}

	d.log.Info().Str("url", url).Str("id", id).Msg("Downloading video transcript")

	transcript, err := d.transcripts.Transcript(ctx, id)
	if err != nil {
		return err
	}

	if title == "" {
		pageTitle, err := d.transcripts.Title(ctx, id)
		if err != nil || pageTitle == "" {
			title = id
		} else {
			title = pageTitle
		}
	}

	if err := utils.EnsureDir(dir); err != nil {
		return err
	}

	path := filepath.Join(dir, utils.FileName(title, ".txt"))
	d.log.Debug().Str("path", path).Msg("Writing transcript")
	return os.WriteFile(path, []byte(transcript), 0644)
}
