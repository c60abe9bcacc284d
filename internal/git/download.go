package git

import (
	"context"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/utils"
)

// Ensure Downloader implements domain.Downloader
var _ domain.Downloader = (*Downloader)(nil)

// Downloader clones git repositories into cache directories. It is the one
// downloader that does not swallow errors: a half-cloned repository is an
// inconsistent cache state the caller must know about.
type Downloader struct {
	client Client
	log    *utils.Logger
}

// NewDownloader creates a git Downloader.
func NewDownloader(client Client, log *utils.Logger) *Downloader {
	if client == nil {
		client = NewClient()
	}
	if log == nil {
		log = utils.NopLogger()
	}
	return &Downloader{
		client: client,
		log:    log.WithComponent("git"),
	}
}

// Download clones url into dir. On success dir contains the repository's
// working tree. On failure the partial directory is removed so a later call
// can retry, and a CloneError propagates to the caller.
func (d *Downloader) Download(ctx context.Context, title, url, dir string) error {
	d.log.Info().Str("url", url).Str("dir", dir).Msg("Cloning repository")

	if err := utils.EnsureDir(dir); err != nil {
		return err
	}

	_, err := d.client.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return domain.NewCloneError(url, err)
	}

	return nil
}
