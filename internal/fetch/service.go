// Package fetch is the public entry point of the retrieval layer: it
// combines source classification, the content cache, the per-kind
// downloaders, and text normalization behind one facade.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/quantmind-br/docfetch-go/internal/cache"
	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/fetcher"
	"github.com/quantmind-br/docfetch-go/internal/git"
	"github.com/quantmind-br/docfetch-go/internal/normalizer"
	"github.com/quantmind-br/docfetch-go/internal/source"
	"github.com/quantmind-br/docfetch-go/internal/utils"
	"github.com/quantmind-br/docfetch-go/internal/video"
)

// Service fetches documents from local and remote sources, caches them, and
// normalizes them to unicode text.
type Service struct {
	store      *cache.Store
	gitDl      domain.Downloader
	videoDl    domain.Downloader
	httpDl     domain.Downloader
	normalizer domain.Normalizer
	respCache  domain.ResponseCache
	client     *fetcher.Client
	log        *utils.Logger
}

// Options contains options for creating a Service.
type Options struct {
	// CacheDir is the content cache root. Required.
	CacheDir string
	// ResponseCacheDir is the badger response cache location; empty selects
	// the default under the user's home directory.
	ResponseCacheDir string
	// EnableResponseCache toggles the HTTP response cache layer.
	EnableResponseCache bool
	// ResponseCacheTTL bounds how long raw responses are reused.
	ResponseCacheTTL time.Duration
	// Timeout bounds every network request.
	Timeout time.Duration
	// MaxRetries bounds retry attempts on transient statuses.
	MaxRetries int
	// UserAgent overrides the default browser User-Agent when non-empty.
	UserAgent string
	// Logger receives all fetch-layer logging. Nil discards.
	Logger *utils.Logger
}

// NewService creates a fetch Service with real downloaders.
func NewService(opts Options) (*Service, error) {
	if opts.CacheDir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}

	log := opts.Logger
	if log == nil {
		log = utils.NopLogger()
	}

	var respCache domain.ResponseCache
	if opts.EnableResponseCache {
		bc, err := cache.NewBadgerCache(cache.Options{Directory: opts.ResponseCacheDir})
		if err != nil {
			return nil, fmt.Errorf("open response cache: %w", err)
		}
		respCache = bc
	}

	client := fetcher.NewClient(fetcher.ClientOptions{
		Timeout:     opts.Timeout,
		MaxRetries:  opts.MaxRetries,
		EnableCache: opts.EnableResponseCache,
		CacheTTL:    opts.ResponseCacheTTL,
		Cache:       respCache,
		UserAgent:   opts.UserAgent,
	})

	return &Service{
		store:      cache.NewStore(opts.CacheDir, log),
		gitDl:      git.NewDownloader(git.NewClient(), log),
		videoDl:    video.NewDownloader(video.NewPageClient(client, log), log),
		httpDl:     fetcher.NewDownloader(client, log),
		normalizer: normalizer.New(log),
		respCache:  respCache,
		client:     client,
		log:        log.WithComponent("fetch"),
	}, nil
}

// ServiceDeps lets tests assemble a Service from fakes.
type ServiceDeps struct {
	Store      *cache.Store
	Git        domain.Downloader
	Video      domain.Downloader
	HTTP       domain.Downloader
	Normalizer domain.Normalizer
	Logger     *utils.Logger
}

// NewServiceWithDeps creates a Service from explicit dependencies.
func NewServiceWithDeps(deps ServiceDeps) *Service {
	log := deps.Logger
	if log == nil {
		log = utils.NopLogger()
	}
	return &Service{
		store:      deps.Store,
		gitDl:      deps.Git,
		videoDl:    deps.Video,
		httpDl:     deps.HTTP,
		normalizer: deps.Normalizer,
		log:        log.WithComponent("fetch"),
	}
}

// Close releases resources held by the Service.
func (s *Service) Close() error {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.respCache != nil {
		return s.respCache.Close()
	}
	return nil
}

// Fetch returns the raw files for a URI, from disk when local, from the
// content cache (downloading on a miss) when remote.
func (s *Service) Fetch(ctx context.Context, title, uri string) ([]domain.File, error) {
	if source.IsLocal(uri) {
		return s.fetchLocal(uri)
	}
	return s.FetchOnline(ctx, title, uri)
}

// fetchLocal reads files from a local path: a single file, or the
// allow-listed files of a directory. No network call is made.
func (s *Service) fetchLocal(uri string) ([]domain.File, error) {
	path := source.NormalizeLocalURI(uri)
	files, err := s.store.ReadBack(path)
	if err != nil {
		s.log.Error().Str("path", path).Err(err).Msg("Local path is not readable")
		return nil, domain.ErrLocalPathMissing
	}
	return files, nil
}

// FetchOnline fetches a remote URL, reading from the content cache when its
// directory already exists and downloading otherwise. Cache hit and miss
// converge on the same read-back, so the output shape is identical either
// way.
func (s *Service) FetchOnline(ctx context.Context, title, url string) ([]domain.File, error) {
	url = source.Preprocess(url)
	dir := s.store.Dir(url)

	if !s.store.Has(url) {
		s.log.Info().Str("url", url).Msg("URL not cached, fetching")

		var dl domain.Downloader
		switch kind := source.DetectKind(url); kind {
		case domain.KindGit:
			dl = s.gitDl
		case domain.KindVideo:
			dl = s.videoDl
		default:
			dl = s.httpDl
		}

		if err := dl.Download(ctx, title, url, dir); err != nil {
			s.log.Error().Str("url", url).Err(err).Msg("Download failed")
			return nil, err
		}
	}

	files, err := s.store.ReadBack(dir)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FetchUTF8 fetches a URI and normalizes every resulting file to unicode
// text. This is the only entry point downstream consumers use.
func (s *Service) FetchUTF8(ctx context.Context, title, uri string) ([]domain.Document, error) {
	files, err := s.Fetch(ctx, title, uri)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		text, err := s.normalizer.Normalize(f.Path, f.Data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, domain.Document{Path: f.Path, Text: text})
	}
	return docs, nil
}

// FetchAll processes a batch of sources. Failures are absorbed per source:
// one failed download never aborts the batch, it just shows up as a Result
// with a non-nil Err and no documents.
func (s *Service) FetchAll(ctx context.Context, sources []domain.Source) []domain.Result {
	bar := utils.NewProgressBar(len(sources), utils.DescFetching)
	defer func() { _ = bar.Finish() }()

	results := make([]domain.Result, 0, len(sources))
	for _, src := range sources {
		docs, err := s.FetchUTF8(ctx, src.Title, src.URI)
		if err != nil {
			s.log.Error().Str("uri", src.URI).Err(err).Msg("Source failed")
		}
		results = append(results, domain.Result{
			Source:    src,
			Documents: docs,
			Err:       err,
		})
		_ = bar.Add(1)
	}
	return results
}
