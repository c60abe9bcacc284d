// Package cache implements the two caching layers: a directory-per-key
// content store on disk, and a badger-backed response cache for raw HTTP
// payloads. The directory store is the observable contract: presence of a
// key's directory is the sole cache-hit signal.
package cache

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/utils"
)

// Filetypes is the fixed allow-list of extensions read back from a cache
// directory. Files outside this set are invisible to the rest of the system
// even when present.
var Filetypes = map[string]bool{
	".pdf":   true,
	".py":    true,
	".pyc":   true,
	".ipynb": true,
	".txt":   true,
	".md":    true,
	".org":   true,
	".json":  true,
	".java":  true,
	".c":     true,
	".h":     true,
	".cpp":   true,
	".js":    true,
	".html":  true,
	".css":   true,
	".ts":    true,
	".jsx":   true,
	".hs":    true,
}

// Store maps sanitized source URLs to directories under a root. It owns the
// on-disk tree for the life of the process and beyond; the only
// initialization is directory creation on first write.
type Store struct {
	root string
	log  *utils.Logger
}

// NewStore creates a Store rooted at root.
func NewStore(root string, log *utils.Logger) *Store {
	if log == nil {
		log = utils.NopLogger()
	}
	return &Store{
		root: utils.ExpandPath(root),
		log:  log.WithComponent("cache"),
	}
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// Key derives the cache key for a URL: a character-filtered transform, not a
// hash, so cache directories stay human-readable.
func (s *Store) Key(url string) string {
	return utils.Sanitize(url)
}

// Dir returns the cache directory for a URL.
func (s *Store) Dir(url string) string {
	return filepath.Join(s.root, s.Key(url))
}

// Has reports whether the cache directory for url exists. Existence is the
// whole hit check: no manifest, no TTL, no checksum validation.
func (s *Store) Has(url string) bool {
	_, err := os.Stat(s.Dir(url))
	return err == nil
}

// ReadBack reads every allow-listed file under dir, walking nested
// directories (a cloned repository is a tree, not a flat directory).
// Files with other extensions are skipped with a warning. Order follows the
// filesystem walk; callers must treat the result as a set.
func (s *Store) ReadBack(dir string) ([]domain.File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return s.readOne(dir)
	}

	var files []domain.File
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip VCS metadata left behind by the git downloader.
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !Filetypes[filepath.Ext(path)] {
			s.log.Warn().Str("path", path).Msg("Skipping unsupported filetype")
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, domain.File{Path: path, Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// readOne handles the single-file case of a local path read.
func (s *Store) readOne(path string) ([]domain.File, error) {
	if !Filetypes[filepath.Ext(path)] {
		s.log.Warn().Str("path", path).Msg("Skipping unsupported filetype")
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []domain.File{{Path: path, Data: data}}, nil
}
