package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStore_Key tests key derivation from URLs
func TestStore_Key(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "url sanitized into key",
			url:      "https://example.com/path",
			expected: "https_example.com_path",
		},
		{
			name:     "query string folded in",
			url:      "https://youtube.com/watch?v=abc",
			expected: "https_youtube.com_watch_v_abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.Key(tt.url))
		})
	}

	// Same URL always maps to the same directory
	assert.Equal(t, store.Dir("https://example.com/x"), store.Dir("https://example.com/x"))
}

// TestStore_Has tests directory existence as the hit signal
func TestStore_Has(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, nil)
	url := "https://example.com/doc"

	assert.False(t, store.Has(url))

	require.NoError(t, os.MkdirAll(store.Dir(url), 0755))
	assert.True(t, store.Has(url))

	// An empty directory still counts as a hit
	empty := "https://example.com/empty"
	require.NoError(t, os.MkdirAll(store.Dir(empty), 0755))
	assert.True(t, store.Has(empty))
}

// TestStore_ReadBack tests allow-list filtering during read-back
func TestStore_ReadBack(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	dir := store.Dir("https://example.com/mixed")
	require.NoError(t, os.MkdirAll(dir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.pdf"), []byte("%PDF"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.exe"), []byte("MZ"), 0644))

	files, err := store.ReadBack(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "doc.pdf"), files[0].Path)
	assert.Equal(t, []byte("%PDF"), files[0].Data)
}

// TestStore_ReadBack_Recursive tests nested directories and VCS skipping
func TestStore_ReadBack_Recursive(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	dir := store.Dir("https://github.com/user/repo")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.py"), []byte("pass"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte("[core]"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "objects", "x.txt"), []byte("obj"), 0644))

	files, err := store.ReadBack(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	paths := make(map[string]bool, len(files))
	for _, f := range files {
		paths[f.Path] = true
	}
	assert.True(t, paths[filepath.Join(dir, "README.md")])
	assert.True(t, paths[filepath.Join(dir, "src", "main.py")])
}

// TestStore_ReadBack_SingleFile tests reading back a single local file
func TestStore_ReadBack_SingleFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	files, err := store.ReadBack(path)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "hello", string(files[0].Data))

	// A single file outside the allow-list yields nothing
	bad := filepath.Join(dir, "app.exe")
	require.NoError(t, os.WriteFile(bad, []byte("MZ"), 0644))
	files, err = store.ReadBack(bad)
	require.NoError(t, err)
	assert.Empty(t, files)
}

// TestStore_ReadBack_Missing tests the missing-path error
func TestStore_ReadBack_Missing(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	_, err := store.ReadBack(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
