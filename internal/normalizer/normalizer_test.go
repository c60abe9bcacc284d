package normalizer

import (
	"testing"

	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestService_Normalize_Text tests strict decoding of declared text
func TestService_Normalize_Text(t *testing.T) {
	svc := New(nil)

	text, err := svc.Normalize("notes.txt", []byte("hello wörld"))
	require.NoError(t, err)
	assert.Equal(t, "hello wörld", text)
}

// TestService_Normalize_StrictFailure tests the decode error on invalid bytes
func TestService_Normalize_StrictFailure(t *testing.T) {
	svc := New(nil)
	invalid := []byte{0xff, 0xfe, 'h', 'i'}

	for _, path := range []string{"notes.txt", "data.json"} {
		_, err := svc.Normalize(path, invalid)
		require.Error(t, err, "path %s", path)

		var decodeErr *domain.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, path, decodeErr.Path)
	}
}

// TestService_Normalize_LossyFallback tests that raw formats never fail
func TestService_Normalize_LossyFallback(t *testing.T) {
	svc := New(nil)
	invalid := []byte{'o', 'k', 0xff, 0xfe, '!'}

	text, err := svc.Normalize("blob.py", invalid)
	require.NoError(t, err)
	assert.Equal(t, "ok!", text)
}

// TestService_Normalize_HTML tests markup stripping
func TestService_Normalize_HTML(t *testing.T) {
	svc := New(nil)
	html := `<html><head><title>T</title><style>p{color:red}</style></head>
<body><script>alert(1)</script><p>First</p><p>Second</p></body></html>`

	text, err := svc.Normalize("page.html", []byte(html))
	require.NoError(t, err)

	assert.Contains(t, text, "First")
	assert.Contains(t, text, "Second")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color:red")
}

// TestService_Normalize_HTML_Latin1 tests charset conversion from meta tags
func TestService_Normalize_HTML_Latin1(t *testing.T) {
	svc := New(nil)
	// "café" with 0xe9 as latin-1 é
	html := append([]byte(`<html><head><meta charset="iso-8859-1"></head><body><p>caf`), 0xe9)
	html = append(html, []byte(`</p></body></html>`)...)

	text, err := svc.Normalize("page.html", html)
	require.NoError(t, err)
	assert.Contains(t, text, "café")
}

// TestService_Normalize_Notebook tests cell source extraction
func TestService_Normalize_Notebook(t *testing.T) {
	svc := New(nil)
	nb := `{
  "cells": [
    {"cell_type": "markdown", "source": "# Title\n"},
    {"cell_type": "code", "source": ["import os\n", "print(os.getcwd())\n"]},
    {"cell_type": "code", "source": ""}
  ]
}`

	text, err := svc.Normalize("analysis.ipynb", []byte(nb))
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nimport os\nprint(os.getcwd())", text)
}

// TestService_Normalize_NotebookFallback tests malformed notebooks
func TestService_Normalize_NotebookFallback(t *testing.T) {
	svc := New(nil)

	text, err := svc.Normalize("broken.ipynb", []byte("not json at all"))
	require.NoError(t, err)
	assert.Equal(t, "not json at all", text)
}

// TestService_Normalize_PDFError tests that corrupt PDFs return an error
func TestService_Normalize_PDFError(t *testing.T) {
	svc := New(nil)

	_, err := svc.Normalize("paper.pdf", []byte("this is not a pdf"))
	assert.Error(t, err)
}

// TestNotebookText tests parse-or-fallback detection directly
func TestNotebookText(t *testing.T) {
	tests := []struct {
		name string
		data string
		ok   bool
	}{
		{
			name: "valid notebook",
			data: `{"cells":[{"cell_type":"code","source":"x = 1"}]}`,
			ok:   true,
		},
		{
			name: "empty cell list",
			data: `{"cells":[]}`,
			ok:   false,
		},
		{
			name: "plain json without cells",
			data: `{"a":1}`,
			ok:   false,
		},
		{
			name: "invalid json",
			data: `{{{`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := notebookText([]byte(tt.data))
			assert.Equal(t, tt.ok, ok)
		})
	}
}
