package normalizer

import (
	"encoding/json"
	"strings"
)

// notebookCell is one cell of a Jupyter notebook. Source is a string in some
// producers and a list of lines in others.
type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

// notebook is the subset of the .ipynb schema we read.
type notebook struct {
	Cells []notebookCell `json:"cells"`
}

// notebookText extracts cell sources from a notebook payload in cell order,
// cells joined with blank lines. Returns false when the payload is not a
// parseable notebook, in which case the caller falls back to the raw decode.
func notebookText(data []byte) (string, bool) {
	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil || len(nb.Cells) == 0 {
		return "", false
	}

	var sb strings.Builder
	for _, cell := range nb.Cells {
		src := cellSource(cell.Source)
		if src == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(src)
	}

	return sb.String(), true
}

// cellSource decodes a cell source that is either a string or a line list.
func cellSource(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimRight(s, "\n")
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.TrimRight(strings.Join(lines, ""), "\n")
	}

	return ""
}
