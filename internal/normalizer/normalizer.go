package normalizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/utils"
)

// Ensure Service implements domain.Normalizer
var _ domain.Normalizer = (*Service)(nil)

// Service converts raw file bytes to unicode text, dispatching on the file's
// Format. Declared-text formats decode strictly and fail loudly on invalid
// bytes; everything unknown decodes lossily and never fails.
type Service struct {
	log *utils.Logger
}

// New creates a normalizer Service.
func New(log *utils.Logger) *Service {
	if log == nil {
		log = utils.NopLogger()
	}
	return &Service{log: log.WithComponent("normalizer")}
}

// Normalize converts the bytes of the file at path into a unicode string.
func (s *Service) Normalize(path string, data []byte) (string, error) {
	format := ForPath(path)

	switch format {
	case FormatPDF:
		return pdfText(data)

	case FormatHTML:
		return HTMLText(data)

	case FormatText, FormatJSON:
		return strictUTF8(path, data)

	case FormatNotebook:
		if text, ok := notebookText(data); ok {
			return text, nil
		}
		s.log.Warn().Str("path", path).Msg("Not a parseable notebook, using raw decode")
		return lossyUTF8(data), nil

	case FormatRaw:
		return lossyUTF8(data), nil

	default:
		// The Format set is closed; a new constant without a case above is
		// a programming error, not an input error.
		return "", fmt.Errorf("unhandled format %v for %s", format, path)
	}
}

// strictUTF8 decodes declared-text formats, failing on invalid sequences.
func strictUTF8(path string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &domain.DecodeError{Path: path, Err: fmt.Errorf("invalid UTF-8 sequence")}
	}
	return string(data), nil
}

// lossyUTF8 decodes unknown formats, dropping invalid sequences.
func lossyUTF8(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
