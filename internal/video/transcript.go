package video

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/quantmind-br/docfetch-go/internal/domain"
	"github.com/quantmind-br/docfetch-go/internal/utils"
)

// Ensure PageClient implements domain.TranscriptClient
var _ domain.TranscriptClient = (*PageClient)(nil)

// ytInitialPlayerResponseMarker marks the start of the player response JSON
// in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// PageClient retrieves transcripts by scraping the video watch page: the
// embedded player response lists caption tracks, whose timedtext XML holds
// the transcript lines.
type PageClient struct {
	getter domain.Getter
	log    *utils.Logger
}

// NewPageClient creates a PageClient on top of an HTTP getter.
func NewPageClient(getter domain.Getter, log *utils.Logger) *PageClient {
	if log == nil {
		log = utils.NopLogger()
	}
	return &PageClient{
		getter: getter,
		log:    log.WithComponent("video"),
	}
}

// watchURL returns the watch page URL for a video identifier.
func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// playerResponse is the subset of ytInitialPlayerResponse we read.
type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// captionTrack is one caption track entry in the player response.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
}

// timedText is the caption XML document: an ordered sequence of timed lines.
type timedText struct {
	Lines []timedLine `xml:"text"`
}

type timedLine struct {
	Start string `xml:"start,attr"`
	Text  string `xml:",chardata"`
}

// Transcript fetches the transcript for a video: ordered timed lines joined
// with single spaces, no deduplication.
func (c *PageClient) Transcript(ctx context.Context, videoID string) (string, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		return "", domain.ErrNoTranscript
	}

	track := pickTrack(tracks)
	return c.fetchTimedText(ctx, track.BaseURL)
}

// Title resolves the video title from the watch page's og:title meta tag.
func (c *PageClient) Title(ctx context.Context, videoID string) (string, error) {
	resp, err := c.getter.Get(ctx, watchURL(videoID))
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return "", err
	}

	title, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	return title, nil
}

// captionTracks scrapes the watch page and extracts the caption track list
// from the embedded player response.
func (c *PageClient) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	resp, err := c.getter.Get(ctx, watchURL(videoID))
	if err != nil {
		return nil, err
	}

	idx := bytes.Index(resp.Body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	jsonData := extractJSON(resp.Body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if player.Captions == nil {
		return nil, domain.ErrNoTranscript
	}

	return player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

// pickTrack selects the caption track to fetch: a manual English track wins
// over an auto-generated one, any English track wins over the rest.
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// fetchTimedText fetches and parses a timedtext XML caption URL.
func (c *PageClient) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	resp, err := c.getter.Get(ctx, baseURL)
	if err != nil {
		return "", err
	}

	var tt timedText
	if err := xml.Unmarshal(resp.Body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := cleanLine(line.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}

	if sb.Len() == 0 {
		return "", domain.ErrNoTranscript
	}
	return sb.String(), nil
}

// cleanLine cleans one timedtext caption line. The payload is double-encoded:
// the XML decoder resolves one level of entities, so "&amp;#39;" still reads
// "&#39;" after parsing and needs a second unescape.
func cleanLine(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by
// tracking brace depth. String contents are skipped, honoring backslash
// escapes so an escaped quote or trailing escaped backslash cannot confuse
// the depth count.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
