// Package video implements the transcript downloader: it extracts a video
// identifier from a URL, retrieves the timed transcript, and caches it as a
// single text file.
package video

import "regexp"

// videoIDPatterns are the URL shapes an 11-character video identifier can be
// extracted from: standard watch, shortened, embed, and "v" URLs.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

// ExtractID extracts the video identifier from a URL, trying each known URL
// shape in order.
func ExtractID(url string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}
