package fetcher

// DefaultUserAgent is a browser-identifying User-Agent. Some servers gate on
// this header and reject requests without it.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// BrowserHeaders returns the fixed request headers sent with every GET.
func BrowserHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,application/pdf,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}
