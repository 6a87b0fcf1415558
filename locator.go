package docwright

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// ContentType identifies the kind of source a locator points at.
type ContentType string

// ContentType values.
const (
	ContentTypeWebsite ContentType = "website"
	ContentTypeVideo   ContentType = "video"
	ContentTypeInvalid ContentType = "invalid"
)

// Classification is the result of classifying a source locator. It is a plain
// record: classification never raises, invalid locators carry a
// human-readable Reason instead.
type Classification struct {
	Valid   bool        `json:"valid"`
	Type    ContentType `json:"type"`
	VideoID string      `json:"videoId,omitempty"`
	Reason  string      `json:"reason,omitempty"`
}

// videoIDPattern validates the canonical 11-character video identifier.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// videoIDMatcher extracts a candidate video ID from a parsed URL.
// Matchers are tried in order; the first non-empty match wins.
type videoIDMatcher func(u *url.URL) string

// videoIDMatchers is the ordered list of host/path patterns recognized as
// video locators.
var videoIDMatchers = []videoIDMatcher{
	// youtube.com/watch?v=<id>
	func(u *url.URL) string {
		if strings.HasSuffix(u.Path, "/watch") {
			return u.Query().Get("v")
		}
		return ""
	},
	// youtu.be/<id>
	func(u *url.URL) string {
		if normalizeVideoHost(u.Hostname()) == "youtu.be" {
			return strings.Trim(u.Path, "/")
		}
		return ""
	},
	// youtube.com/embed/<id>
	func(u *url.URL) string { return pathSegmentAfter(u.Path, "/embed/") },
	// youtube.com/shorts/<id>
	func(u *url.URL) string { return pathSegmentAfter(u.Path, "/shorts/") },
	// youtube.com/v/<id> (legacy)
	func(u *url.URL) string { return pathSegmentAfter(u.Path, "/v/") },
}

// Classify decides whether a locator is a website, a video, or invalid.
// It fails closed: malformed URLs, non-HTTP(S) schemes, and loopback/local
// hostnames are classified invalid with a reason. Classify never returns an
// error and performs no I/O.
func Classify(rawURL string) Classification {
	invalid := func(reason string) Classification {
		return Classification{Type: ContentTypeInvalid, Reason: reason}
	}

	if strings.TrimSpace(rawURL) == "" {
		return invalid("empty URL")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return invalid("malformed URL: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("unsupported scheme: " + u.Scheme)
	}
	if u.Hostname() == "" {
		return invalid("missing host")
	}
	if isLocalHost(u.Hostname()) {
		return invalid("local and loopback addresses are not allowed")
	}

	if isVideoHost(u.Hostname()) {
		id := ExtractVideoID(rawURL)
		if id == "" {
			// A known video host without a recognizable ID is invalid,
			// not a website.
			return invalid("no video ID found in video URL")
		}
		return Classification{Valid: true, Type: ContentTypeVideo, VideoID: id}
	}

	return Classification{Valid: true, Type: ContentTypeWebsite}
}

// ExtractVideoID returns the canonical video identifier embedded in a video
// locator, or an empty string if none of the known patterns match. Only known
// video hosts are considered: a website whose path merely resembles a video
// route (/watch, /embed/...) carries no video ID.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if !isVideoHost(u.Hostname()) {
		return ""
	}
	for _, match := range videoIDMatchers {
		if id := match(u); videoIDPattern.MatchString(id) {
			return id
		}
	}
	return ""
}

// trackingParams are query parameters stripped from website locators during
// normalization. utm_ is matched as a prefix.
var trackingParams = map[string]bool{
	"fbclid": true,
	"gclid":  true,
}

// Normalize returns the canonical form of a locator. Video locators are
// rebuilt as watch?v=<id>[&t=<offset>], dropping all other parameters.
// Website locators lose tracking parameters (utm_*, fbclid, gclid) and any
// fragment but are otherwise preserved. Normalize never raises; on parse
// failure it returns the input unchanged.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if id := ExtractVideoID(rawURL); id != "" {
		canonical := "https://www.youtube.com/watch?v=" + id
		if t := u.Query().Get("t"); t != "" {
			canonical += "&t=" + url.QueryEscape(t)
		}
		return canonical
	}

	u.Fragment = ""
	if u.RawQuery != "" {
		// Filter pairs manually to preserve the original parameter order,
		// which url.Values.Encode would sort away.
		kept := make([]string, 0, 4)
		for pair := range strings.SplitSeq(u.RawQuery, "&") {
			key, _, _ := strings.Cut(pair, "=")
			if strings.HasPrefix(key, "utm_") || trackingParams[key] {
				continue
			}
			kept = append(kept, pair)
		}
		u.RawQuery = strings.Join(kept, "&")
	}
	return u.String()
}

// isVideoHost reports whether the host belongs to a known video platform.
func isVideoHost(host string) bool {
	switch normalizeVideoHost(host) {
	case "youtube.com", "youtu.be", "youtube-nocookie.com":
		return true
	}
	return false
}

// normalizeVideoHost strips common subdomain prefixes for host comparison.
func normalizeVideoHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	return host
}

// isLocalHost reports whether the hostname refers to the local machine or a
// private-use name. These are blocked to avoid turning the extractor into a
// proxy for internal services.
func isLocalHost(host string) bool {
	host = strings.ToLower(host)
	if host == "localhost" || host == "0.0.0.0" || strings.HasSuffix(host, ".local") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback() || ip.IsUnspecified()
	}
	return false
}

// pathSegmentAfter returns the first path segment following prefix, or an
// empty string if the path does not contain the prefix.
func pathSegmentAfter(path, prefix string) string {
	idx := strings.Index(path, prefix)
	if idx < 0 {
		return ""
	}
	rest := path[idx+len(prefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
