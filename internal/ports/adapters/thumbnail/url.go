package thumbnail

import (
	"fmt"
	"net/url"
	"strings"
)

var defaultAllowedHosts = map[string]struct{}{
	"i.ytimg.com":     {},
	"i1.ytimg.com":    {},
	"i2.ytimg.com":    {},
	"i3.ytimg.com":    {},
	"i4.ytimg.com":    {},
	"i9.ytimg.com":    {},
	"img.youtube.com": {},
}

// isRemote reports whether ref should be fetched over HTTP. Anything else
// (a plain path or a file:// URL) is read from disk.
func isRemote(ref string) bool {
	l := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func localPath(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(strings.ToLower(ref), "file://") {
		if u, err := url.Parse(ref); err == nil {
			return u.Path
		}
	}
	return ref
}

// ValidateURL checks a remote thumbnail URL against the allowed hosts. An
// allowed list containing "*" accepts any host.
func ValidateURL(raw string, allowedHosts []string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid thumbnail URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid thumbnail URL %q: absolute URL with host is required", raw)
	}
	if u.User != nil {
		return fmt.Errorf("invalid thumbnail URL %q: userinfo is not allowed", raw)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("invalid thumbnail URL %q: http or https is required", raw)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("invalid thumbnail URL %q: host is required", raw)
	}
	allowed := normalizeAllowedHosts(allowedHosts)
	if _, ok := allowed["*"]; ok {
		return nil
	}
	if _, ok := allowed[host]; !ok {
		return fmt.Errorf("invalid thumbnail URL %q: host %q is not in THUMBNAIL_ALLOWED_HOSTS", raw, host)
	}
	return nil
}

func normalizeAllowedHosts(allowedHosts []string) map[string]struct{} {
	if len(allowedHosts) == 0 {
		return defaultAllowedHosts
	}

	out := make(map[string]struct{}, len(allowedHosts))
	for _, h := range allowedHosts {
		v := strings.ToLower(strings.TrimSpace(h))
		v = strings.TrimPrefix(v, "http://")
		v = strings.TrimPrefix(v, "https://")
		v = strings.Trim(v, "/")
		if v == "" {
			continue
		}
		if i := strings.Index(v, ":"); i >= 0 {
			v = v[:i]
		}
		out[v] = struct{}{}
	}
	if len(out) == 0 {
		return defaultAllowedHosts
	}
	return out
}

// ValidateHosts rejects allow-list entries that cannot be a bare host, such
// as ones carrying a path.
func ValidateHosts(allowedHosts []string) error {
	for h := range normalizeAllowedHosts(allowedHosts) {
		if h == "*" {
			continue
		}
		if strings.ContainsAny(h, "/ \t@?#") {
			return fmt.Errorf("invalid THUMBNAIL_ALLOWED_HOSTS entry %q: bare host expected", h)
		}
	}
	return nil
}
