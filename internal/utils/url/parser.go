// Package urlutil holds the URL normalization rules the crawler depends on:
// seed normalization, the visited-set dedup key, relative resolution, and the
// internal/external partition.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ValidateURL performs comprehensive URL validation
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// NormalizeSeed prepares a user-supplied seed URL for crawling: it adds the
// https scheme when none is present and validates the result.
func NormalizeSeed(seed string) (string, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return "", fmt.Errorf("empty seed URL")
	}
	if !strings.HasPrefix(seed, "http://") && !strings.HasPrefix(seed, "https://") {
		seed = "https://" + seed
	}
	if err := ValidateURL(seed); err != nil {
		return "", err
	}
	return seed, nil
}

// NormalizeForVisit reduces a URL to the visited-set dedup key: origin plus
// path, with the trailing slash, query string, and fragment stripped. The
// path comparison stays case-sensitive. Two URLs that differ only in those
// parts are the same logical page for crawl bookkeeping.
func NormalizeForVisit(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	path := u.EscapedPath()
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "/" {
		path = ""
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path
}

// ResolveURL resolves a possibly-relative href against a base URL and returns a string
func ResolveURL(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}

// SameSite reports whether two hosts belong to the same registrable domain
// (eTLD+1), so www.example.com and example.com count as internal to each
// other while example.github.io and other.github.io do not.
func SameSite(hostA, hostB string) bool {
	a := strings.ToLower(stripPort(hostA))
	b := strings.ToLower(stripPort(hostB))
	if a == b {
		return true
	}
	ra, errA := publicsuffix.EffectiveTLDPlusOne(a)
	rb, errB := publicsuffix.EffectiveTLDPlusOne(b)
	if errA != nil || errB != nil {
		return false
	}
	return ra == rb
}

// PathOf returns the path component of a URL, defaulting to "/".
func PathOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

// HostOf returns the lowercased host (without port) of a URL.
func HostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return strings.ToLower(stripPort(u.Host))
}

func stripPort(host string) string {
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.Contains(host[i:], "]") {
		return host[:i]
	}
	return host
}
