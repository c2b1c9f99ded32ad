package urlutil

import (
	"testing"
)

func TestNormalizeSeed_AddsScheme(t *testing.T) {
	seed, err := NormalizeSeed("example.com")
	if err != nil {
		t.Fatalf("NormalizeSeed failed: %v", err)
	}
	if seed != "https://example.com" {
		t.Errorf("Expected 'https://example.com', got '%s'", seed)
	}
}

func TestNormalizeSeed_KeepsExplicitScheme(t *testing.T) {
	seed, err := NormalizeSeed("http://example.com/path")
	if err != nil {
		t.Fatalf("NormalizeSeed failed: %v", err)
	}
	if seed != "http://example.com/path" {
		t.Errorf("Expected scheme preserved, got '%s'", seed)
	}
}

func TestNormalizeSeed_RejectsEmptyAndInvalid(t *testing.T) {
	if _, err := NormalizeSeed(""); err == nil {
		t.Error("Expected error for empty seed, got nil")
	}
	if _, err := NormalizeSeed("ftp://example.com"); err == nil {
		t.Error("Expected error for ftp scheme, got nil")
	}
}

func TestNormalizeForVisit_Equivalences(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"https://example.com/about", "https://example.com/about/", true},
		{"https://example.com/about", "https://example.com/about?utm=x", true},
		{"https://example.com/about", "https://example.com/about#team", true},
		{"https://EXAMPLE.com/about", "https://example.com/about", true},
		{"https://example.com/", "https://example.com", true},
		{"https://example.com/About", "https://example.com/about", false},
		{"https://example.com/about", "https://example.com/contact", false},
	}

	for _, tt := range tests {
		got := NormalizeForVisit(tt.a) == NormalizeForVisit(tt.b)
		if got != tt.same {
			t.Errorf("NormalizeForVisit(%q) vs (%q): same=%v, expected %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestResolveURL_Relative(t *testing.T) {
	got := ResolveURL("https://example.com/blog/post", "../about")
	if got != "https://example.com/about" {
		t.Errorf("Expected 'https://example.com/about', got '%s'", got)
	}
}

func TestResolveURL_AbsolutePassthrough(t *testing.T) {
	got := ResolveURL("https://example.com", "https://other.com/page")
	if got != "https://other.com/page" {
		t.Errorf("Expected absolute URL unchanged, got '%s'", got)
	}
}

func TestSameSite_SubdomainsMatch(t *testing.T) {
	if !SameSite("www.example.com", "example.com") {
		t.Error("Expected www.example.com and example.com to be the same site")
	}
	if !SameSite("blog.example.co.uk", "shop.example.co.uk") {
		t.Error("Expected example.co.uk subdomains to be the same site")
	}
}

func TestSameSite_SharedSuffixDiffers(t *testing.T) {
	// github.io is a public suffix, so sibling subdomains are distinct sites.
	if SameSite("alpha.github.io", "beta.github.io") {
		t.Error("Expected distinct github.io subdomains to be different sites")
	}
	if SameSite("example.com", "example.org") {
		t.Error("Expected example.com and example.org to be different sites")
	}
}

func TestSameSite_PortsIgnored(t *testing.T) {
	if !SameSite("example.com:8080", "example.com") {
		t.Error("Expected ports to be ignored in site comparison")
	}
}

func TestHostOf_StripsPortAndLowercases(t *testing.T) {
	if got := HostOf("https://Example.COM:8443/path"); got != "example.com" {
		t.Errorf("Expected 'example.com', got '%s'", got)
	}
}

func TestPathOf_DefaultsToRoot(t *testing.T) {
	if got := PathOf("https://example.com"); got != "/" {
		t.Errorf("Expected '/', got '%s'", got)
	}
	if got := PathOf("https://example.com/about/"); got != "/about/" {
		t.Errorf("Expected '/about/', got '%s'", got)
	}
}
