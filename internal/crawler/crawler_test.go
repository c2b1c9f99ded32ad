package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sitesmith/crawl/pkg/models"
)

func fastConfig() models.CrawlConfig {
	return models.CrawlConfig{
		MaxPages:  10,
		MaxDepth:  3,
		RateLimit: time.Millisecond,
		Timeout:   5 * time.Second,
	}
}

func sitePage(title, body string) string {
	return fmt.Sprintf(`<html><head><title>%s</title></head><body>
		<header><a href="/"><img src="/logo.png" alt="Acme"></a></header>
		<nav><a href="/about">About</a><a href="/contact">Contact</a></nav>
		%s
		<footer><a href="/privacy">Privacy</a></footer>
	</body></html>`, title, body)
}

func testSite(t *testing.T) (*httptest.Server, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, mux
}

func TestCrawl_VisitsAndAggregates(t *testing.T) {
	server, mux := testSite(t)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, sitePage("Acme Co | Home", `
			<h1>Acme Co</h1>
			<a href="/doc.pdf">Brochure</a>
			<a href="/missing">Gone</a>
			<a href="https://twitter.com/acme">Twitter</a>`))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitePage("About | Acme Co", `<h1>About</h1>`))
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitePage("Contact | Acme Co", `<h1>Contact</h1>
			<a href="mailto:info@acme.test">Email us</a>`))
	})
	mux.HandleFunc("/privacy", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitePage("Privacy | Acme Co", `<h1>Privacy</h1>`))
	})
	mux.HandleFunc("/doc.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	})

	c := New(server.Client(), nil)
	data, err := c.Crawl(context.Background(), server.URL, fastConfig(), nil)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	if len(data.Pages) != 4 {
		t.Fatalf("Expected 4 crawled pages, got %d", len(data.Pages))
	}
	if data.Pages[0].PageType != models.PageTypeHome {
		t.Errorf("Expected homepage first in breadth-first order, got %s", data.Pages[0].PageType)
	}
	if data.Domain != "127.0.0.1" {
		t.Errorf("Expected IP domain, got '%s'", data.Domain)
	}

	// The 404 is recorded; the crawl keeps going.
	if len(data.Errors) != 1 || !strings.HasSuffix(data.Errors[0].URL, "/missing") {
		t.Errorf("Expected one recorded error for /missing, got %v", data.Errors)
	}
	if data.Stats.PagesCrawled != 4 || data.Stats.ErrorCount != 1 {
		t.Errorf("Unexpected stats: %+v", data.Stats)
	}

	// The PDF is skipped silently: not a page, not an error.
	for _, page := range data.Pages {
		if strings.HasSuffix(page.URL, ".pdf") {
			t.Error("Expected non-HTML response excluded from pages")
		}
	}

	if data.Brand.CompanyName != "Acme" {
		t.Errorf("Expected company name from logo alt, got '%s'", data.Brand.CompanyName)
	}
	if !strings.HasSuffix(data.Brand.Logo, "/logo.png") {
		t.Errorf("Expected voted logo, got '%s'", data.Brand.Logo)
	}
	if len(data.Navigation.Primary) != 2 {
		t.Errorf("Expected About and Contact in primary nav, got %v", data.Navigation.Primary)
	}
	if data.Global.Email != "info@acme.test" {
		t.Errorf("Expected contact email aggregated, got '%s'", data.Global.Email)
	}
	if len(data.Global.SocialLinks) != 1 || data.Global.SocialLinks[0].Platform != "twitter" {
		t.Errorf("Expected twitter social link, got %v", data.Global.SocialLinks)
	}
	if data.CrawlDuration <= 0 {
		t.Error("Expected positive crawl duration")
	}
}

func TestCrawl_PageBudget(t *testing.T) {
	server, mux := testSite(t)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var links strings.Builder
		for i := 0; i < 10; i++ {
			fmt.Fprintf(&links, `<a href="/p%d">P%d</a>`, i, i)
		}
		fmt.Fprintf(w, `<html><body><h1>Hub</h1>%s</body></html>`, links.String())
	})

	cfg := fastConfig()
	cfg.MaxPages = 3

	c := New(server.Client(), nil)
	data, err := c.Crawl(context.Background(), server.URL, cfg, nil)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if len(data.Pages) != 3 {
		t.Errorf("Expected page budget enforced at 3, got %d", len(data.Pages))
	}
}

func TestCrawl_DepthLimit(t *testing.T) {
	server, mux := testSite(t)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		depth := strings.Count(r.URL.Path, "d")
		fmt.Fprintf(w, `<html><body><h1>Level %d</h1><a href="%sd/">Deeper</a></body></html>`,
			depth, strings.TrimSuffix(r.URL.Path, "/")+"/")
	})

	cfg := fastConfig()
	cfg.MaxDepth = 1

	c := New(server.Client(), nil)
	data, err := c.Crawl(context.Background(), server.URL, cfg, nil)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if len(data.Pages) != 2 {
		t.Errorf("Expected seed plus one level, got %d pages", len(data.Pages))
	}
}

func TestCrawl_VisitedDedup(t *testing.T) {
	server, mux := testSite(t)
	var aboutHits int32

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Home</h1>
			<a href="/about">A</a>
			<a href="/about/">B</a>
			<a href="/about?utm=x">C</a>
		</body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&aboutHits, 1)
		fmt.Fprint(w, `<html><body><h1>About</h1><a href="/">Home</a></body></html>`)
	})

	c := New(server.Client(), nil)
	data, err := c.Crawl(context.Background(), server.URL, fastConfig(), nil)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if len(data.Pages) != 2 {
		t.Errorf("Expected 2 distinct pages, got %d", len(data.Pages))
	}
	if hits := atomic.LoadInt32(&aboutHits); hits != 1 {
		t.Errorf("Expected /about fetched once, got %d", hits)
	}
}

func TestCrawl_BadSeed(t *testing.T) {
	c := New(nil, nil)
	for _, seed := range []string{"", "   ", "https://"} {
		if _, err := c.Crawl(context.Background(), seed, fastConfig(), nil); err == nil {
			t.Errorf("Expected error for seed %q", seed)
		}
	}
}

func TestCrawl_KeepHTML(t *testing.T) {
	server, mux := testSite(t)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Home</h1></body></html>`)
	})

	c := New(server.Client(), nil)

	cfg := fastConfig()
	data, _ := c.Crawl(context.Background(), server.URL, cfg, nil)
	if data.Pages[0].RawHTML != "" {
		t.Error("Expected raw HTML dropped by default")
	}

	cfg.KeepHTML = true
	data, _ = c.Crawl(context.Background(), server.URL, cfg, nil)
	if !strings.Contains(data.Pages[0].RawHTML, "<h1>Home</h1>") {
		t.Error("Expected raw HTML retained with KeepHTML")
	}
}

func TestCrawl_ProgressPhases(t *testing.T) {
	server, mux := testSite(t)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Home</h1><a href="/about">About</a></body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>About</h1></body></html>`)
	})

	var phases []models.CrawlPhase
	var last models.CrawlProgress
	onProgress := func(p models.CrawlProgress) {
		if len(phases) == 0 || phases[len(phases)-1] != p.Phase {
			phases = append(phases, p.Phase)
		}
		last = p
	}

	c := New(server.Client(), nil)
	if _, err := c.Crawl(context.Background(), server.URL, fastConfig(), onProgress); err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	expected := []models.CrawlPhase{
		models.PhaseInitializing,
		models.PhaseDiscovering,
		models.PhaseCrawling,
		models.PhaseAggregating,
		models.PhaseComplete,
	}
	if len(phases) != len(expected) {
		t.Fatalf("Expected phases %v, got %v", expected, phases)
	}
	for i := range expected {
		if phases[i] != expected[i] {
			t.Errorf("Phase %d: expected %s, got %s", i, expected[i], phases[i])
		}
	}

	if last.PagesCrawled != 2 {
		t.Errorf("Expected final snapshot with 2 pages crawled, got %d", last.PagesCrawled)
	}
}

func TestCrawl_ProgressSnapshotIsolation(t *testing.T) {
	server, mux := testSite(t)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Home</h1><a href="/gone">Gone</a><a href="/also-gone">Gone2</a></body></html>`)
	})
	mux.HandleFunc("/gone", http.NotFound)
	mux.HandleFunc("/also-gone", http.NotFound)

	var captured []models.CrawlProgress
	onProgress := func(p models.CrawlProgress) {
		captured = append(captured, p)
	}

	c := New(server.Client(), nil)
	if _, err := c.Crawl(context.Background(), server.URL, fastConfig(), onProgress); err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}

	// Earlier snapshots must not grow error lists retroactively.
	for i := 0; i < len(captured)-1; i++ {
		if len(captured[i].Errors) > len(captured[i+1].Errors) {
			t.Fatal("Expected monotonically growing error lists across snapshots")
		}
	}
	sawSingle := false
	for _, p := range captured {
		if len(p.Errors) == 1 {
			sawSingle = true
			break
		}
	}
	if !sawSingle {
		t.Error("Expected an intermediate snapshot with one error preserved")
	}
	if final := captured[len(captured)-1]; len(final.Errors) != 2 {
		t.Errorf("Expected both failures in the final snapshot, got %d", len(final.Errors))
	}
}

func TestCrawl_CancelledContext(t *testing.T) {
	server, mux := testSite(t)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Home</h1></body></html>`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(server.Client(), nil)
	data, err := c.Crawl(ctx, server.URL, fastConfig(), nil)
	if err != nil {
		t.Fatalf("Expected no hard error on cancellation, got %v", err)
	}
	if len(data.Pages) != 0 {
		t.Errorf("Expected no pages after immediate cancellation, got %d", len(data.Pages))
	}
	if len(data.Errors) == 0 {
		t.Error("Expected cancellation recorded as a page error")
	}
}

type stubShot struct{ payload string }

func (s stubShot) Capture(ctx context.Context, url string) (string, error) {
	return s.payload, nil
}

func TestCrawl_ScreenshotAttached(t *testing.T) {
	server, mux := testSite(t)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Home</h1></body></html>`)
	})

	c := New(server.Client(), stubShot{payload: "aW1hZ2U="})
	data, err := c.Crawl(context.Background(), server.URL, fastConfig(), nil)
	if err != nil {
		t.Fatalf("Crawl failed: %v", err)
	}
	if data.Screenshot != "aW1hZ2U=" {
		t.Errorf("Expected screenshot payload attached, got '%s'", data.Screenshot)
	}
}
