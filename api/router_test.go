package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/use-agent/jacketscrape/config"
	"github.com/use-agent/jacketscrape/exporter"
	"github.com/use-agent/jacketscrape/models"
	"github.com/use-agent/jacketscrape/scraper"
)

const productPage = `<html><head>
<title>Blue Jacket | Famous Jackets</title>
<meta property="og:price:amount" content="149.00">
<meta property="og:price:currency" content="USD">
<meta property="og:image:secure_url" content="https://cdn.example.com/blue.jpg">
<meta property="og:description" content="Quilted, waxed &amp; warm">
</head><body></body></html>`

type testEnv struct {
	router    http.Handler
	exportDir string
	target    *httptest.Server
}

func newTestEnv(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(productPage))
	}))
	t.Cleanup(target.Close)

	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Site:   config.SiteConfig{Domain: "famousjackets.com", DownloadName: "famousjackets_product.csv"},
		Fetch: config.FetchConfig{
			Timeout:   2 * time.Second,
			UserAgent: config.DefaultUserAgent,
		},
		Export:    config.ExportConfig{Dir: dir, ConfineDownloads: true},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		Metrics:   config.MetricsConfig{Enabled: true},
	}
	if mutate != nil {
		mutate(cfg)
	}

	exp := exporter.New(cfg.Export.Dir)
	sc := scraper.New(cfg, exp)

	return &testEnv{
		router:    NewRouter(sc, exp, cfg, time.Now()),
		exportDir: dir,
		target:    target,
	}
}

func (e *testEnv) productURL(path string) string {
	return e.target.URL + path + "?site=famousjackets.com"
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(rawURL string) *httptest.ResponseRecorder {
	form := url.Values{"url": {rawURL}}
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) postJSON(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func TestIndex_RendersForm(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `action="/scrape"`) || !strings.Contains(body, `name="url"`) {
		t.Errorf("form missing from index page:\n%s", body)
	}
}

func TestScrapePage_Success(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.postForm(env.productURL("/products/blue"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Blue Jacket", "149.00 USD", "https://cdn.example.com/blue.jpg", "/download?file="} {
		if !strings.Contains(body, want) {
			t.Errorf("result page missing %q", want)
		}
	}

	entries, _ := os.ReadDir(env.exportDir)
	if len(entries) != 1 {
		t.Errorf("%d files exported, want 1", len(entries))
	}
}

func TestScrapePage_ValidationErrorRendersInline(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, u := range []string{"", "https://example.com/products/blue"} {
		w := env.postForm(u)
		if w.Code != http.StatusOK {
			t.Errorf("url %q: status = %d, want 200", u, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Please enter a valid Famous Jackets product URL.") {
			t.Errorf("url %q: validation message missing", u)
		}
	}
}

func TestScrapePage_MissingFormField(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/scrape", nil)
	w := env.do(req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please enter a valid Famous Jackets product URL.") {
		t.Error("validation message missing")
	}
}

func TestScrapePage_FetchErrorRendersInline(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.postForm(env.productURL("/missing"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Scraping failed: ") {
		t.Errorf("fetch error missing from page:\n%s", w.Body.String())
	}
	entries, _ := os.ReadDir(env.exportDir)
	if len(entries) != 0 {
		t.Errorf("%d files exported after fetch error, want 0", len(entries))
	}
}

func TestAPIScrape_SuccessThenDownload(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.postJSON(`{"url":"` + env.productURL("/products/blue") + `"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp models.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Product == nil {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Product.Description != "Quilted, waxed & warm" {
		t.Errorf("description = %q", resp.Product.Description)
	}
	if resp.DownloadURL != "/download?file="+url.QueryEscape(resp.CSVPath) {
		t.Errorf("download url = %q", resp.DownloadURL)
	}

	dl := env.do(httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil))
	if dl.Code != http.StatusOK {
		t.Fatalf("download status = %d, want 200", dl.Code)
	}
	if cd := dl.Header().Get("Content-Disposition"); !strings.Contains(cd, "famousjackets_product.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(dl.Body.String(), "title,price,description,image_url,product_url\n") {
		t.Errorf("download body = %q", dl.Body.String())
	}
	if !strings.Contains(dl.Body.String(), `"Quilted, waxed & warm"`) {
		t.Errorf("description with comma should be quoted: %q", dl.Body.String())
	}
}

func TestAPIScrape_ErrorStatuses(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"bad json", `{`, http.StatusBadRequest, models.ErrCodeInvalidInput},
		{"foreign url", `{"url":"https://example.com/x"}`, http.StatusBadRequest, models.ErrCodeInvalidInput},
		{"fetch failure", `{"url":"` + env.productURL("/missing") + `"}`, http.StatusBadGateway, models.ErrCodeFetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.postJSON(tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			var resp models.ScrapeResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Success || resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("response = %+v, want error %s", resp, tt.wantErr)
			}
		})
	}
}

func TestAPIScrape_RequiresKeyWhenConfigured(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.Auth.APIKeys = []string{"secret"}
	})

	w := env.postJSON(`{"url":"` + env.productURL("/products/blue") + `"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without key = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape",
		strings.NewReader(`{"url":"`+env.productURL("/products/blue")+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret")
	if w := env.do(req); w.Code != http.StatusOK {
		t.Errorf("status with key = %d, want 200", w.Code)
	}

	// The form flow stays open.
	if w := env.postForm(env.productURL("/products/blue")); w.Code != http.StatusOK {
		t.Errorf("form status = %d, want 200", w.Code)
	}
}

func TestDownload_NotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	paths := []string{
		"",
		filepath.Join(env.exportDir, "product_1.csv"),
		"/definitely/not/here.csv",
	}
	for _, p := range paths {
		w := env.do(httptest.NewRequest(http.MethodGet, "/download?file="+url.QueryEscape(p), nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("file %q: status = %d, want 404", p, w.Code)
		}
		if w.Body.String() != "File not found" {
			t.Errorf("file %q: body = %q, want %q", p, w.Body.String(), "File not found")
		}
	}
}

func TestDownload_ConfinedRefusesForeignFile(t *testing.T) {
	env := newTestEnv(t, nil)

	foreign := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(foreign, []byte("top secret"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := env.do(httptest.NewRequest(http.MethodGet, "/download?file="+url.QueryEscape(foreign), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if strings.Contains(w.Body.String(), "top secret") {
		t.Error("foreign file content leaked")
	}
}

func TestDownload_UnconfinedServesAnyFile(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.Export.ConfineDownloads = false
	})

	other := filepath.Join(t.TempDir(), "other.csv")
	if err := os.WriteFile(other, []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := env.do(httptest.NewRequest(http.MethodGet, "/download?file="+url.QueryEscape(other), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "a,b\n" {
		t.Errorf("body = %q", w.Body.String())
	}

	dir := env.do(httptest.NewRequest(http.MethodGet, "/download?file="+url.QueryEscape(env.exportDir), nil))
	if dir.Code != http.StatusNotFound {
		t.Errorf("directory: status = %d, want 404", dir.Code)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.ExportDir != env.exportDir {
		t.Errorf("export dir = %q, want %q", resp.ExportDir, env.exportDir)
	}
}

func TestHealth_DegradedWithoutExportDir(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.Export.Dir = filepath.Join(c.Export.Dir, "gone")
	})

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want degraded", resp.Status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	env.postForm("")

	w := env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "jacketscrape_scrapes_total") {
		t.Error("scrape counter missing from /metrics")
	}
}

func TestScrapePage_RateLimitedRendersInline(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}
	})
	target := env.productURL("/products/blue")

	if w := env.postForm(target); !strings.Contains(w.Body.String(), "Blue Jacket") {
		t.Fatalf("first submit: body = %q", w.Body.String())
	}

	w := env.postForm(target)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "Too many requests, please wait a moment and try again.") {
		t.Errorf("body missing rate limit message: %q", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "RATE_LIMITED") {
		t.Errorf("form page leaked the API error body: %q", w.Body.String())
	}
}

func TestAPIScrape_RateLimitedIsJSON(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}
	})

	// The form submit spends the shared budget.
	env.postForm(env.productURL("/products/blue"))

	w := env.postJSON(`{"url":"` + env.productURL("/products/blue") + `"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	var resp models.ScrapeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeRateLimited {
		t.Errorf("response = %+v", resp)
	}
}
