// Package scraper runs the product pipeline: validate the submitted URL,
// fetch the page, extract the product and export it to CSV.
package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/jacketscrape/config"
	"github.com/use-agent/jacketscrape/exporter"
	"github.com/use-agent/jacketscrape/extractor"
	"github.com/use-agent/jacketscrape/metrics"
	"github.com/use-agent/jacketscrape/models"
	"github.com/use-agent/jacketscrape/webhook"
)

// unknownError stands in for a failure that carries no text.
const unknownError = "Unknown error"

// Scraper runs one request's pipeline end to end. It holds no per-request
// state and is safe for concurrent use.
type Scraper struct {
	validator Validator
	fetcher   *Fetcher
	exporter  *exporter.Exporter
	notifier  *webhook.Notifier
}

// New creates a Scraper for the configured site, writing through exp.
func New(cfg *config.Config, exp *exporter.Exporter) *Scraper {
	return &Scraper{
		validator: NewValidator(cfg.Site.Domain),
		fetcher:   NewFetcher(cfg.Fetch),
		exporter:  exp,
		notifier:  webhook.New(cfg.Webhook.URL, cfg.Webhook.Secret),
	}
}

// Scrape validates rawURL, fetches it, extracts the product and writes the
// CSV. Errors are *models.ScrapeError with codes INVALID_INPUT,
// FETCH_FAILED or EXPORT_FAILED; no CSV is written unless the fetch
// succeeded.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*models.ScrapeResult, error) {
	if err := s.validator.Validate(rawURL); err != nil {
		metrics.ScrapesTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
		return nil, err
	}

	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, rawURL)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ScrapesTotal.WithLabelValues(metrics.ResultFetchFailed).Inc()
		slog.Error("product fetch failed", "url", rawURL, "error", err)
		return nil, models.NewScrapeError(models.ErrCodeFetch, failureMessage(err), err)
	}

	product := extractor.Extract(body, rawURL)

	path, err := s.exporter.Export(product)
	if err != nil {
		metrics.ScrapesTotal.WithLabelValues(metrics.ResultExportFailed).Inc()
		slog.Error("csv export failed", "url", rawURL, "dir", s.exporter.Dir(), "error", err)
		return nil, models.NewScrapeError(models.ErrCodeExport, failureMessage(err), err)
	}

	metrics.ScrapesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	slog.Info("product scraped", "url", rawURL, "title", product.Title, "csv", path)
	s.notifier.ProductExported(product, path)

	return &models.ScrapeResult{Product: product, CSVPath: path}, nil
}

// failureMessage is the user-facing text for a fetch or export failure.
func failureMessage(err error) string {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = unknownError
	}
	return "Scraping failed: " + msg
}
