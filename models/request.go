package models

// ScrapeRequest is the payload for POST /scrape (form) and
// POST /api/v1/scrape (JSON).
//
// URL carries no binding rule on purpose: an empty or foreign URL is
// rejected by the scraper's own validator so that every surface reports
// the same message.
type ScrapeRequest struct {
	URL string `form:"url" json:"url"`
}
