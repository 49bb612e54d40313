package scraper

import (
	"strings"

	"github.com/use-agent/jacketscrape/models"
)

// ValidationMessage is shown for every rejected URL.
const ValidationMessage = "Please enter a valid Famous Jackets product URL."

// Validator accepts URLs that mention the storefront's domain.
//
// The check is a substring match, not a URL parse: any string containing
// the domain passes, including malformed URLs and foreign hosts carrying
// the domain in a query parameter.
type Validator struct {
	domain string
}

// NewValidator creates a Validator requiring domain.
func NewValidator(domain string) Validator {
	return Validator{domain: domain}
}

// Validate returns an INVALID_INPUT ScrapeError when rawURL is rejected.
func (v Validator) Validate(rawURL string) error {
	if rawURL == "" || !strings.Contains(rawURL, v.domain) {
		return models.NewScrapeError(models.ErrCodeInvalidInput, ValidationMessage, nil)
	}
	return nil
}
