// Package extractor reads a product record out of a storefront page using
// only the <title> element and Open Graph / description meta tags.
package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/jacketscrape/models"
	"golang.org/x/net/html"
)

// MaxDescriptionRunes is the longest description kept before truncation.
const MaxDescriptionRunes = 500

const ellipsis = "..."

// Field lookup policy. Each field is independent of the others.
var (
	titleLookup = presentOr(titleText, models.NotAvailable, firstSegment)

	priceLookup = orDefault(
		joined(" ", metaContent(selPriceAmount), metaContent(selPriceCurrency)),
		models.NotAvailable,
	)

	imageLookup = orDefault(
		firstOf(metaContent(selImageSecure), metaContent(selImage)),
		models.NotAvailable,
	)

	descriptionLookup = orDefault(
		firstOf(metaContent(selOGDescription), metaContent(selDescription)),
		models.NotAvailable,
	)
)

// Extract builds a Product from raw page HTML. It never fails: malformed or
// partial markup degrades field by field to models.NotAvailable.
func Extract(rawHTML string, productURL string) *models.Product {
	doc := parse(rawHTML)

	return &models.Product{
		Title:       titleLookup(doc),
		Price:       priceLookup(doc),
		Description: Truncate(descriptionLookup(doc), MaxDescriptionRunes),
		ImageURL:    imageLookup(doc),
		ProductURL:  productURL,
	}
}

// parse builds a goquery document. html.Parse only errors on a failing
// reader, so a string source always yields a tree; the empty document is
// kept as a safety net.
func parse(rawHTML string) *goquery.Document {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return goquery.NewDocumentFromNode(root)
}

// Truncate cuts s to limit characters and appends "..." when it was longer.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + ellipsis
}
