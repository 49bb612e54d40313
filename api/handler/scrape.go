package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jacketscrape/models"
	"github.com/use-agent/jacketscrape/scraper"
)

// ScrapePage returns a handler for POST /scrape (form-encoded).
//
// Every outcome renders result.html with status 200: either the product
// and its download link, or the error message inline.
func ScrapePage(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		// A body that fails to bind leaves URL empty, which the
		// validator rejects with the usual message.
		_ = c.ShouldBind(&req)

		result, err := sc.Scrape(c.Request.Context(), req.URL)
		if err != nil {
			renderError(c, models.AsScrapeError(err).Message)
			return
		}

		c.HTML(http.StatusOK, "result.html", gin.H{
			"Product": result.Product,
			"CSVURL":  DownloadURL(result.CSVPath),
		})
	}
}

// Scrape returns a handler for POST /api/v1/scrape.
//
// Orchestration flow:
//  1. Parse JSON body.
//  2. Scraper.Scrape → product + CSV path.
//  3. Return 200 with the product and download URL, or a mapped error status.
func Scrape(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewScrapeError(models.ErrCodeInvalidInput, scraper.ValidationMessage, err))
			return
		}

		result, err := sc.Scrape(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ScrapeResponse{
			Success:     true,
			Product:     result.Product,
			CSVPath:     result.CSVPath,
			DownloadURL: DownloadURL(result.CSVPath),
		})
	}
}

// DownloadURL is the relative link that serves the CSV at path.
func DownloadURL(path string) string {
	return "/download?file=" + url.QueryEscape(path)
}

// respondError writes err as a JSON error body with its mapped status.
func respondError(c *gin.Context, err error) {
	scrapeErr := models.AsScrapeError(err)

	c.JSON(scrapeErr.HTTPStatus(), models.ScrapeResponse{
		Success: false,
		Error:   scrapeErr.ToDetail(),
	})
}

// RenderRejection shows a refused form submission on the result page, the
// same way a failed scrape is shown.
func RenderRejection(c *gin.Context, err *models.ScrapeError) {
	renderError(c, err.Message)
	c.Abort()
}

func renderError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "result.html", gin.H{"Error": msg})
}
