package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/jacketscrape/models"
	"github.com/use-agent/jacketscrape/scraper"
)

func handleScrapeProduct(sc *scraper.Scraper) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// A missing argument falls through to the validator's message.
		url := request.GetString("url", "")

		result, err := sc.Scrape(ctx, url)
		if err != nil {
			se := models.AsScrapeError(err)
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", se.Code, se.Message)), nil
		}

		return mcp.NewToolResultText(formatResult(result)), nil
	}
}

// formatResult renders a scrape result as labelled lines.
func formatResult(r *models.ScrapeResult) string {
	p := r.Product
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", p.Title)
	fmt.Fprintf(&sb, "Price: %s\n", p.Price)
	fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	fmt.Fprintf(&sb, "Image: %s\n", p.ImageURL)
	fmt.Fprintf(&sb, "Product URL: %s\n", p.ProductURL)
	fmt.Fprintf(&sb, "CSV: %s", r.CSVPath)
	return sb.String()
}
