package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/jacketscrape/config"
	"github.com/use-agent/jacketscrape/exporter"
	"github.com/use-agent/jacketscrape/scraper"
)

func main() {
	cfg := config.Load()

	// stdout carries the MCP protocol; logs go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	sc := scraper.New(cfg, exporter.New(cfg.Export.Dir))

	s := server.NewMCPServer(
		"jacketscrape",
		"0.1.0",
		server.WithToolCapabilities(false),
	)
	s.AddTool(scrapeProductTool(), handleScrapeProduct(sc))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func scrapeProductTool() mcp.Tool {
	return mcp.NewTool("scrape_product",
		mcp.WithDescription("Scrape a Famous Jackets product page. Returns title, price, description, image URL and product URL, and writes them to a CSV file whose path is included in the result."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The famousjackets.com product page URL"),
		),
	)
}
