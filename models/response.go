package models

// ScrapeResponse is the response for POST /api/v1/scrape.
type ScrapeResponse struct {
	// Success indicates whether the scrape completed without errors.
	Success bool `json:"success"`

	// Product is the extracted record.
	Product *Product `json:"product,omitempty"`

	// CSVPath is the local path of the exported CSV file.
	CSVPath string `json:"csv_path,omitempty"`

	// DownloadURL is the relative URL that serves CSVPath.
	DownloadURL string `json:"download_url,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	ExportDir string `json:"export_dir"`
	Version   string `json:"version"`
}
