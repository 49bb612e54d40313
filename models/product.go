package models

// NotAvailable is stored in any field the page does not expose.
const NotAvailable = "N/A"

// Product is the single record extracted from one product page.
// Field order defines the CSV column order.
type Product struct {
	Title       string `json:"title" csv:"title"`
	Price       string `json:"price" csv:"price"`
	Description string `json:"description" csv:"description"`
	ImageURL    string `json:"image_url" csv:"image_url"`
	ProductURL  string `json:"product_url" csv:"product_url"`
}

// ScrapeResult is what one run of the pipeline produces.
type ScrapeResult struct {
	Product *Product

	// CSVPath is the exported file. It is only set once the file is
	// fully written and closed.
	CSVPath string
}
