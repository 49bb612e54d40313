// Package exporter writes extracted products to CSV files in transient
// storage and answers which files on disk it produced.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/use-agent/jacketscrape/models"
)

// filePrefix and fileExt frame the timestamp in every exported filename.
const (
	filePrefix = "product_"
	fileExt    = ".csv"

	// tempPattern never matches fileNameRe, so half-written files are
	// neither served nor swept.
	tempPattern = ".product-*.tmp"
)

var fileNameRe = regexp.MustCompile(`^product_\d+\.csv$`)

// Exporter serialises one Product per file. It is safe for concurrent use.
// Two calls within the same millisecond target the same name; each file is
// written aside and renamed into place, so the later rename wins whole.
type Exporter struct {
	dir string
	now func() time.Time
}

// New creates an Exporter writing into dir.
func New(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Dir returns the directory files are written to.
func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes p as a header row plus one data row and returns the file
// path. The path is returned only after the data is synced and the file
// renamed to its final name.
func (e *Exporter) Export(p *models.Product) (string, error) {
	path := filepath.Join(e.dir, FileName(e.now()))

	f, err := os.CreateTemp(e.dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("exporter: create csv: %w", err)
	}
	tmp := f.Name()

	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("exporter: chmod csv: %w", err)
	}
	if err := writeCSV(f, p); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("exporter: rename csv: %w", err)
	}

	return path, nil
}

// writeCSV fills f and closes it.
func writeCSV(f *os.File, p *models.Product) error {
	if err := gocsv.Marshal([]*models.Product{p}, f); err != nil {
		f.Close()
		return fmt.Errorf("exporter: write csv: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("exporter: sync csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("exporter: close csv: %w", err)
	}
	return nil
}

// FileName is the name of the file exported at t.
func FileName(t time.Time) string {
	return filePrefix + strconv.FormatInt(t.UnixMilli(), 10) + fileExt
}

// Owns reports whether path names a regular file directly inside the export
// directory that carries an exporter filename.
func (e *Exporter) Owns(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	dir, err := filepath.Abs(e.dir)
	if err != nil {
		return false
	}
	if filepath.Dir(abs) != filepath.Clean(dir) || !fileNameRe.MatchString(filepath.Base(abs)) {
		return false
	}
	info, err := os.Lstat(abs)
	return err == nil && info.Mode().IsRegular()
}

// Read loads the products stored in an exported file. A "\r\n" inside a
// quoted field comes back as "\n"; extracted text never carries "\r"
// because the HTML tokenizer already normalises line endings.
func Read(path string) ([]*models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("exporter: open %s: %w", path, err)
	}
	defer f.Close()

	var products []*models.Product
	if err := gocsv.UnmarshalFile(f, &products); err != nil {
		return nil, fmt.Errorf("exporter: parse %s: %w", path, err)
	}
	return products, nil
}
