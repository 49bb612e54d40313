package exporter

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Janitor removes exported files older than a retention age.
type Janitor struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	done      chan struct{}
}

// NewJanitor creates a Janitor for the exporter's directory. Call Start to
// run it in the background.
func NewJanitor(e *Exporter, retention, interval time.Duration) *Janitor {
	return &Janitor{
		dir:       e.dir,
		retention: retention,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (j *Janitor) Start() {
	go j.loop()
}

// Stop terminates the sweep loop.
func (j *Janitor) Stop() {
	close(j.done)
}

func (j *Janitor) loop() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.Sweep(time.Now())
		}
	}
}

// Sweep deletes exporter files whose modification time is before
// now - retention and returns how many were removed. Files not named by
// the exporter are never touched.
func (j *Janitor) Sweep(now time.Time) int {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		slog.Warn("export sweep: read dir failed", "dir", j.dir, "error", err)
		return 0
	}

	cutoff := now.Add(-j.retention)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !fileNameRe.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("export sweep: remove failed", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		slog.Info("export sweep complete", "dir", j.dir, "removed", removed)
	}
	return removed
}
