package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jacketscrape/exporter"
)

// Download returns a handler for GET /download?file=<path>.
//
// With confine set, only files the exporter wrote are served. Without it
// any readable regular file path is served, as the path comes straight
// from the client.
func Download(exp *exporter.Exporter, name string, confine bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Query("file")

		ok := path != "" && isRegularFile(path)
		if ok && confine {
			ok = exp.Owns(path)
		}
		if !ok {
			slog.Warn("download refused", "file", path, "confined", confine)
			c.String(http.StatusNotFound, "File not found")
			return
		}

		c.FileAttachment(path, name)
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
