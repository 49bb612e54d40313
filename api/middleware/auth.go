package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jacketscrape/models"
)

// apiKeyContextKey stores the accepted key so the limiter can budget per key.
const apiKeyContextKey = "api_key"

// Auth guards the JSON API with a fixed set of keys, read from either
// "X-API-Key: <key>" or "Authorization: Bearer <key>". Blank keys are
// ignored; with none left the API is open.
func Auth(apiKeys []string, reject Rejector) gin.HandlerFunc {
	accepted := make(map[string]bool, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			accepted[k] = true
		}
	}
	if len(accepted) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		switch key := presentedKey(c); {
		case key == "":
			reject(c, models.NewScrapeError(models.ErrCodeUnauthorized,
				"missing API key: provide X-API-Key header or Authorization: Bearer <key>", nil))
		case !accepted[key]:
			reject(c, models.NewScrapeError(models.ErrCodeUnauthorized, "invalid API key", nil))
		default:
			c.Set(apiKeyContextKey, key)
			c.Next()
		}
	}
}

func presentedKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	key, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return key
}
