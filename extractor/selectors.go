package extractor

import "github.com/andybalholm/cascadia"

// Selectors are compiled once; every lookup is an exact attribute match.
var (
	selTitle         = cascadia.MustCompile("title")
	selPriceAmount   = cascadia.MustCompile(`meta[property="og:price:amount"]`)
	selPriceCurrency = cascadia.MustCompile(`meta[property="og:price:currency"]`)
	selImageSecure   = cascadia.MustCompile(`meta[property="og:image:secure_url"]`)
	selImage         = cascadia.MustCompile(`meta[property="og:image"]`)
	selOGDescription = cascadia.MustCompile(`meta[property="og:description"]`)
	selDescription   = cascadia.MustCompile(`meta[name="description"]`)
)
