package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// lookup reads one value from a parsed page. An empty string means
// "not found" and lets the next lookup in a chain run.
type lookup func(doc *goquery.Document) string

// firstOf returns a lookup that tries each of ls in order and yields the
// first non-empty result.
func firstOf(ls ...lookup) lookup {
	return func(doc *goquery.Document) string {
		for _, l := range ls {
			if v := l(doc); v != "" {
				return v
			}
		}
		return ""
	}
}

// orDefault evaluates l and substitutes fallback for an empty result.
func orDefault(l lookup, fallback string) lookup {
	return func(doc *goquery.Document) string {
		if v := l(doc); v != "" {
			return v
		}
		return fallback
	}
}

// metaContent reads the content attribute of the first element matching sel.
func metaContent(sel cascadia.Selector) lookup {
	return func(doc *goquery.Document) string {
		v, _ := doc.FindMatcher(sel).First().Attr("content")
		return v
	}
}

// titleText reads the trimmed text of the <title> element.
func titleText(doc *goquery.Document) string {
	return strings.TrimSpace(doc.FindMatcher(selTitle).Text())
}

// firstSegment keeps what precedes the first "|", trimmed. The result may
// be empty when the title starts with the separator.
func firstSegment(s string) string {
	head, _, _ := strings.Cut(s, "|")
	return strings.TrimSpace(head)
}

// presentOr applies fn to the result of l, or yields fallback when l finds
// nothing. Whatever fn returns is kept, empty included.
func presentOr(l lookup, fallback string, fn func(string) string) lookup {
	return func(doc *goquery.Document) string {
		v := l(doc)
		if v == "" {
			return fallback
		}
		return fn(v)
	}
}

// joined reads every lookup and joins the results with sep, but only when
// all of them are present.
func joined(sep string, ls ...lookup) lookup {
	return func(doc *goquery.Document) string {
		parts := make([]string, 0, len(ls))
		for _, l := range ls {
			v := l(doc)
			if v == "" {
				return ""
			}
			parts = append(parts, v)
		}
		return strings.Join(parts, sep)
	}
}
