package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func constant(v string) lookup {
	return func(*goquery.Document) string { return v }
}

func TestFirstOf(t *testing.T) {
	doc := parse("")

	tests := []struct {
		name string
		l    lookup
		want string
	}{
		{"first wins", firstOf(constant("a"), constant("b")), "a"},
		{"skips empty", firstOf(constant(""), constant("b")), "b"},
		{"all empty", firstOf(constant(""), constant("")), ""},
		{"no lookups", firstOf(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l(doc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstOf_StopsAtFirstHit(t *testing.T) {
	calls := 0
	counting := func(*goquery.Document) string {
		calls++
		return "late"
	}

	got := firstOf(constant("early"), counting)(parse(""))
	if got != "early" {
		t.Errorf("got %q, want early", got)
	}
	if calls != 0 {
		t.Errorf("later lookup ran %d times, want 0", calls)
	}
}

func TestJoined(t *testing.T) {
	doc := parse("")

	if got := joined(" ", constant("10"), constant("EUR"))(doc); got != "10 EUR" {
		t.Errorf("got %q, want %q", got, "10 EUR")
	}
	if got := joined(" ", constant("10"), constant(""))(doc); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestOrDefault(t *testing.T) {
	doc := parse("")

	if got := orDefault(constant(""), "N/A")(doc); got != "N/A" {
		t.Errorf("got %q, want N/A", got)
	}
	if got := orDefault(constant("x"), "N/A")(doc); got != "x" {
		t.Errorf("got %q, want x", got)
	}
}

func TestMetaContent_FirstMatchOnly(t *testing.T) {
	doc := parse(`<meta property="og:image" content="one"><meta property="og:image" content="two">`)

	if got := metaContent(selImage)(doc); got != "one" {
		t.Errorf("got %q, want one", got)
	}
}

func TestPresentOr(t *testing.T) {
	doc := parse("")
	upper := strings.ToUpper
	blank := func(string) string { return "" }

	tests := []struct {
		name string
		l    lookup
		want string
	}{
		{"missing uses fallback", presentOr(constant(""), "N/A", upper), "N/A"},
		{"present is transformed", presentOr(constant("x"), "N/A", upper), "X"},
		{"empty transform kept", presentOr(constant("x"), "N/A", blank), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l(doc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstSegment(t *testing.T) {
	tests := map[string]string{
		"Blue | Famous": "Blue",
		"| Famous":      "",
		"No separator":  "No separator",
		" A | B | C ":   "A",
	}
	for in, want := range tests {
		if got := firstSegment(in); got != want {
			t.Errorf("firstSegment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitleText_MultipleTitleElements(t *testing.T) {
	// goquery concatenates the text of every match.
	doc := parse(`<title>Part A</title><svg><title>icon</title></svg>`)

	got := titleText(doc)
	if !strings.HasPrefix(got, "Part A") {
		t.Errorf("got %q, want prefix %q", got, "Part A")
	}
}
