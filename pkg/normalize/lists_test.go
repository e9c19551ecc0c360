package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "  \n\t ", []string{}},
		{"one per line", "Weddings\nPortraits\nEvents", []string{"Weddings", "Portraits", "Events"}},
		{"comma separated", "Go, Rust,TypeScript", []string{"Go", "Rust", "TypeScript"}},
		{"newline wins over comma", "First, with comma\nSecond", []string{"First, with comma", "Second"}},
		{"single element", "Just one", []string{"Just one"}},
		{"blank lines dropped", "a\n\n\nb\n", []string{"a", "b"}},
		{"trimmed", "  a \n b  ", []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, SplitList(tc.raw)); diff != "" {
				t.Fatalf("SplitList(%q) mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}

func TestSplitListIdempotentUnderReserialization(t *testing.T) {
	inputs := []string{
		"a, b, c",
		"one\ntwo\nthree",
		"mixed, on one line\nplain second",
		"solo",
		"",
	}
	for _, raw := range inputs {
		first := SplitList(raw)
		again := SplitList(JoinList(first))
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("re-parse of %q not idempotent (-first +again):\n%s", raw, diff)
		}
	}
}

func TestColumnsPadsMissingSegments(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"Title | description | https://x.dev", []string{"Title", "description", "https://x.dev"}},
		{"Title | description", []string{"Title", "description", ""}},
		{"Title", []string{"Title", "", ""}},
		{"", []string{"", "", ""}},
		{"a|b|c|d", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, Columns(tc.line, 3)); diff != "" {
			t.Fatalf("Columns(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
	}
}

func TestParseRowsNeverDropsMalformedLines(t *testing.T) {
	raw := "Shop site | storefront rebuild | https://a.dev\nBare title\n| leading empty"
	rows := ParseRows(raw, "title", "description", "link")

	want := []map[string]string{
		{"title": "Shop site", "description": "storefront rebuild", "link": "https://a.dev"},
		{"title": "Bare title", "description": "", "link": ""},
		{"title": "", "description": "leading empty", "link": ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRowsEmptyInput(t *testing.T) {
	if rows := ParseRows("", "a", "b"); len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestTextStripsMarkup(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"  plain  ", "plain"},
		{"<b>bold</b> words", "bold words"},
		{"<script>alert(1)</script>hi", "hi"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Text(tc.raw); got != tc.want {
			t.Fatalf("Text(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestTextListDropsEmptied(t *testing.T) {
	got := TextList([]string{"ok", "<script>x</script>", " spaced "})
	want := []string{"ok", "spaced"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("TextList mismatch (-want +got):\n%s", diff)
	}
}
