package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"bookfind/internal/search"
)

func TestTruncateBoundary(t *testing.T) {
	exact := strings.Repeat("a", 100)
	if got := Truncate(exact, 100); got != exact {
		t.Errorf("100 chars must be unchanged, got %d chars", len(got))
	}

	over := strings.Repeat("b", 101)
	want := strings.Repeat("b", 100) + "..."
	if got := Truncate(over, 100); got != want {
		t.Errorf("101 chars: got %q", got)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	s := strings.Repeat("ж", 101)
	got := Truncate(s, 100)
	if utf8.RuneCountInString(got) != 103 || !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("expected 100 runes + ellipsis, got %d runes", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a multi-byte character")
	}
}

func TestTruncateIdempotentUnderLimit(t *testing.T) {
	for _, s := range []string{"", "short", strings.Repeat("x", 99), strings.Repeat("y", 100)} {
		once := Truncate(s, 100)
		if twice := Truncate(once, 100); twice != once {
			t.Errorf("Truncate not idempotent for %d chars", len(s))
		}
	}
}

func TestBuildEmptyShowsPlaceholder(t *testing.T) {
	v := New(100).Build(search.ResultSet{})
	if v.Placeholder != NoResults {
		t.Errorf("placeholder = %q", v.Placeholder)
	}
	if len(v.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(v.Entries))
	}
	if out := Text(v, 0); !strings.Contains(out, NoResults) {
		t.Errorf("text output missing placeholder: %q", out)
	}
}

func TestBuildKeepsOrderAndCount(t *testing.T) {
	rs := search.ResultSet{Books: []search.BookRecord{
		{ID: "1", Title: "Dune"},
		{ID: "2", Title: "Dune Messiah"},
		{ID: "3", Title: "Children of Dune"},
	}}
	v := New(100).Build(rs)
	if v.Placeholder != "" {
		t.Errorf("placeholder must be empty when there are results")
	}
	if len(v.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(v.Entries))
	}
	for i, e := range v.Entries {
		if e.ID != rs.Books[i].ID {
			t.Errorf("entry %d = %s, want %s", i, e.ID, rs.Books[i].ID)
		}
	}
}

func TestBuildEntryFields(t *testing.T) {
	long := strings.Repeat("d", 150)
	rs := search.ResultSet{Books: []search.BookRecord{
		{ID: "1", Title: "Good Omens", Authors: []string{"Terry Pratchett", "Neil Gaiman"}, Description: long, Thumbnail: "http://img/1"},
		{ID: "2"},
	}}
	v := New(100).Build(rs)

	first := v.Entries[0]
	if first.Authors != "Terry Pratchett, Neil Gaiman" {
		t.Errorf("authors = %q", first.Authors)
	}
	if first.Description != strings.Repeat("d", 100)+"..." {
		t.Errorf("description not truncated: %d chars", len(first.Description))
	}
	if first.Thumbnail != "http://img/1" {
		t.Errorf("thumbnail = %q", first.Thumbnail)
	}

	second := v.Entries[1]
	if second.Title != "" || second.Authors != "" || second.Description != "" || second.Thumbnail != "" {
		t.Errorf("absent fields should render as nothing: %+v", second)
	}

	out := Text(v, 0)
	if !strings.Contains(out, "cover: http://img/1") {
		t.Errorf("missing cover line: %q", out)
	}
	if strings.Count(out, "cover:") != 1 {
		t.Errorf("cover line rendered for a record without thumbnail: %q", out)
	}
}

func TestBuildCleansDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "A desert planet.", "A desert planet."},
		{"markup", "<p><b>Dune</b> is a <i>classic</i>.</p>", "Dune is a classic."},
		{"entities", "Tom &amp; Jerry &quot;forever&quot;", `Tom & Jerry "forever"`},
		{"line breaks", "First line.<br>Second\n\n line.", "First line.Second line."},
		{"decomposed accent", "Cafe\u0301", "Caf\u00e9"},
	}
	r := New(100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := r.Build(search.ResultSet{Books: []search.BookRecord{{ID: "x", Description: tt.in}}})
			if got := v.Entries[0].Description; got != tt.want {
				t.Errorf("description = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDefaultsLimit(t *testing.T) {
	v := New(0).Build(search.ResultSet{Books: []search.BookRecord{{ID: "x", Description: strings.Repeat("z", 120)}}})
	if got := v.Entries[0].Description; got != strings.Repeat("z", DefaultDescriptionLimit)+Ellipsis {
		t.Errorf("default limit not applied: %d chars", len(got))
	}
}
