// Package render turns result sets into display entries.
package render

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"

	"bookfind/internal/search"
)

const (
	DefaultDescriptionLimit = 100
	Ellipsis                = "..."
	NoResults               = "No books found"
)

// Entry is one rendered book.
type Entry struct {
	ID          string
	Title       string
	Authors     string
	Description string
	Thumbnail   string
}

// View is either the placeholder or a list of entries, never both.
type View struct {
	Placeholder string
	Entries     []Entry
}

type Renderer struct {
	limit  int
	policy *bluemonday.Policy
}

func New(limit int) *Renderer {
	if limit < 1 {
		limit = DefaultDescriptionLimit
	}
	return &Renderer{limit: limit, policy: bluemonday.StrictPolicy()}
}

// Truncate cuts s to max characters (runes) and appends "..." when it had to cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + Ellipsis
}

// Build maps rs to a view, one entry per record in order.
func (r *Renderer) Build(rs search.ResultSet) View {
	if rs.Empty() {
		return View{Placeholder: NoResults}
	}
	entries := make([]Entry, 0, rs.Len())
	for _, b := range rs.Books {
		entries = append(entries, Entry{
			ID:          b.ID,
			Title:       b.Title,
			Authors:     b.FullAuthors(),
			Description: Truncate(r.clean(b.Description), r.limit),
			Thumbnail:   b.Thumbnail,
		})
	}
	return View{Entries: entries}
}

// clean strips markup from catalog descriptions and folds whitespace.
func (r *Renderer) clean(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(r.policy.Sanitize(s))
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
