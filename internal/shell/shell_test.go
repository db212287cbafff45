package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"bookfind/internal/debounce"
	"bookfind/internal/render"
	"bookfind/internal/search"
)

type stubSearcher struct {
	calls []string
	rs    search.ResultSet
	err   error
	delay time.Duration
}

func (s *stubSearcher) Search(_ context.Context, q string) (search.ResultSet, error) {
	s.calls = append(s.calls, q)
	time.Sleep(s.delay)
	return s.rs, s.err
}

func newShell(s *stubSearcher) (*Shell, *bytes.Buffer) {
	var out bytes.Buffer
	ctrl := search.NewController(s, debounce.New(300*time.Millisecond, 2))
	return New(ctrl, render.New(100), &out, io.Discard), &out
}

func TestQueryPrintsResults(t *testing.T) {
	s := &stubSearcher{
		rs: search.ResultSet{Total: 7, Books: []search.BookRecord{
			{ID: "1", Title: "Dune", Authors: []string{"Frank Herbert"}},
			{ID: "2", Title: "Dune Messiah"},
		}},
		delay: 250 * time.Millisecond,
	}
	sh, out := newShell(s)

	sh.Query("  Dune ")

	if len(s.calls) != 1 || s.calls[0] != "Dune" {
		t.Fatalf("search calls = %v", s.calls)
	}
	got := out.String()
	for _, want := range []string{"Dune Messiah", "Frank Herbert", "2 of 7 shown"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestQueryTooShort(t *testing.T) {
	s := &stubSearcher{}
	sh, out := newShell(s)

	sh.Query("a")

	if len(s.calls) != 0 {
		t.Fatalf("unexpected search: %v", s.calls)
	}
	if !strings.Contains(out.String(), "at least 2 characters") {
		t.Errorf("missing hint: %q", out.String())
	}
}

func TestQueryEmptyResults(t *testing.T) {
	sh, out := newShell(&stubSearcher{})
	sh.Query("zzqx")
	if !strings.Contains(out.String(), render.NoResults) {
		t.Errorf("missing placeholder: %q", out.String())
	}
}

func TestQueryFailure(t *testing.T) {
	s := &stubSearcher{err: &search.FetchError{Op: "get", Err: errors.New("dial tcp: refused")}}
	sh, out := newShell(s)

	sh.Query("Dune")

	got := out.String()
	if !strings.Contains(got, search.FetchFailedMessage) {
		t.Errorf("missing generic error: %q", got)
	}
	if strings.Contains(got, "refused") {
		t.Errorf("error detail leaked: %q", got)
	}
}

func TestQueryFailureKeepsPreviousResults(t *testing.T) {
	s := &stubSearcher{rs: search.ResultSet{Total: 1, Books: []search.BookRecord{
		{ID: "1", Title: "Dune Messiah", Authors: []string{"Frank Herbert"}},
	}}}
	sh, out := newShell(s)

	sh.Query("Dune")
	out.Reset()

	s.rs = search.ResultSet{}
	s.err = &search.FetchError{Op: "get", Status: 503, Err: errors.New("unavailable")}
	sh.Query("Dune Messiah")

	got := out.String()
	if !strings.Contains(got, search.FetchFailedMessage) {
		t.Errorf("missing generic error: %q", got)
	}
	if !strings.Contains(got, "Dune Messiah") || !strings.Contains(got, "Frank Herbert") {
		t.Errorf("previous results not shown under the error: %q", got)
	}
	if strings.Index(got, search.FetchFailedMessage) > strings.Index(got, "Frank Herbert") {
		t.Errorf("error line must come before the results: %q", got)
	}
}
