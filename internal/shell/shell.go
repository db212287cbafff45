// Package shell is the line-mode front end. Enter is the settle event for
// the typed line, so every accepted line is searched at most once.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/schollz/progressbar/v3"

	"bookfind/internal/render"
	"bookfind/internal/search"
)

const prompt = "bookfind> "

type Shell struct {
	ctrl     *search.Controller
	renderer *render.Renderer
	out      io.Writer
	progress io.Writer
	width    int
}

// New builds a shell printing results to out and the loading spinner to progress.
func New(ctrl *search.Controller, renderer *render.Renderer, out, progress io.Writer) *Shell {
	return &Shell{ctrl: ctrl, renderer: renderer, out: out, progress: progress}
}

// SetWidth wraps rendered entries at w columns (0 disables wrapping).
func (s *Shell) SetWidth(w int) { s.width = w }

// Query searches one line and prints the outcome.
func (s *Shell) Query(line string) {
	ticket, ok := s.ctrl.OnInput(line)
	if !ok {
		fmt.Fprintln(s.out, render.Text(s.renderer.Build(s.ctrl.Snapshot().Results), s.width))
		return
	}
	req, ok := s.ctrl.OnSettled(ticket)
	if !ok {
		fmt.Fprintf(s.out, "Type at least %d characters.\n", s.ctrl.Debouncer().MinLength())
		return
	}

	start := time.Now()
	s.ctrl.Apply(s.withSpinner(func() search.Outcome { return s.ctrl.Execute(req) }))
	elapsed := time.Since(start)

	snap := s.ctrl.Snapshot()
	if snap.Error != "" {
		// previous results stay on screen under the error, as in the TUI
		fmt.Fprintln(s.out, render.ErrorStyle.Render(snap.Error))
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, render.Text(s.renderer.Build(snap.Results), s.width))
		return
	}
	fmt.Fprintln(s.out)
	fmt.Fprint(s.out, render.Text(s.renderer.Build(snap.Results), s.width))
	fmt.Fprintf(s.out, "\n%d of %d shown, search took %v\n\n", snap.Results.Len(), snap.Results.Total, elapsed.Round(time.Millisecond))
}

func (s *Shell) withSpinner(fn func() search.Outcome) search.Outcome {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription("Loading..."),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan search.Outcome, 1)
	go func() { done <- fn() }()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case o := <-done:
			_ = bar.Finish()
			return o
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}

// Run reads lines until exit, quit, Ctrl+C or EOF. History lives only for the session.
func (s *Shell) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	defer s.ctrl.Close()

	fmt.Fprintln(s.out, "Find Book interactive shell (exit to quit)")
	for {
		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		line.AppendHistory(input)
		s.Query(input)
	}
}
