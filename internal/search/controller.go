package search

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"bookfind/internal/debounce"
	"bookfind/internal/logger"
	"bookfind/internal/metrics"
)

// Searcher resolves a committed query against the catalog.
type Searcher interface {
	Search(ctx context.Context, query string) (ResultSet, error)
}

// Request is one issued search. Only the request with the latest Seq may
// change the controller state when it completes.
type Request struct {
	Seq   uint64
	ID    string
	Query string
	ctx   context.Context
}

// Outcome is a completed Request delivered back to the event loop.
type Outcome struct {
	Seq     uint64
	ID      string
	Query   string
	Results ResultSet
	Err     error
}

// Snapshot is what renderers poll after every event.
type Snapshot struct {
	Query   string
	State   RequestState
	Results ResultSet // last successful result set, cleared on blank input
	Loading bool
	Error   string
}

// Controller owns the query, the request state and the displayed results.
// All On* methods must be called from a single event loop; Execute is the
// only method safe to run elsewhere.
type Controller struct {
	searcher  Searcher
	debouncer *debounce.Debouncer

	query  string
	state  RequestState
	shown  ResultSet
	seq    uint64
	cancel context.CancelFunc
}

func NewController(s Searcher, d *debounce.Debouncer) *Controller {
	return &Controller{searcher: s, debouncer: d, state: Idle()}
}

// Debouncer exposes the quiet period to the loop that schedules ticks.
func (c *Controller) Debouncer() *debounce.Debouncer { return c.debouncer }

// OnInput records raw input. Blank input clears the displayed results and
// abandons any in-flight request; otherwise the returned ticket must be
// delivered to OnSettled once the quiet period has elapsed.
func (c *Controller) OnInput(text string) (debounce.Ticket, bool) {
	c.query = text
	if strings.TrimSpace(text) == "" {
		c.debouncer.Reset()
		c.abandon()
		c.shown = ResultSet{}
		c.state = Idle()
		return 0, false
	}
	return c.debouncer.Push(text), true
}

// OnSettled fires a debounce ticket and starts a search if the value commits.
func (c *Controller) OnSettled(t debounce.Ticket) (Request, bool) {
	text, ok := c.debouncer.Fire(t)
	if !ok {
		return Request{}, false
	}
	metrics.DebounceCommits.Inc()
	return c.OnCommittedQuery(text)
}

// OnCommittedQuery starts a search for text unless one for the same text is
// already in flight. A previous in-flight request is cancelled and its
// outcome will be discarded.
func (c *Controller) OnCommittedQuery(text string) (Request, bool) {
	if c.state.Phase == PhaseLoading && c.state.Query == text {
		return Request{}, false
	}
	c.abandon()

	ctx, cancel := context.WithCancel(context.Background())
	ctx, id := logger.NewRequestContext(ctx)
	c.cancel = cancel
	c.seq++
	c.state = Loading(text)

	logger.For(ctx).WithField("seq", c.seq).Debugf("search.start %q", text)
	return Request{Seq: c.seq, ID: id, Query: text, ctx: ctx}, true
}

// Execute runs the search. It only reads immutable fields, so event loops
// may call it from a worker goroutine.
func (c *Controller) Execute(req Request) Outcome {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	defer logger.Track(ctx, "search "+req.Query)()

	rs, err := c.searcher.Search(ctx, req.Query)
	return Outcome{Seq: req.Seq, ID: req.ID, Query: req.Query, Results: rs, Err: err}
}

// Apply routes an outcome to OnSearchResolved or OnSearchFailed.
// It reports whether the outcome changed the state.
func (c *Controller) Apply(o Outcome) bool {
	if o.Err != nil {
		return c.onSearchFailed(o.Seq, o.ID, o.Err)
	}
	return c.OnSearchResolved(o.Seq, o.Results)
}

// OnSearchResolved sets Success and replaces the displayed results.
func (c *Controller) OnSearchResolved(seq uint64, rs ResultSet) bool {
	if !c.current(seq) {
		return false
	}
	c.release()
	c.shown = rs
	c.state = Success(rs)
	return true
}

// OnSearchFailed sets Failed with the generic message. Displayed results are kept.
func (c *Controller) OnSearchFailed(seq uint64, err error) bool {
	return c.onSearchFailed(seq, "", err)
}

func (c *Controller) onSearchFailed(seq uint64, id string, err error) bool {
	if !c.current(seq) {
		return false
	}
	c.release()

	ctx := context.Background()
	if id != "" {
		ctx = logger.ContextWithID(ctx, id)
	}
	entry := logger.For(ctx).WithError(err).WithField("seq", seq)
	if errors.Is(err, ErrFetchFailed) {
		entry.Warn("search.failed")
	} else {
		entry.Error("search.failed (unexpected error kind)")
	}
	c.state = Failed(FetchFailedMessage)
	return true
}

func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Query:   c.query,
		State:   c.state,
		Results: c.shown,
		Loading: c.state.Phase == PhaseLoading,
	}
	if c.state.Phase == PhaseFailed {
		s.Error = c.state.Message
	}
	return s
}

func (c *Controller) Query() string { return c.query }

func (c *Controller) State() RequestState { return c.state }

// Close cancels any in-flight request.
func (c *Controller) Close() { c.abandon() }

func (c *Controller) current(seq uint64) bool {
	if seq != c.seq || c.state.Phase != PhaseLoading {
		metrics.StaleResponses.Inc()
		logger.For(context.Background()).WithFields(logrus.Fields{
			"seq":    seq,
			"latest": c.seq,
		}).Debug("search.stale")
		return false
	}
	return true
}

// abandon cancels the in-flight request and invalidates its outcome.
func (c *Controller) abandon() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		c.seq++
	}
}

func (c *Controller) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
