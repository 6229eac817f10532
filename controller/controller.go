package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/use-agent/folio/extractor"
	"github.com/use-agent/folio/models"
)

// ErrSuperseded is returned by Wait when a newer submission replaced the
// one being waited on.
var ErrSuperseded = errors.New("submission superseded by a newer one")

// EventKind classifies controller events delivered to observers.
type EventKind int

const (
	EventSubmitted EventKind = iota
	EventSucceeded
	EventFailed
	// EventSuperseded reports a response that arrived for a stale token
	// and was dropped.
	EventSuperseded
)

func (k EventKind) String() string {
	switch k {
	case EventSubmitted:
		return "submitted"
	case EventSucceeded:
		return "succeeded"
	case EventFailed:
		return "failed"
	case EventSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Event describes one controller transition, or one dropped response.
type Event struct {
	Kind EventKind

	// State is the controller state after the event.
	State State

	// Token is the submission the event belongs to. For EventSuperseded
	// it is the stale token, not State.Token.
	Token uint64

	// Elapsed is the extraction time; zero for EventSubmitted.
	Elapsed time.Duration
}

// Observer receives controller events. Observers run synchronously on the
// goroutine that produced the event and must not call back into the
// controller.
type Observer func(Event)

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout bounds each extraction request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// Controller owns one State and drives it through submissions.
// It is safe for concurrent use; all mutation goes through the State
// transition methods under mu.
type Controller struct {
	extractor extractor.Extractor
	timeout   time.Duration
	observers []Observer

	mu      sync.Mutex
	state   State
	changed chan struct{}
}

// New creates an idle Controller that extracts profiles with ex.
func New(ex extractor.Extractor, opts ...Option) *Controller {
	c := &Controller{
		extractor: ex,
		changed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Edit updates the live input text.
func (c *Controller) Edit(input string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Edit(input)
	return c.state
}

// Submit starts extracting url and returns immediately. ok is false for a
// blank url, which leaves the state untouched. Any outstanding request is
// not aborted; its response is dropped when it arrives.
func (c *Controller) Submit(url string) (State, bool) {
	c.mu.Lock()
	next, ok := c.state.Submit(url)
	if !ok {
		c.mu.Unlock()
		slog.Debug("blank submission ignored")
		return next, false
	}
	c.setLocked(next)
	c.mu.Unlock()

	slog.Info("portfolio submitted", "url", url, "token", next.Token)
	c.notify(Event{Kind: EventSubmitted, State: next, Token: next.Token})

	go c.run(next.Token, url)
	return next, true
}

// Wait blocks until the submission identified by token completes and
// returns the resulting state. It returns ErrSuperseded if a newer
// submission replaced it first, or ctx.Err() if ctx ends.
func (c *Controller) Wait(ctx context.Context, token uint64) (State, error) {
	for {
		c.mu.Lock()
		s := c.state
		changed := c.changed
		c.mu.Unlock()

		if s.Token != token {
			return s, ErrSuperseded
		}
		if s.Phase != InFlight {
			return s, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return s, ctx.Err()
		}
	}
}

func (c *Controller) run(token uint64, url string) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	profile, err := c.extractor.Extract(ctx, url)
	elapsed := time.Since(start)

	c.complete(token, profile, err, elapsed)
}

func (c *Controller) complete(token uint64, profile *models.Profile, err error, elapsed time.Duration) {
	c.mu.Lock()
	var (
		next State
		ok   bool
	)
	if err != nil {
		next, ok = c.state.Reject(token, extractor.Classify(err))
	} else {
		next, ok = c.state.Resolve(token, profile)
	}
	if !ok {
		current := c.state
		c.mu.Unlock()
		slog.Info("dropping response for superseded submission",
			"token", token,
			"current_token", current.Token,
		)
		c.notify(Event{Kind: EventSuperseded, State: current, Token: token, Elapsed: elapsed})
		return
	}
	c.setLocked(next)
	c.mu.Unlock()

	if next.Phase == Failed {
		slog.Warn("portfolio extraction failed",
			"url", next.URL,
			"token", token,
			"code", next.Err.Code,
			"error", next.Err,
		)
		c.notify(Event{Kind: EventFailed, State: next, Token: token, Elapsed: elapsed})
		return
	}
	slog.Info("portfolio parsed",
		"url", next.URL,
		"token", token,
		"name", next.Profile.BasicInfo.Name,
		"duration_ms", elapsed.Milliseconds(),
	)
	c.notify(Event{Kind: EventSucceeded, State: next, Token: token, Elapsed: elapsed})
}

// setLocked installs s and wakes waiters. c.mu must be held.
func (c *Controller) setLocked(s State) {
	c.state = s
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller) notify(ev Event) {
	for _, o := range c.observers {
		o(ev)
	}
}
