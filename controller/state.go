package controller

import (
	"strings"

	"github.com/use-agent/folio/models"
)

// Phase is the submission lifecycle tag.
type Phase int

const (
	Idle Phase = iota
	InFlight
	Success
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case InFlight:
		return "in_flight"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText lets Phase appear by name in JSON and logs.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is the value owned by a single submission lifecycle. It is only
// changed through its transition methods, each of which returns a new
// State and leaves the receiver untouched.
type State struct {
	// Input is the live text of the URL field. It may differ from URL
	// while a request is in flight.
	Input string

	// URL is the value that was submitted for the current lifecycle.
	URL string

	Phase Phase

	// Token identifies the current submission. It grows by one on every
	// accepted submit; completions carrying an older token are stale.
	Token uint64

	// Profile is set only in Success.
	Profile *models.Profile

	// Err is set only in Failed.
	Err *models.SubmitError
}

// ErrorMessage returns the user-facing failure message, or "" outside Failed.
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message
}

// Edit records new input text. It never changes the phase.
func (s State) Edit(input string) State {
	s.Input = input
	return s
}

// Submit starts a new lifecycle for url. A blank url is ignored and ok is
// false; no request must be issued in that case. Otherwise the returned
// state is InFlight with a fresh token and no profile or error, and the
// caller must issue exactly one extraction request tagged with that token.
//
// Submitting while InFlight supersedes the outstanding request.
func (s State) Submit(url string) (next State, ok bool) {
	if strings.TrimSpace(url) == "" {
		return s, false
	}
	return State{
		Input: s.Input,
		URL:   url,
		Phase: InFlight,
		Token: s.Token + 1,
	}, true
}

// Resolve applies a successful response for token. ok is false when the
// response is stale, in which case s is returned unchanged.
func (s State) Resolve(token uint64, p *models.Profile) (next State, ok bool) {
	if !s.awaiting(token) {
		return s, false
	}
	if p == nil {
		return s.Reject(token, models.RequestFailed(0, nil))
	}
	profile := *p
	profile.SourceURL = s.URL
	s.Phase = Success
	s.Profile = &profile
	s.Err = nil
	return s, true
}

// Reject applies a failed response for token. ok is false when the
// response is stale. A nil err is recorded as a request failure.
func (s State) Reject(token uint64, err *models.SubmitError) (next State, ok bool) {
	if !s.awaiting(token) {
		return s, false
	}
	if err == nil {
		err = models.RequestFailed(0, nil)
	}
	s.Phase = Failed
	s.Profile = nil
	s.Err = err
	return s, true
}

func (s State) awaiting(token uint64) bool {
	return s.Phase == InFlight && s.Token == token
}
