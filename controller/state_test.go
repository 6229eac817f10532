package controller

import (
	"errors"
	"testing"

	"github.com/use-agent/folio/models"
)

func sampleProfile(name string) *models.Profile {
	return &models.Profile{
		BasicInfo: models.BasicInfo{Name: name, Role: "Editor"},
		Employers: []models.Employer{},
		Videos:    []models.Video{},
	}
}

func TestSubmit_BlankURLIsNoOp(t *testing.T) {
	succeeded, _ := State{}.Submit("https://a.example")
	succeeded, _ = succeeded.Resolve(succeeded.Token, sampleProfile("A"))
	failed, _ := State{}.Submit("https://b.example")
	failed, _ = failed.Reject(failed.Token, models.TransportFailed(errors.New("dial")))
	inFlight, _ := State{}.Submit("https://c.example")

	starts := map[string]State{
		"idle":      {},
		"success":   succeeded,
		"failed":    failed,
		"in flight": inFlight,
	}
	for name, start := range starts {
		for _, blank := range []string{"", " ", "\t\n  "} {
			next, ok := start.Submit(blank)
			if ok {
				t.Errorf("%s: Submit(%q) reported a transition", name, blank)
			}
			if next.Phase != start.Phase || next.Token != start.Token {
				t.Errorf("%s: Submit(%q) changed state: %v/%d -> %v/%d",
					name, blank, start.Phase, start.Token, next.Phase, next.Token)
			}
			if next.Profile != start.Profile {
				t.Errorf("%s: Submit(%q) touched the profile", name, blank)
			}
		}
	}
}

func TestSubmit_ClearsPriorOutcome(t *testing.T) {
	s, _ := State{}.Submit("https://a.example")
	s, _ = s.Resolve(s.Token, sampleProfile("A"))
	if s.Phase != Success || s.Profile == nil {
		t.Fatalf("expected success with profile, got %v", s.Phase)
	}

	s, ok := s.Submit("https://b.example")
	if !ok || s.Phase != InFlight {
		t.Fatalf("expected in-flight after submit, got %v ok=%v", s.Phase, ok)
	}
	if s.Profile != nil {
		t.Error("profile should be cleared on submit")
	}

	s, _ = s.Reject(s.Token, models.RequestFailed(500, nil))
	if s.Phase != Failed || s.ErrorMessage() == "" {
		t.Fatalf("expected failed with message, got %v %q", s.Phase, s.ErrorMessage())
	}

	s, _ = s.Submit("https://c.example")
	if s.Err != nil || s.ErrorMessage() != "" {
		t.Error("error should be cleared on submit")
	}
	if s.URL != "https://c.example" {
		t.Errorf("URL = %q, want submitted value", s.URL)
	}
}

func TestSubmit_TokenIsMonotonic(t *testing.T) {
	var s State
	var last uint64
	for i := 0; i < 5; i++ {
		s, _ = s.Submit("https://a.example")
		if s.Token <= last {
			t.Fatalf("token did not increase: %d after %d", s.Token, last)
		}
		last = s.Token
	}
}

func TestResolve_UsesSubmittedURLNotLiveInput(t *testing.T) {
	s, _ := State{}.Edit("https://a.example").Submit("https://a.example")
	s = s.Edit("https://typed-since.example")

	s, ok := s.Resolve(s.Token, sampleProfile("A"))
	if !ok {
		t.Fatal("resolve for current token rejected")
	}
	if s.URL != "https://a.example" || s.Profile.SourceURL != "https://a.example" {
		t.Errorf("URL = %q, SourceURL = %q; want the submitted URL", s.URL, s.Profile.SourceURL)
	}
	if s.Input != "https://typed-since.example" {
		t.Errorf("Input = %q, live input should survive", s.Input)
	}
}

func TestResolve_DoesNotMutateCallerProfile(t *testing.T) {
	p := sampleProfile("A")
	s, _ := State{}.Submit("https://a.example")
	s, _ = s.Resolve(s.Token, p)
	if p.SourceURL != "" {
		t.Error("Resolve wrote into the caller's profile")
	}
	if s.Profile == p {
		t.Error("state should hold its own copy")
	}
}

func TestStaleCompletionsAreIgnored(t *testing.T) {
	first, _ := State{}.Submit("https://first.example")
	second, _ := first.Submit("https://second.example")

	after, ok := second.Resolve(first.Token, sampleProfile("first"))
	if ok {
		t.Error("stale resolve accepted")
	}
	if after.Phase != InFlight || after.Token != second.Token {
		t.Errorf("stale resolve changed state to %v/%d", after.Phase, after.Token)
	}

	after, ok = second.Reject(first.Token, models.RequestFailed(500, nil))
	if ok || after.Phase != InFlight {
		t.Error("stale reject changed state")
	}

	done, _ := second.Resolve(second.Token, sampleProfile("second"))
	again, ok := done.Resolve(second.Token, sampleProfile("dup"))
	if ok || again.Profile.BasicInfo.Name != "second" {
		t.Error("a second completion for the same token must be ignored")
	}
}

func TestReject_NilErrorBecomesRequestFailure(t *testing.T) {
	s, _ := State{}.Submit("https://a.example")
	s, ok := s.Reject(s.Token, nil)
	if !ok || s.Err == nil || s.Err.Code != models.ErrCodeRequestFailed {
		t.Fatalf("got %+v", s.Err)
	}
}

func TestResolve_NilProfileFails(t *testing.T) {
	s, _ := State{}.Submit("https://a.example")
	s, ok := s.Resolve(s.Token, nil)
	if !ok || s.Phase != Failed || s.Profile != nil {
		t.Fatalf("nil profile should fail the submission, got %v", s.Phase)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{Idle, "idle"},
		{InFlight, "in_flight"},
		{Success, "success"},
		{Failed, "failed"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
