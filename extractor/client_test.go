package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/use-agent/folio/models"
)

func TestExtract_SendsContract(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/api/portfolios" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if a := r.Header.Get("Accept"); a != "application/json" {
			t.Errorf("Accept = %q", a)
		}
		if c := r.Header.Get("Cookie"); c != "" {
			t.Errorf("credentials sent: %q", c)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"basic_info":{"name":"A","role":"Editor"}}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL+"/", srv.Client()).Extract(context.Background(), "https://example.com/portfolio")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if gotBody["url"] != "https://example.com/portfolio" {
		t.Errorf("body url = %q", gotBody["url"])
	}
	if p.SourceURL != "https://example.com/portfolio" {
		t.Errorf("SourceURL = %q", p.SourceURL)
	}
	if p.Employers == nil || p.Videos == nil {
		t.Error("absent lists should decode as empty slices")
	}
}

func TestExtract_Non2xxIsRequestFailure(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"detail":"nope"}`))
		}))

		_, err := NewClient(srv.URL, srv.Client()).Extract(context.Background(), "https://a.example")
		srv.Close()

		var se *models.SubmitError
		if !errors.As(err, &se) {
			t.Fatalf("status %d: err = %v, want SubmitError", status, err)
		}
		if se.Code != models.ErrCodeRequestFailed || se.StatusCode != status {
			t.Errorf("status %d: code=%s status=%d", status, se.Code, se.StatusCode)
		}
		if se.Message != models.MsgRequestFailed {
			t.Errorf("status %d: message = %q", status, se.Message)
		}
	}
}

func TestExtract_BadBodyIsRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).Extract(context.Background(), "https://a.example")
	if se := Classify(err); se.Code != models.ErrCodeRequestFailed {
		t.Errorf("code = %s", se.Code)
	}
}

func TestExtract_UnreachableIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).Extract(context.Background(), "https://a.example")
	se := Classify(err)
	if se.Code != models.ErrCodeTransportFailed {
		t.Fatalf("code = %s", se.Code)
	}
	if se.Message == models.MsgRequestFailed {
		t.Error("transport failures need a distinguishable message")
	}
}

func TestClassify(t *testing.T) {
	plain := errors.New("dial tcp: refused")
	if got := Classify(plain); got.Code != models.ErrCodeTransportFailed || !errors.Is(got, plain) {
		t.Errorf("plain error classified as %+v", got)
	}
	se := models.RequestFailed(500, nil)
	if got := Classify(se); got != se {
		t.Error("classified errors should pass through")
	}
}
