package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/use-agent/folio/controller"
	"github.com/use-agent/folio/models"
)

// Event types.
const (
	EventParsed = "portfolio.parsed"
	EventFailed = "portfolio.failed"
)

// SignatureHeader carries the HMAC-SHA256 of the body when a secret is set.
const SignatureHeader = "X-Folio-Signature"

// Event is the payload sent to webhook endpoints.
type Event struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Timestamp int64      `json:"timestamp"`
	Data      Submission `json:"data"`
}

// Submission describes the finished submission an event refers to.
type Submission struct {
	Token   uint64              `json:"token"`
	URL     string              `json:"url"`
	Phase   controller.Phase    `json:"phase"`
	Profile *models.Profile     `json:"profile,omitempty"`
	Error   *models.ErrorDetail `json:"error,omitempty"`
}

// Notifier posts submission outcomes to a single endpoint.
type Notifier struct {
	URL    string
	Secret string

	// Delays lists the wait before each delivery attempt.
	Delays []time.Duration

	Client *http.Client
}

// NewNotifier returns a Notifier with the default retry schedule:
// immediately, then after 1s, 5s and 30s.
func NewNotifier(url, secret string) *Notifier {
	return &Notifier{
		URL:    url,
		Secret: secret,
		Delays: []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second},
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Deliver sends event synchronously.
// Header: X-Folio-Signature: sha256=<hex>
func (n *Notifier) Deliver(ctx context.Context, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Folio-Webhook/1.0")

	if n.Secret != "" {
		req.Header.Set(SignatureHeader, "sha256="+Sign(n.Secret, body))
	}

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// DeliverAsync sends event in the background, retrying per n.Delays.
func (n *Notifier) DeliverAsync(event *Event) {
	go func() {
		for attempt, delay := range n.Delays {
			if delay > 0 {
				time.Sleep(delay)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := n.Deliver(ctx, event)
			cancel()
			if err == nil {
				slog.Info("webhook delivered",
					"url", n.URL,
					"event", event.Type,
					"event_id", event.ID,
					"attempt", attempt+1,
				)
				return
			}
			slog.Warn("webhook delivery failed",
				"url", n.URL,
				"event", event.Type,
				"event_id", event.ID,
				"attempt", attempt+1,
				"error", err,
			)
		}
		slog.Error("webhook delivery exhausted all retries",
			"url", n.URL,
			"event", event.Type,
			"event_id", event.ID,
		)
	}()
}

// Observer forwards finished submissions to the endpoint. Submissions and
// dropped stale responses are not reported.
func (n *Notifier) Observer() controller.Observer {
	return func(ev controller.Event) {
		if e := NewEvent(ev); e != nil {
			n.DeliverAsync(e)
		}
	}
}

// NewEvent builds the webhook event for a controller event, or nil when
// the event is not reported.
func NewEvent(ev controller.Event) *Event {
	var typ string
	switch ev.Kind {
	case controller.EventSucceeded:
		typ = EventParsed
	case controller.EventFailed:
		typ = EventFailed
	default:
		return nil
	}

	sub := Submission{
		Token:   ev.Token,
		URL:     ev.State.URL,
		Phase:   ev.State.Phase,
		Profile: ev.State.Profile,
	}
	if ev.State.Err != nil {
		sub.Error = ev.State.Err.ToDetail()
	}
	return &Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Timestamp: time.Now().Unix(),
		Data:      sub,
	}
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
