package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/currforge/currforge/curriculum"
)

const defaultTransactionalURL = "https://mandrillapp.com/api/1.0"

// Mailchimp sends completion emails through the Mailchimp Transactional
// (Mandrill) API.
type Mailchimp struct {
	apiKey     string
	fromEmail  string
	fromName   string
	publicURL  string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger

	// Audience, if set, is synced after each successful send.
	Audience *Audience
}

// MailchimpOption tweaks client construction.
type MailchimpOption func(*Mailchimp)

// WithTransactionalBaseURL overrides the API endpoint, for tests.
func WithTransactionalBaseURL(url string) MailchimpOption {
	return func(m *Mailchimp) { m.baseURL = strings.TrimSuffix(url, "/") }
}

// NewMailchimp creates a transactional mail client. publicURL is the
// externally reachable base of this service, used to build download links.
func NewMailchimp(apiKey, fromEmail, fromName, publicURL string, log *slog.Logger, opts ...MailchimpOption) (*Mailchimp, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("mail: transactional API key is required")
	}
	if log == nil {
		log = slog.Default()
	}
	m := &Mailchimp{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		publicURL:  publicURL,
		baseURL:    defaultTransactionalURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

type sendRequest struct {
	Key     string  `json:"key"`
	Message message `json:"message"`
}

type message struct {
	FromEmail   string      `json:"from_email"`
	FromName    string      `json:"from_name"`
	Subject     string      `json:"subject"`
	To          []recipient `json:"to"`
	HTML        string      `json:"html"`
	Text        string      `json:"text"`
	TrackOpens  bool        `json:"track_opens"`
	TrackClicks bool        `json:"track_clicks"`
	Tags        []string    `json:"tags"`
}

type recipient struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

type sendResult struct {
	ID           string `json:"_id"`
	Status       string `json:"status"`
	RejectReason string `json:"reject_reason"`
}

// SendCurriculum emails download links for every document the run produced.
// Audience sync runs afterward and its failures are logged, not returned.
func (m *Mailchimp) SendCurriculum(ctx context.Context, email string, result *curriculum.RequestResult) error {
	links := buildLinks(m.publicURL, result)
	payload, err := json.Marshal(sendRequest{
		Key: m.apiKey,
		Message: message{
			FromEmail:   m.fromEmail,
			FromName:    m.fromName,
			Subject:     subject(result),
			To:          []recipient{{Email: email, Type: "to"}},
			HTML:        buildHTML(result, links),
			Text:        buildText(result, links),
			TrackOpens:  true,
			TrackClicks: true,
			Tags:        []string{"curriculum-delivery"},
		},
	})
	if err != nil {
		return fmt.Errorf("mail: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/messages/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mail: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mail: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail: send failed (status %d): %s", resp.StatusCode, body)
	}

	var results []sendResult
	if err := json.Unmarshal(body, &results); err != nil {
		return fmt.Errorf("mail: parse response: %w", err)
	}
	if len(results) > 0 && (results[0].Status == "rejected" || results[0].Status == "invalid") {
		return fmt.Errorf("mail: message %s: %s", results[0].Status, results[0].RejectReason)
	}
	m.log.Info("curriculum email sent", "email", email, "documents", len(links))

	if m.Audience != nil {
		if err := m.Audience.Sync(ctx, email, result); err != nil {
			m.log.Warn("audience sync failed", "email", email, "error", err)
		}
	}
	return nil
}
