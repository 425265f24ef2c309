package mail

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/currforge/currforge/curriculum"
)

// Audience keeps the Mailchimp Marketing list in sync with users who have
// generated a curriculum.
type Audience struct {
	apiKey     string
	audienceID string
	baseURL    string
	httpClient *http.Client
}

// NewAudience creates a marketing audience client. The API key's suffix
// carries the server prefix ("...-us11"); serverPrefix overrides it when set.
func NewAudience(apiKey, audienceID, serverPrefix string) (*Audience, error) {
	if apiKey == "" || audienceID == "" {
		return nil, fmt.Errorf("mail: marketing API key and audience id are required")
	}
	if serverPrefix == "" {
		if i := strings.LastIndex(apiKey, "-"); i >= 0 && i < len(apiKey)-1 {
			serverPrefix = apiKey[i+1:]
		} else {
			serverPrefix = "us11"
		}
	}
	return &Audience{
		apiKey:     apiKey,
		audienceID: audienceID,
		baseURL:    fmt.Sprintf("https://%s.api.mailchimp.com/3.0", serverPrefix),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// WithBaseURL overrides the API endpoint, for tests.
func (a *Audience) WithBaseURL(url string) *Audience {
	a.baseURL = strings.TrimSuffix(url, "/")
	return a
}

// memberHash is the member identifier Mailchimp derives from the address.
func memberHash(email string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(strings.ToLower(email))))
}

// Sync upserts the contact and records a curriculum_generated event.
func (a *Audience) Sync(ctx context.Context, email string, result *curriculum.RequestResult) error {
	if err := a.upsertMember(ctx, email); err != nil {
		return err
	}
	return a.recordEvent(ctx, email, result)
}

func (a *Audience) upsertMember(ctx context.Context, email string) error {
	body := map[string]any{
		"email_address": email,
		"status_if_new": "subscribed",
		"tags":          []string{"currforge-user"},
	}
	path := fmt.Sprintf("/lists/%s/members/%s", a.audienceID, memberHash(email))
	return a.do(ctx, http.MethodPut, path, body)
}

func (a *Audience) recordEvent(ctx context.Context, email string, result *curriculum.RequestResult) error {
	body := map[string]any{
		"name": "curriculum_generated",
		"properties": map[string]string{
			"book":      result.Context.Book,
			"grade":     result.Context.Grade,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}
	path := fmt.Sprintf("/lists/%s/members/%s/events", a.audienceID, memberHash(email))
	return a.do(ctx, http.MethodPost, path, body)
}

func (a *Audience) do(ctx context.Context, method, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("mail: marshal audience request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mail: create audience request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("anystring", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail: audience request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail: audience %s %s failed (status %d): %s", method, path, resp.StatusCode, msg)
	}
	return nil
}
