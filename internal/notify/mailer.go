// Package notify sends review-outcome emails through the transactional
// email API. Delivery failure never fails the decision that triggered
// it; callers log and move on.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Mailer struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewMailer(baseURL, apiKey, from string) *Mailer {
	return &Mailer{
		baseURL:    baseURL,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendApproval tells the user their permit documents were approved and
// hands them the customer code issued by the city.
func (m *Mailer) SendApproval(ctx context.Context, toEmail, name, customerCode string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Your residential permit documents have been approved.</p>"+
			"<p>Your customer code is <strong>%s</strong>. Keep it handy for future permit renewals.</p>"+
			"<p>— Ticketless America</p>",
		displayName(name), customerCode,
	)

	return m.send(ctx, message{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "Your permit documents were approved",
		HTML:    body,
	})
}

// SendRejection carries the composed rejection reason so the user knows
// what to fix before resubmitting.
func (m *Mailer) SendRejection(ctx context.Context, toEmail, name, reason string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>We could not approve your residential permit documents:</p>"+
			"<p>%s</p>"+
			"<p>Please upload corrected documents from your account page.</p>"+
			"<p>— Ticketless America</p>",
		displayName(name), reason,
	)

	return m.send(ctx, message{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "Action needed: your permit documents were not approved",
		HTML:    body,
	})
}

func (m *Mailer) send(ctx context.Context, msg message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email send failed with status %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
