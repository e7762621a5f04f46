package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func newTestMailer(t *testing.T, status int) (*Mailer, *sentMessage, *string) {
	t.Helper()

	var captured sentMessage
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.Equal(t, "/emails", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(status)
		io.WriteString(w, `{"id":"msg_1"}`)
	}))
	t.Cleanup(srv.Close)

	return NewMailer(srv.URL, "resend-key", "Ticketless America <noreply@ticketlessamerica.com>"), &captured, &auth
}

func TestSendApproval(t *testing.T) {
	mailer, captured, auth := newTestMailer(t, http.StatusOK)

	err := mailer.SendApproval(context.Background(), "owner@example.com", "Jordan", "CHI-00451")
	require.NoError(t, err)

	assert.Equal(t, "Bearer resend-key", *auth)
	assert.Equal(t, "Ticketless America <noreply@ticketlessamerica.com>", captured.From)
	assert.Equal(t, []string{"owner@example.com"}, captured.To)
	assert.Equal(t, "Your permit documents were approved", captured.Subject)
	assert.Contains(t, captured.HTML, "Hi Jordan,")
	assert.Contains(t, captured.HTML, "CHI-00451")
}

func TestSendRejectionCarriesReason(t *testing.T) {
	mailer, captured, _ := newTestMailer(t, http.StatusOK)

	err := mailer.SendRejection(context.Background(), "owner@example.com", "",
		"The ID document is expired; Expired March 2024")
	require.NoError(t, err)

	assert.Equal(t, "Action needed: your permit documents were not approved", captured.Subject)
	assert.Contains(t, captured.HTML, "Hi there,", "empty name falls back to a neutral greeting")
	assert.Contains(t, captured.HTML, "The ID document is expired; Expired March 2024")
}

func TestSendFailureStatus(t *testing.T) {
	mailer, _, _ := newTestMailer(t, http.StatusUnprocessableEntity)

	err := mailer.SendApproval(context.Background(), "owner@example.com", "Jordan", "CHI-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
}
