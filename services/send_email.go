package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dmuuo/portfolio-backend/config"
	"github.com/dmuuo/portfolio-backend/models"
)

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// SendEmail sends an email using the Resend API.
//
// Requires environment variables:
//   - RESEND_API_KEY: Resend API key
//   - RESEND_FROM_EMAIL: the sender address (e.g. "Portfolio <noreply@example.com>")
func SendEmail(subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	cfg := config.New()

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "Portfolio <onboarding@resend.dev>")

	payload := ResendEmailRequest{
		From:    fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending email request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading email response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ResendErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("resend API error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	var emailResp ResendEmailResponse
	if err := json.Unmarshal(respBody, &emailResp); err != nil {
		return fmt.Errorf("parsing email response: %w", err)
	}

	log.Debug().Str("emailID", emailResp.ID).Msg("Email sent")
	return nil
}

// NotifyContact emails the portfolio owner about a new contact message.
// Fire and forget: the submission has already been persisted, so a
// notification failure is logged and never surfaced to the caller.
func NotifyContact(contact models.Contact) {
	cfg := config.New()
	recipient := config.GetString(cfg, "CONTACT_NOTIFY_EMAIL", "")
	if recipient == "" {
		return
	}

	subject := fmt.Sprintf("New contact message: %s", contact.Subject)
	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s (%s)</p><p>%s</p>",
		html.EscapeString(contact.Name),
		html.EscapeString(contact.Email),
		html.EscapeString(contact.Message),
	)

	if err := SendEmail(subject, body, []string{recipient}); err != nil {
		log.Error().Err(err).Str("contactID", contact.ID.String()).Msg("Failed to send contact notification")
	}
}
