package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rs/zerolog/log"
)

const defaultResendURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendClient sends transactional email through the Resend HTTP API.
type ResendClient struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

// NewResendClient reads RESEND_API_KEY and RESEND_FROM_EMAIL from c.
// RESEND_API_URL overrides the API base URL.
func NewResendClient(c map[string]string) (*ResendClient, error) {
	apiKey := config.GetString(c, "RESEND_API_KEY", "")
	if apiKey == "" {
		return nil, errs.NewConfigMissingError("RESEND_API_KEY")
	}
	fromEmail := config.GetString(c, "RESEND_FROM_EMAIL", "")
	if fromEmail == "" {
		return nil, errs.NewConfigMissingError("RESEND_FROM_EMAIL")
	}

	return &ResendClient{
		apiKey:     apiKey,
		from:       fromEmail,
		baseURL:    config.GetString(c, "RESEND_API_URL", defaultResendURL),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// SendEmail sends one email to recipients. replyTo may be empty.
func (c *ResendClient) SendEmail(ctx context.Context, subject, htmlBody, textBody, replyTo string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    c.from,
		To:      recipients,
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
		ReplyTo: replyTo,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
