package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// Sender sends transactional emails. Nil = no-op.
type Sender interface {
	SendOTP(ctx context.Context, toEmail, otp string) error
}

// BrevoClient sends emails via the Brevo API.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

type brevoSendRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	TextContent string         `json:"textContent"`
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SendOTP sends the email-verification code.
func (c *BrevoClient) SendOTP(ctx context.Context, toEmail, otp string) error {
	return c.send(ctx, toEmail, "OTP Verification", fmt.Sprintf("Your verification OTP is: %s", otp))
}

func (c *BrevoClient) send(ctx context.Context, toEmail, subject, text string) error {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}

	body, _ := json.Marshal(brevoSendRequest{
		Sender:      brevoAddress{Email: c.MailFrom},
		To:          []brevoAddress{{Email: toEmail}},
		Subject:     subject,
		TextContent: text,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo error: status %d body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
