package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// EmailSender dispatches a templated transactional email.
type EmailSender interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
}

// EmailClient talks to an EmailJS-compatible REST endpoint. Sends are
// fire-and-forget from the caller's point of view: a non-2xx response is
// an error, nothing is retried.
type EmailClient struct {
	baseURL   string
	serviceID string
	publicKey string
	http      *http.Client
}

func NewEmailClient(baseURL, serviceID, publicKey string) *EmailClient {
	return &EmailClient{
		baseURL:   baseURL,
		serviceID: serviceID,
		publicKey: publicKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type emailRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (c *EmailClient) Send(ctx context.Context, templateID string, params map[string]string) error {
	if c.serviceID == "" || c.publicKey == "" {
		return fmt.Errorf("email service not configured")
	}

	body, err := json.Marshal(emailRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("email send failed: status %d: %s", res.StatusCode, msg)
	}
	return nil
}
