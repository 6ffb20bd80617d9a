package mailer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/alibiomar/ashe-admin-api/internal/config"
)

// Client exposes the transactional email operations used by the application.
type Client interface {
	SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient  *resty.Client
	fromAddress string
}

// NewClient builds an email provider client using the provided configuration
// values.
func NewClient(cfg config.MailConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient:  restyClient,
		fromAddress: cfg.FromAddress,
	}
}

// SendEmailRequest represents a simplified transactional email payload.
type SendEmailRequest struct {
	To      string
	Subject string
	HTML    string
}

// SendEmailResponse mirrors the successful response from the provider.
type SendEmailResponse struct {
	ID string `json:"id"`
}

// apiError represents an email provider error payload.
type apiError struct {
	Message    string `json:"message"`
	Name       string `json:"name"`
	StatusCode int    `json:"statusCode"`
}

func (c *APIClient) SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error) {
	payload := map[string]any{
		"from":    c.fromAddress,
		"to":      []string{req.To},
		"subject": req.Subject,
		"html":    req.HTML,
	}

	result := new(SendEmailResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("/emails")
	if err != nil {
		return nil, fmt.Errorf("send email: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		code := resp.StatusCode()
		if apiErr != nil {
			message = apiErr.Message
			if apiErr.StatusCode != 0 {
				code = apiErr.StatusCode
			}
		}
		return nil, fmt.Errorf("email api error: code=%d, message=%s", code, message)
	}

	return result, nil
}
