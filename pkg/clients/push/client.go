package push

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/alibiomar/ashe-admin-api/internal/config"
)

// Client exposes the push provider operations used by the application.
type Client interface {
	SendToTopic(ctx context.Context, req SendRequest) (*SendResponse, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a push provider client using the provided configuration
// values.
func NewClient(cfg config.PushConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Authorization", fmt.Sprintf("key=%s", cfg.ServerKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// SendRequest represents a topic push payload.
type SendRequest struct {
	Topic string
	Title string
	Body  string
	Data  map[string]string
}

// SendResponse mirrors the successful response from the provider.
type SendResponse struct {
	MessageID int64 `json:"message_id"`
}

// apiError represents a push provider error payload.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *APIClient) SendToTopic(ctx context.Context, req SendRequest) (*SendResponse, error) {
	payload := map[string]any{
		"to": fmt.Sprintf("/topics/%s", req.Topic),
		"notification": map[string]any{
			"title": req.Title,
			"body":  req.Body,
		},
	}
	if len(req.Data) > 0 {
		payload["data"] = req.Data
	}

	result := new(SendResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("/fcm/send")
	if err != nil {
		return nil, fmt.Errorf("send push notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		code := resp.StatusCode()
		if apiErr != nil {
			message = apiErr.Error.Message
			if apiErr.Error.Code != 0 {
				code = apiErr.Error.Code
			}
		}
		return nil, fmt.Errorf("push api error: code=%d, message=%s", code, message)
	}

	return result, nil
}
