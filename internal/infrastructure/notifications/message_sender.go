package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
	"github.com/velora-studio/booking-backend/internal/domain/providers"
)

// MessageAPISender delivers notifications through a transactional-message
// HTTP API. It renders the fixed template for a notification type and posts
// one message per call; the dispatcher treats failures as best-effort.
type MessageAPISender struct {
	apiKey      string
	fromAddress string
	httpClient  *http.Client
	baseURL     string
}

// NewMessageAPISender creates a new message API sender
func NewMessageAPISender(baseURL, apiKey, fromAddress string) (providers.NotificationSender, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("notification API base URL and key must be set")
	}

	return &MessageAPISender{
		apiKey:      apiKey,
		fromAddress: fromAddress,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}, nil
}

type messageRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type messageResponse struct {
	ID string `json:"id"`
}

// Send renders the template for notificationType and posts the message.
func (s *MessageAPISender) Send(ctx context.Context, recipient string, notificationType entities.NotificationType, details entities.NotificationDetails) error {
	subject, body, err := RenderTemplate(notificationType, details)
	if err != nil {
		return err
	}

	payload := messageRequest{
		From:    s.fromAddress,
		To:      recipient,
		Subject: subject,
		Body:    body,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/messages", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("message API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var msgResp messageResponse
	if err := json.Unmarshal(respBody, &msgResp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if msgResp.ID == "" {
		return fmt.Errorf("no message ID in response")
	}
	return nil
}
