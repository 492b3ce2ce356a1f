package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatbotService proxies customer questions to the external recommendation
// agent and returns its response verbatim.
type ChatbotService struct {
	url    string
	client *http.Client
}

var _ IChatbotService = (*ChatbotService)(nil)

func NewChatbotService(url string) *ChatbotService {
	return &ChatbotService{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *ChatbotService) Query(ctx context.Context, message string) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chatbot request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chatbot response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chatbot returned status %d", resp.StatusCode)
	}

	return json.RawMessage(body), nil
}
