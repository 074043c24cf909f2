package line

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// apiBaseURL is a variable so tests can point the client at a local server.
var apiBaseURL = "https://api.line.me/v2/bot"

const timeout = 20 * time.Second

// Message is one LINE message object. Text messages and flex messages share
// the same envelope, so the payload is an open map.
type Message map[string]interface{}

// TextMessage builds a plain text message.
func TextMessage(text string) Message {
	return Message{
		"type": "text",
		"text": text,
	}
}

// Client represents a LINE Messaging API client.
type Client struct {
	channelToken string
	httpClient   *http.Client
}

// NewClient creates a new LINE client.
func NewClient(channelToken string) (*Client, error) {
	if channelToken == "" {
		return nil, fmt.Errorf("channel token is required")
	}

	return &Client{
		channelToken: channelToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Push sends messages to a single user or group ID.
func (c *Client) Push(to string, messages []Message) error {
	if to == "" {
		return fmt.Errorf("push target is required")
	}
	return c.post("/message/push", map[string]interface{}{
		"to":       to,
		"messages": messages,
	})
}

// Broadcast sends messages to every follower of the channel.
func (c *Client) Broadcast(messages []Message) error {
	return c.post("/message/broadcast", map[string]interface{}{
		"messages": messages,
	})
}

// Multicast sends messages to a list of user IDs.
func (c *Client) Multicast(userIDs []string, messages []Message) error {
	if len(userIDs) == 0 {
		return fmt.Errorf("multicast requires at least one user ID")
	}
	return c.post("/message/multicast", map[string]interface{}{
		"to":       userIDs,
		"messages": messages,
	})
}

// post sends one API call. Failures are returned to the caller as-is; the
// caller decides whether they are fatal. There are no retries.
func (c *Client) post(path string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", apiBaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// LINE error responses carry {"message": "...", "details": [...]}.
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("LINE API error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("LINE API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
