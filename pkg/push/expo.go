package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Notification is the payload handed to the gateway, one call per recipient.
type Notification struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Sound    bool              `json:"-"`
	Priority string            `json:"priority,omitempty"` // low | normal | high
}

// Client talks to an Expo-compatible push endpoint.
type Client struct {
	URL    string
	HTTP   *http.Client
	DryRun bool // log instead of delivering (for environments that cannot reach the provider)
}

func NewClient(url string, dryRun bool) *Client {
	return &Client{
		URL:    url,
		HTTP:   &http.Client{Timeout: 10 * time.Second},
		DryRun: dryRun,
	}
}

type expoMessage struct {
	To       string            `json:"to"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Sound    string            `json:"sound,omitempty"`
	Priority string            `json:"priority,omitempty"`
}

type expoReceipt struct {
	Data struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

func (c *Client) Send(ctx context.Context, token string, n Notification) error {
	if c.DryRun {
		log.Printf("push (dry-run) to %s: %s — %s", token, n.Title, n.Body)
		return nil
	}

	msg := expoMessage{
		To:       token,
		Title:    n.Title,
		Body:     n.Body,
		Data:     n.Data,
		Priority: n.Priority,
	}
	if n.Sound {
		msg.Sound = "default"
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return fmt.Errorf("push endpoint returned %d: %s", res.StatusCode, body)
	}

	var receipt expoReceipt
	if err := json.NewDecoder(res.Body).Decode(&receipt); err != nil {
		// delivered as far as we can tell; receipt parsing is best effort
		return nil
	}
	if receipt.Data.Status == "error" {
		return fmt.Errorf("push rejected: %s", receipt.Data.Message)
	}
	return nil
}
