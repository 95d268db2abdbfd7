package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBatchSize is the gateway's hard limit on recipients per request.
const DefaultBatchSize = 100

// Message is one push notification addressed to a single device token.
type Message struct {
	To    string                 `json:"to"`
	Sound string                 `json:"sound,omitempty"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// Client talks to an Expo-compatible push gateway.
type Client struct {
	gatewayURL string
	batchSize  int
	httpClient *http.Client
}

func NewClient(gatewayURL string, batchSize int, timeout time.Duration) *Client {
	if batchSize <= 0 || batchSize > DefaultBatchSize {
		batchSize = DefaultBatchSize
	}
	return &Client{
		gatewayURL: gatewayURL,
		batchSize:  batchSize,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send delivers one notification to one token.
func (c *Client) Send(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	if token == "" {
		return nil
	}
	return c.post(ctx, []Message{{
		To:    token,
		Sound: "default",
		Title: title,
		Body:  body,
		Data:  data,
	}})
}

// Chunk splits tokens into gateway-sized batches.
func (c *Client) Chunk(tokens []string) [][]string {
	var chunks [][]string
	for len(tokens) > 0 {
		n := c.batchSize
		if n > len(tokens) {
			n = len(tokens)
		}
		chunks = append(chunks, tokens[:n])
		tokens = tokens[n:]
	}
	return chunks
}

// SendBatch delivers the same notification to every token in one gateway
// request. The caller is responsible for keeping len(tokens) within the batch
// size; Chunk does that.
func (c *Client) SendBatch(ctx context.Context, tokens []string, title, body string, data map[string]interface{}) error {
	if len(tokens) == 0 {
		return nil
	}
	msgs := make([]Message, 0, len(tokens))
	for _, token := range tokens {
		msgs = append(msgs, Message{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
			Data:  data,
		})
	}
	return c.post(ctx, msgs)
}

func (c *Client) post(ctx context.Context, msgs []Message) error {
	payload, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}
