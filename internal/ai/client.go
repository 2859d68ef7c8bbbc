package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"locust/internal/config"

	"github.com/MakeNowJust/heredoc"
)

const (
	maxHistoryLength    = 10
	conversationTimeout = 30 * time.Minute
)

// Client talks to an OpenAI-style chat completions endpoint and keeps
// per-channel conversation history.
type Client struct {
	config *config.Config
	http   *http.Client

	mu            sync.Mutex
	conversations map[string]*conversation
}

type conversation struct {
	messages []Message
	expires  time.Time
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	Model       string    `json:"model"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

var systemPrompt = heredoc.Doc(`
	You are Locust, a helpful Discord assistant.
	Keep replies under 1500 characters so they fit in a Discord message.
	Answer plainly and avoid markdown headers.
`)

func NewClient(cfg *config.Config) *Client {
	return &Client{
		config:        cfg,
		http:          &http.Client{Timeout: 30 * time.Second},
		conversations: make(map[string]*conversation),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.config.GetAIAPIKey() != ""
}

// Chat sends the user prompt along with the channel's recent history and
// returns the model's reply.
func (c *Client) Chat(channelID, userPrompt string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("ai chat is not configured")
	}

	history := c.appendHistory(channelID, Message{Role: "user", Content: userPrompt})

	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)

	reqPayload := chatRequest{
		Messages:    messages,
		Temperature: 1,
		TopP:        1,
		Model:       c.config.GetAIModel(),
	}

	reqBody, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequest("POST", c.config.GetAIEndpoint(), bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.GetAIAPIKey())

	response, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat endpoint returned no choices")
	}

	reply := chatResp.Choices[0].Message
	c.appendHistory(channelID, reply)

	return reply.Content, nil
}

// ClearConversation forgets a channel's history. It reports whether
// there was anything to clear.
func (c *Client) ClearConversation(channelID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.conversations[channelID]
	delete(c.conversations, channelID)
	return ok
}

// ActiveConversations returns the number of live conversations.
func (c *Client) ActiveConversations() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	now := time.Now()
	for _, conv := range c.conversations {
		if conv.expires.After(now) {
			n++
		}
	}
	return n
}

// appendHistory records a message and returns a copy of the channel's
// history, trimmed to the most recent entries.
func (c *Client) appendHistory(channelID string, msg Message) []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	conv := c.conversations[channelID]
	if conv == nil || time.Now().After(conv.expires) {
		conv = &conversation{}
		c.conversations[channelID] = conv
	}

	conv.messages = append(conv.messages, msg)
	if len(conv.messages) > maxHistoryLength {
		conv.messages = conv.messages[len(conv.messages)-maxHistoryLength:]
	}
	conv.expires = time.Now().Add(conversationTimeout)

	out := make([]Message, len(conv.messages))
	copy(out, conv.messages)
	return out
}
