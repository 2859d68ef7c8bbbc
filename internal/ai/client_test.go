package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"locust/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewMockConfig(map[string]interface{}{
		"ai_api_key":  "test-key",
		"ai_endpoint": srv.URL,
		"ai_model":    "test-model",
	})
	return NewClient(cfg)
}

func TestChatSendsHistory(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "system", req.Messages[0].Role)

		if calls == 2 {
			// Second call carries user, assistant, user
			require.Len(t, req.Messages, 4)
			assert.Equal(t, "assistant", req.Messages[2].Role)
		}

		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message Message `json:"message"`
			}{{Message: Message{Role: "assistant", Content: fmt.Sprintf("reply %d", calls)}}},
		})
	})

	reply, err := client.Chat("chan1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "reply 1", reply)

	reply, err = client.Chat("chan1", "again")
	require.NoError(t, err)
	assert.Equal(t, "reply 2", reply)

	assert.Equal(t, 1, client.ActiveConversations())
}

func TestChatErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Chat("chan1", "hello")
	require.Error(t, err)
}

func TestChatDisabled(t *testing.T) {
	cfg := config.NewMockConfig(map[string]interface{}{})
	client := NewClient(cfg)

	assert.False(t, client.Enabled())
	_, err := client.Chat("chan1", "hello")
	require.Error(t, err)
}

func TestClearConversation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message Message `json:"message"`
			}{{Message: Message{Role: "assistant", Content: "hi"}}},
		})
	})

	assert.False(t, client.ClearConversation("chan1"))

	_, err := client.Chat("chan1", "hello")
	require.NoError(t, err)

	assert.True(t, client.ClearConversation("chan1"))
	assert.Equal(t, 0, client.ActiveConversations())
}

func TestHistoryTrimmed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// system prompt plus at most maxHistoryLength history entries
		assert.LessOrEqual(t, len(req.Messages), maxHistoryLength+1)

		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message Message `json:"message"`
			}{{Message: Message{Role: "assistant", Content: "ok"}}},
		})
	})

	for range 12 {
		_, err := client.Chat("chan1", "ping")
		require.NoError(t, err)
	}
}
