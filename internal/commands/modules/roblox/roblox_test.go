package roblox

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"locust/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req usernamesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"builderman"}, req.Usernames)
		assert.True(t, req.ExcludeBannedUsers)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":156,"name":"builderman","displayName":"builderman"}]}`))
	}))
	defer server.Close()

	m := &RobloxModule{
		config:   config.NewMockConfig(nil),
		client:   server.Client(),
		usersAPI: server.URL,
	}

	user, err := m.LookupUser("builderman")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(156), user.ID)
	assert.Equal(t, "builderman", user.Name)
}

func TestLookupUserNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	m := &RobloxModule{
		config:   config.NewMockConfig(nil),
		client:   server.Client(),
		usersAPI: server.URL,
	}

	user, err := m.LookupUser("nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAvatarURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "156", r.URL.Query().Get("userIds"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"targetId":156,"imageUrl":"https://cdn.example/headshot.png"}]}`))
	}))
	defer server.Close()

	m := &RobloxModule{
		config:        config.NewMockConfig(nil),
		client:        server.Client(),
		thumbnailsAPI: server.URL,
	}

	url, err := m.AvatarURL(156)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/headshot.png", url)
}
