package urban

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"locust/internal/config"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModule(handler http.HandlerFunc) (*UrbanModule, *httptest.Server) {
	server := httptest.NewServer(handler)
	m := &UrbanModule{
		config: config.NewMockConfig(nil),
		client: server.Client(),
		apiURL: server.URL,
	}
	return m, server
}

func TestLookupReturnsDefinitions(t *testing.T) {
	m, server := newTestModule(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yeet", r.URL.Query().Get("term"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[{"word":"yeet","definition":"to throw","example":"yeet it","author":"someone","thumbs_up":10,"thumbs_down":1}]}`))
	})
	defer server.Close()

	defs, err := m.Lookup("yeet")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "yeet", defs[0].Word)
	assert.Equal(t, "to throw", defs[0].Definition)
	assert.Equal(t, 10, defs[0].ThumbsUp)
}

func TestLookupCapsResults(t *testing.T) {
	m, server := newTestModule(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[
			{"word":"a"},{"word":"a"},{"word":"a"},{"word":"a"},{"word":"a"},
			{"word":"a"},{"word":"a"},{"word":"a"},{"word":"a"},{"word":"a"},
			{"word":"a"},{"word":"a"}
		]}`))
	})
	defer server.Close()

	defs, err := m.Lookup("a")
	require.NoError(t, err)
	assert.Len(t, defs, maxDefinitions)
}

func TestLookupServerError(t *testing.T) {
	m, server := newTestModule(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := m.Lookup("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestPageButtonsDisableAtEdges(t *testing.T) {
	row := pageButtons("term", 0, 3)[0].(discordgo.ActionsRow)
	prev := row.Components[0].(discordgo.Button)
	next := row.Components[1].(discordgo.Button)
	assert.True(t, prev.Disabled)
	assert.False(t, next.Disabled)
	assert.Equal(t, "urban:page:1:term", next.CustomID)

	row = pageButtons("term", 2, 3)[0].(discordgo.ActionsRow)
	prev = row.Components[0].(discordgo.Button)
	next = row.Components[1].(discordgo.Button)
	assert.False(t, prev.Disabled)
	assert.True(t, next.Disabled)
}

func TestBuildDefinitionEmbedTruncates(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'x'
	}

	embed := buildDefinitionEmbed(Definition{Word: "w", Definition: string(long)}, 0, 1)
	assert.LessOrEqual(t, len(embed.Description), 2048)
	assert.Contains(t, embed.Footer.Text, "1/1")
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// Multibyte content must never be cut mid-rune.
	long := strings.Repeat("é", 30)
	got := truncate(long, 20)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 20)
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short", truncate("short", 20))
}
