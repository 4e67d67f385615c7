package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"listforge/internal/config"
	"listforge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a fake chat-completion server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.Config{
		OpenAIKey:     "test-key",
		OpenAIBaseURL: srv.URL,
		OpenAIModel:   "gpt-4",
	})
}

// completionResponse wraps a message content string in the chat-completion
// envelope the client expects.
func completionResponse(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return b
}

func TestGenerateList_Success(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Write(completionResponse(`{"title": "Essential Camping Gear", "content": ["Tent", "Sleeping bag", "Headlamp"]}`))
	})

	draft, err := client.GenerateList(context.Background(), "camping gear")
	require.NoError(t, err)
	assert.Equal(t, "Essential Camping Gear", draft.Title)
	assert.Equal(t, []string{"Tent", "Sleeping bag", "Headlamp"}, draft.Content)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4", gotReq.Model)
	assert.InDelta(t, 0.7, gotReq.Temperature, 0.0001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "camping gear", gotReq.Messages[1].Content)
}

func TestGenerateList_TruncatesToCap(t *testing.T) {
	items := make([]string, 11)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i+1)
	}
	payload, _ := json.Marshal(map[string]any{"title": "Long", "content": items})

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse(string(payload)))
	})

	draft, err := client.GenerateList(context.Background(), "long list")
	require.NoError(t, err)
	assert.Len(t, draft.Content, models.MaxContentItems)
	assert.Equal(t, "item 1", draft.Content[0])
	assert.Equal(t, "item 10", draft.Content[9])
}

func TestGenerateList_StringContentSplitByLine(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse(`{"title": "Plain", "content": "one\ntwo\nthree"}`))
	})

	draft, err := client.GenerateList(context.Background(), "plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, draft.Content)
}

func TestGenerateList_UpstreamStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "overloaded"}`))
	})

	draft, err := client.GenerateList(context.Background(), "anything")
	assert.Nil(t, draft)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "UPSTREAM_ERROR"))
	assert.Contains(t, err.Error(), "500")
}

func TestGenerateList_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body func() []byte
	}{
		{"Not JSON Body", func() []byte { return []byte("not json") }},
		{"No Choices", func() []byte { return []byte(`{"choices": []}`) }},
		{"Message Not JSON", func() []byte { return completionResponse("Sure! Here are some ideas:") }},
		{"Missing Title", func() []byte { return completionResponse(`{"content": ["a"]}`) }},
		{"Missing Content", func() []byte { return completionResponse(`{"title": "T"}`) }},
		{"Null Content", func() []byte { return completionResponse(`{"title": "T", "content": null}`) }},
		{"Content Wrong Type", func() []byte { return completionResponse(`{"title": "T", "content": 42}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write(tt.body())
			})

			draft, err := client.GenerateList(context.Background(), "prompt")
			assert.Nil(t, draft)
			require.Error(t, err)
			assert.True(t, models.IsCode(err, "UPSTREAM_ERROR"), "got: %v", err)
		})
	}
}

func TestGenerateList_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateList(ctx, "prompt")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "UPSTREAM_ERROR"))
}
