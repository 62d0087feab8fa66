package falai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-ai-backend/internal/falai"
)

func TestSubmitTraining(t *testing.T) {
	var gotPath, gotWebhook, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotWebhook = r.URL.Query().Get("fal_webhook")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]string{
			"request_id":   "req-123",
			"response_url": "https://queue.test/requests/req-123",
		})
	}))
	defer server.Close()

	client := falai.NewClient(server.URL, "test-key", "https://api.example.com")
	submission, err := client.SubmitTraining(context.Background(), "https://storage.test/jane.zip", "jane")
	require.NoError(t, err)

	assert.Equal(t, "req-123", submission.RequestID)
	assert.Equal(t, "/fal-ai/flux-lora-fast-training", gotPath)
	assert.Equal(t, "https://api.example.com/fal-ai/webhook/train", gotWebhook)
	assert.Equal(t, "Key test-key", gotAuth)
	assert.Equal(t, "https://storage.test/jane.zip", gotBody["images_data_url"])
	assert.Equal(t, "jane", gotBody["trigger_word"])
}

func TestSubmitGeneration(t *testing.T) {
	var gotPath, gotWebhook string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotWebhook = r.URL.Query().Get("fal_webhook")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]string{"request_id": "req-456"})
	}))
	defer server.Close()

	client := falai.NewClient(server.URL, "test-key", "https://api.example.com/")
	submission, err := client.SubmitGeneration(context.Background(), "portrait at dusk", "loras/jane.safetensors")
	require.NoError(t, err)

	assert.Equal(t, "req-456", submission.RequestID)
	assert.Equal(t, "/fal-ai/flux-lora", gotPath)
	assert.Equal(t, "https://api.example.com/fal-ai/webhook/image", gotWebhook)
	assert.Equal(t, "portrait at dusk", gotBody["prompt"])

	loras, ok := gotBody["loras"].([]any)
	require.True(t, ok)
	require.Len(t, loras, 1)
	lora := loras[0].(map[string]any)
	assert.Equal(t, "loras/jane.safetensors", lora["path"])
	assert.Equal(t, float64(1), lora["scale"])
}

func TestSubmit_ProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := falai.NewClient(server.URL, "bad-key", "https://api.example.com")
	_, err := client.SubmitGeneration(context.Background(), "portrait", "loras/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSubmit_EmptyRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response_url": "https://queue.test/x"})
	}))
	defer server.Close()

	client := falai.NewClient(server.URL, "test-key", "https://api.example.com")
	_, err := client.SubmitTraining(context.Background(), "zip", "word")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_id is empty")
}

func TestSubmit_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := falai.NewClient(server.URL, "test-key", "https://api.example.com")
	_, err := client.SubmitTraining(context.Background(), "zip", "word")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
