package falai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	trainingEndpoint   = "fal-ai/flux-lora-fast-training"
	generationEndpoint = "fal-ai/flux-lora"

	trainWebhookPath = "/fal-ai/webhook/train"
	imageWebhookPath = "/fal-ai/webhook/image"
)

// Client submits asynchronous jobs to the fal.ai queue API. Submissions are
// fire-and-forget: completion is observed only through the webhook routes
// registered at submit time.
type Client struct {
	baseURL        string
	apiKey         string
	webhookBaseURL string
	httpClient     *http.Client
}

// QueueSubmission is the correlation handle returned by the queue. RequestID
// is the job identifier every persisted row is keyed by.
type QueueSubmission struct {
	RequestID   string `json:"request_id"`
	ResponseURL string `json:"response_url"`
	StatusURL   string `json:"status_url"`
}

type trainingInput struct {
	ImagesDataURL string `json:"images_data_url"`
	TriggerWord   string `json:"trigger_word"`
}

type generationInput struct {
	Prompt string `json:"prompt"`
	Loras  []lora `json:"loras"`
}

type lora struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

func NewClient(baseURL, apiKey, webhookBaseURL string) *Client {
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		apiKey:         apiKey,
		webhookBaseURL: strings.TrimSuffix(webhookBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SubmitTraining enqueues a LoRA training job for a previously uploaded zip
// of images. The trigger word conditions the resulting model.
func (c *Client) SubmitTraining(ctx context.Context, zipURL, triggerWord string) (*QueueSubmission, error) {
	input := trainingInput{
		ImagesDataURL: zipURL,
		TriggerWord:   triggerWord,
	}
	return c.submit(ctx, trainingEndpoint, c.webhookBaseURL+trainWebhookPath, input)
}

// SubmitGeneration enqueues an image-generation job conditioned on a trained
// weights path and a text prompt.
func (c *Client) SubmitGeneration(ctx context.Context, prompt, loraPath string) (*QueueSubmission, error) {
	input := generationInput{
		Prompt: prompt,
		Loras:  []lora{{Path: loraPath, Scale: 1}},
	}
	return c.submit(ctx, generationEndpoint, c.webhookBaseURL+imageWebhookPath, input)
}

func (c *Client) submit(ctx context.Context, endpoint, webhookURL string, input any) (*QueueSubmission, error) {
	jsonData, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	submitURL := c.baseURL + "/" + endpoint + "?fal_webhook=" + url.QueryEscape(webhookURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, submitURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("failed to submit job to %s: status %d, body: %s", endpoint, resp.StatusCode, string(body))
	}

	var result QueueSubmission
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	// The queue must hand back a correlation id; anything else is a provider
	// contract violation and must not reach the database.
	if result.RequestID == "" {
		return nil, fmt.Errorf("request_id is empty in response, body: %s", string(body))
	}

	return &result, nil
}
