package replicate

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// UpstreamTimeout bounds the whole background-removal exchange, matching
// the budget the frontend expects before it gives up.
const UpstreamTimeout = 25 * time.Second

type Client struct {
	baseURL      string
	apiToken     string
	modelVersion string
	httpClient   *http.Client
	pollInterval time.Duration
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"` // "starting", "processing", "succeeded", "failed", "canceled"
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func NewClient(baseURL, apiToken, modelVersion string) *Client {
	return &Client{
		baseURL:      baseURL,
		apiToken:     apiToken,
		modelVersion: modelVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollInterval: time.Second,
	}
}

// RemoveBackground sends an image through the background-removal model and
// returns the result as a data URI. The context carries the upstream
// budget; once it expires the whole request fails, there is no retry.
func (c *Client) RemoveBackground(ctx context.Context, imageDataURI string) (string, error) {
	pred, err := c.createPrediction(ctx, imageDataURI)
	if err != nil {
		return "", err
	}

	pred, err = c.waitForPrediction(ctx, pred)
	if err != nil {
		return "", err
	}

	outputURL, err := outputURL(pred.Output)
	if err != nil {
		return "", err
	}

	return c.downloadAsDataURI(ctx, outputURL)
}

func (c *Client) createPrediction(ctx context.Context, imageDataURI string) (*prediction, error) {
	requestBody := map[string]interface{}{
		"version": c.modelVersion,
		"input": map[string]interface{}{
			"image": imageDataURI,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/predictions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.apiToken)
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

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create prediction: status %d, body: %s", resp.StatusCode, string(body))
	}

	var pred prediction
	if err := json.Unmarshal(body, &pred); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	return &pred, nil
}

func (c *Client) waitForPrediction(ctx context.Context, pred *prediction) (*prediction, error) {
	for {
		switch pred.Status {
		case "succeeded":
			return pred, nil
		case "failed", "canceled":
			return nil, fmt.Errorf("prediction %s: %s", pred.Status, pred.Error)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("background removal timed out: %w", ctx.Err())
		case <-time.After(c.pollInterval):
		}

		updated, err := c.getPrediction(ctx, pred.URLs.Get)
		if err != nil {
			return nil, err
		}
		pred = updated
	}
}

func (c *Client) getPrediction(ctx context.Context, getURL string) (*prediction, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", getURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get prediction: status %d, body: %s", resp.StatusCode, string(body))
	}

	var pred prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &pred, nil
}

func (c *Client) downloadAsDataURI(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to download output: status %d, body: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read output: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// outputURL extracts the result file URL. The model returns either a bare
// URL string or a single-element array depending on version.
func outputURL(output json.RawMessage) (string, error) {
	if len(output) == 0 {
		return "", fmt.Errorf("prediction succeeded but output is empty")
	}

	var single string
	if err := json.Unmarshal(output, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(output, &many); err == nil && len(many) > 0 {
		return many[0], nil
	}

	return "", fmt.Errorf("unexpected prediction output: %s", string(output))
}
