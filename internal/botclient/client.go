// Package botclient is a thin JSON client for the external conversational
// feedback engine. The engine holds the chat transcripts and computes the
// sentiment summaries the dashboards read; this backend only pushes the
// collected feedback to it.
package botclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether a backend URL was configured. Feedback collection
// works without the engine; pushes are simply skipped.
func (c *Client) Enabled() bool { return c != nil && c.baseURL != "" }

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

func (c *Client) call(path string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("feedback engine: %s", apiResp.Description)
	}
	return apiResp.Result, nil
}

type FeedbackPush struct {
	TaskID       uint   `json:"task_id"`
	CourseCode   string `json:"course_code"`
	StudentEmail string `json:"student_email"`
	Text         string `json:"text"`
}

// PushFeedback hands a collected feedback text to the engine for analysis.
func (c *Client) PushFeedback(push FeedbackPush) error {
	_, err := c.call("/feedback/ingest", push)
	return err
}
