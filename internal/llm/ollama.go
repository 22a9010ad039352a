package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// UpstreamError возникает при транспортной ошибке или неуспешном статусе
// генеративного сервиса
type UpstreamError struct {
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service error: %v", e.Cause)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

// Client - клиент Ollama /api/generate. Без ретраев и без стриминга:
// зона ответственности заканчивается на получении полного текста ответа.
type Client struct {
	httpClient *http.Client
	url        string
	model      string
	timeout    time.Duration
}

// NewClient создает клиент генеративного сервиса
func NewClient(url, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		url:        url,
		model:      model,
		timeout:    timeout,
	}
}

// generateRequest - тело запроса к Ollama API
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

// generateResponse - тело ответа Ollama API
type generateResponse struct {
	Response string `json:"response"`
}

// Generate отправляет промпт генеративному сервису и возвращает полный
// текст ответа. На каждый вызов накладывается свой дедлайн; отмена
// внешнего контекста также прерывает запрос.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &UpstreamError{Cause: fmt.Errorf("failed to encode request: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &UpstreamError{Cause: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[LLM] Sending generate request: model=%s prompt_length=%d", c.model, len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &UpstreamError{Cause: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, data)}
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &UpstreamError{Cause: fmt.Errorf("failed to decode response envelope: %w", err)}
	}

	log.Printf("[LLM] Generate response received: length=%d", len(result.Response))
	return result.Response, nil
}
