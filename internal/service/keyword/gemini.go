package keyword

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxResponseBytes 响应体读取上限
const maxResponseBytes = 4 << 20

// generateRequest generateContent 请求体
type generateRequest struct {
	Contents []content `json:"contents"`
}

// content 请求和响应共用的内容结构
type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse generateContent 响应体，只解析需要的字段
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      *content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// text 取 candidates[0].content.parts[0].text，任一层缺失都返回错误
func (r *generateResponse) text() (string, error) {
	if len(r.Candidates) == 0 {
		return "", errNoCandidates
	}
	c := r.Candidates[0].Content
	if c == nil {
		return "", errNoContent
	}
	if len(c.Parts) == 0 {
		return "", errNoParts
	}
	text := c.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", errEmptyText
	}
	return text, nil
}

// endpoint POST {baseURL}/v1beta/models/{model}:generateContent?key={apiKey}
func (e *Extractor) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		e.cfg.BaseURL, url.PathEscape(e.cfg.Model), url.QueryEscape(e.cfg.APIKey))
}

// generate 发起一次调用并返回生成的文本，不重试
func (e *Extractor) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: truncate(string(data), 512)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return parsed.text()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
