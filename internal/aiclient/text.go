package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrEmptyPrompt    = errors.New("prompt cannot be empty")
	ErrQuotaExceeded  = errors.New("text api quota exceeded")
	ErrContentBlocked = errors.New("content blocked by safety filters")
)

// TextClient 生成式文本 API 的瘦客户端（聊天、季节建议、病害处置建议）
type TextClient struct {
	endpoint string
	apiKey   string
	model    string
	hc       *http.Client
}

func NewTextClient(endpoint, apiKey, model string) *TextClient {
	return &TextClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		hc:       &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Model    string    `json:"model"`
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate 发送 prompt 并返回首个候选文本
func (c *TextClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	reqBody := generateRequest{
		Model:    c.model,
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", ErrQuotaExceeded
	default:
		if bytes.Contains(body, []byte("SAFETY")) || bytes.Contains(body, []byte("blocked")) {
			return "", ErrContentBlocked
		}
		return "", fmt.Errorf("text endpoint returned %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response received from text api")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
