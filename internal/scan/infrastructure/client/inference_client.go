// Package client 封装外部推理服务的 HTTP 客户端。
package client

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

	"github.com/wyfcoding/atlasvision/internal/scan/domain"
)

const (
	ocrPath      = "/v1/ocr"
	classifyPath = "/v1/classify"
	vqaPath      = "/v1/vqa"
)

// Config 推理服务客户端配置
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type inferenceClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewInferenceClient 创建推理服务客户端,每次调用共用同一个固定超时。
func NewInferenceClient(cfg Config) domain.InferenceProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &inferenceClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RecognizeText 调用 OCR 模型识别图片文本。
func (c *inferenceClient) RecognizeText(ctx context.Context, image []byte, contentType string) (*domain.OCRResult, error) {
	body, err := c.post(ctx, ocrPath, contentType, bytes.NewReader(image))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode ocr response: %w", err)
	}
	return &domain.OCRResult{Text: resp.Text, Raw: body}, nil
}

// Classify 调用分类模型获取候选标签,响应为按服务端顺序排列的数组。
func (c *inferenceClient) Classify(ctx context.Context, image []byte, contentType string) (*domain.ClassificationResult, error) {
	body, err := c.post(ctx, classifyPath, contentType, bytes.NewReader(image))
	if err != nil {
		return nil, err
	}

	var candidates []domain.Classification
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode classification response: %w", err)
	}
	return &domain.ClassificationResult{Candidates: candidates, Raw: body}, nil
}

// AnswerQuestion 调用视觉问答模型,图片以 base64 随 JSON 提交。
func (c *inferenceClient) AnswerQuestion(ctx context.Context, image []byte, contentType string, question string) (*domain.VQAResult, error) {
	payload, err := json.Marshal(map[string]string{
		"image_b64": base64.StdEncoding.EncodeToString(image),
		"question":  question,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode vqa request: %w", err)
	}

	body, err := c.post(ctx, vqaPath, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode vqa response: %w", err)
	}
	return &domain.VQAResult{Answer: resp.Answer, Raw: body}, nil
}

func (c *inferenceClient) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("inference %s returned status %d: %s", path, resp.StatusCode, truncate(raw, 512))
	}
	return raw, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
