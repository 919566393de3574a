package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider 實作 CompletionProvider，呼叫 Gemini generateContent API。
// 可設定多把 API key，依序嘗試：遇到限流或供應商故障時換下一把。
type GeminiProvider struct {
	keys         []string
	baseURL      string
	model        string
	attemptDelay time.Duration
	client       *http.Client
}

// GeminiOption configures the Gemini provider.
type GeminiOption func(*GeminiProvider)

// WithGeminiModel sets the model.
func WithGeminiModel(model string) GeminiOption {
	return func(p *GeminiProvider) { p.model = model }
}

// WithGeminiHTTPClient sets a custom HTTP client.
func WithGeminiHTTPClient(client *http.Client) GeminiOption {
	return func(p *GeminiProvider) { p.client = client }
}

// WithGeminiBaseURL overrides the API endpoint, mainly for tests.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(p *GeminiProvider) { p.baseURL = strings.TrimRight(url, "/") }
}

// WithGeminiAttemptDelay 設定換金鑰前的等待時間。
func WithGeminiAttemptDelay(d time.Duration) GeminiOption {
	return func(p *GeminiProvider) { p.attemptDelay = d }
}

// NewGeminiProvider creates a Gemini provider.
func NewGeminiProvider(keys []string, opts ...GeminiOption) (*GeminiProvider, error) {
	usable := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) != "" {
			usable = append(usable, k)
		}
	}
	if len(usable) == 0 {
		return nil, ErrNoAPIKey
	}
	p := &GeminiProvider{
		keys:         usable,
		baseURL:      defaultBaseURL,
		model:        "gemini-2.5-flash",
		attemptDelay: 1200 * time.Millisecond,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// GenerateVision 送出 prompt 與圖片，回傳模型的純文字回應。
// 所有金鑰都失敗時回傳最後一次的錯誤。
func (p *GeminiProvider) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
				{Text: prompt},
			},
		}},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	var lastErr error
	for i, key := range p.keys {
		if i > 0 && p.attemptDelay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(p.attemptDelay):
			}
		}

		text, err := p.generateOnce(ctx, key, data)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", err
		}
		log.Printf("gemini: attempt failed key_index=%d err=%v", i, err)
	}
	return "", lastErr
}

func (p *GeminiProvider) generateOnce(ctx context.Context, key string, payload []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &ProviderError{Message: err.Error(), Err: ErrProviderDown}
	}
	defer resp.Body.Close()

	if err := p.checkError(resp); err != nil {
		return "", err
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ProviderError{Message: fmt.Sprintf("decode response: %v", err), Err: ErrProviderDown}
	}

	var parts []string
	if len(result.Candidates) > 0 {
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
	}
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", &ProviderError{Message: "no text in response", Err: ErrEmptyResponse}
	}
	return text, nil
}

func (p *GeminiProvider) checkError(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := string(body)
	var apiErr geminiErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
		msg = apiErr.Error.Message
	}
	pe := &ProviderError{StatusCode: resp.StatusCode, Message: msg, Err: ErrProviderDown}
	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusUnauthorized:
		pe.Err = ErrNoAPIKey
	case http.StatusTooManyRequests:
		pe.Err = ErrRateLimit
	}
	return pe
}

// ── Internal Types ──

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
