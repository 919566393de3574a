// Package ai 提供視覺模型供應商的 HTTP 客戶端實作。
package ai

import (
	"errors"
	"fmt"
)

// 供應商層級的 sentinel error，呼叫端以 errors.Is 區分重試策略。
var (
	ErrNoAPIKey      = errors.New("ai: no usable API key")
	ErrRateLimit     = errors.New("ai: rate limited")
	ErrProviderDown  = errors.New("ai: provider unavailable")
	ErrEmptyResponse = errors.New("ai: empty response")
)

// ProviderError 包裝供應商回傳的錯誤，保留狀態碼供記錄。
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("ai provider error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ai provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError 判斷錯誤是否屬於供應商層級（網路、限流、金鑰、空回應）。
func IsProviderError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return true
	}
	return errors.Is(err, ErrNoAPIKey) ||
		errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrProviderDown) ||
		errors.Is(err, ErrEmptyResponse)
}
