package analysis

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound 表示指定的分析紀錄不存在，或呼叫者無權存取它。
var ErrRecordNotFound = errors.New("analysis record not found")

// ParseError 表示 AI 回應成功但無法萃取出完整交易建議。
// 與基礎設施錯誤（網路、逾時）分開，因為呼叫端的重試策略不同：
// ParseError 代表要重新詢問 AI，而不是換一把金鑰重打網路請求。
type ParseError struct {
	Reason string
	// Scope 為驗證失敗時搜尋過的文字範圍，僅供診斷記錄。
	Scope string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid AI format: %s", e.Reason)
}

// ValidationError 表示使用者輸入不完整，在呼叫 AI 之前就被擋下。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}
