package analysis

import (
	"fmt"
	"time"
)

// Placeholder 為敘述欄位缺漏時的哨兵值，前端以此顯示「無資料」。
const Placeholder = "-"

// RiskProfile 表示呼叫端選擇的風險屬性，不由 AI 文字推導。
type RiskProfile string

const (
	RiskLow    RiskProfile = "Low"
	RiskMedium RiskProfile = "Medium"
)

// Valid 檢查風險屬性是否為支援的值。
func (r RiskProfile) Valid() bool {
	return r == RiskLow || r == RiskMedium
}

// Action 表示交易方向，僅有 Buy/Sell 兩種。
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionSell Action = "Sell"
)

// Recommendation 為 AI 解析後的交易計畫。價位一律保留原始字串，
// 因為尾端零在顯示上有意義，系統也不對這些值做任何運算。
type Recommendation struct {
	Action         Action      `json:"action"`
	Entry          string      `json:"entry"`
	EntryRationale string      `json:"entryRationale"`
	StopLoss       string      `json:"stopLoss"`
	TakeProfit     []string    `json:"takeProfit"`
	RiskProfile    RiskProfile `json:"riskProfile"`
}

// Analysis 為單次 AI 分析的結構化結果，建構後不再修改。
type Analysis struct {
	Trend             string         `json:"trend"`
	SupportResistance string         `json:"supportResistance"`
	Candlestick       string         `json:"candlestick"`
	Indicators        string         `json:"indicators"`
	Explanation       string         `json:"explanation"`
	Recommendation    Recommendation `json:"recommendation"`
}

// Validate 檢查必要交易欄位是否齊全。敘述欄位允許 "-"，
// 但 Action/Entry/StopLoss/TakeProfit 缺一即失敗。
func (a Analysis) Validate() error {
	if a.Recommendation.Action != ActionBuy && a.Recommendation.Action != ActionSell {
		return fmt.Errorf("action must be Buy or Sell")
	}
	if a.Recommendation.Entry == "" || a.Recommendation.Entry == Placeholder {
		return fmt.Errorf("entry price is required")
	}
	if a.Recommendation.StopLoss == "" || a.Recommendation.StopLoss == Placeholder {
		return fmt.Errorf("stop loss is required")
	}
	if len(a.Recommendation.TakeProfit) == 0 {
		return fmt.Errorf("at least one take profit is required")
	}
	if !a.Recommendation.RiskProfile.Valid() {
		return fmt.Errorf("risk profile %q unsupported", a.Recommendation.RiskProfile)
	}
	return nil
}

// Record 為分析的持久化紀錄：解析結果連同呼叫中繼資料與原始 AI 文字。
// 儲存層把 Parsed 視為不透明 JSON，讀回時不再驗證。
type Record struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"user_uid"`
	Pair      string    `json:"pair"`
	Timeframe string    `json:"timeframe"`
	Risk      string    `json:"risk"`
	AIText    string    `json:"ai_text"`
	Parsed    Analysis  `json:"parsed_json"`
	CreatedAt time.Time `json:"created_at"`
}
