package analysis

import (
	"log"
	"regexp"

	domain "ai-chart-analyst/internal/domain/analysis"
)

// Options 控制解析行為。
type Options struct {
	// Degraded 啟用最後手段的降級萃取：標籤完全缺漏時，改用
	// 裸數字的出現順序與全文 buy/sell 關鍵字推測欄位。準確度
	// 沒有保證（敘述文字提到 buy 也會中），預設關閉，需要產品
	// 端明確同意才開。
	Degraded bool
}

// tradeFragmentRe 比對洩漏進敘述段落的「標籤+價位」片段，
// 解析成功後會從 explanation 裡剔除，避免與結構化建議重複。
var tradeFragmentRe = regexp.MustCompile(
	`(?i)\b(?:Entry|Stop\s*Loss|SL|Take\s*Profit(?:\s*\d)?|TP\s*\d?|Aksi|Action)\b\s*[:\-]?\s*(?:Buy|Sell|-?\d[\d.,]*)`)

// Parse 以預設選項解析 AI 回應文字。
func Parse(raw string, risk domain.RiskProfile) (domain.Analysis, error) {
	return ParseWithOptions(raw, risk, Options{})
}

// ParseWithOptions 把未結構化的 AI 回應轉成型別化的 Analysis。
// 單趟處理：正規化 → 定位敘述段落 → 解析建議區塊 → 驗證閘門。
// 敘述段落缺漏以 "-" 填補，屬正常情況；只有 Aksi/Entry/SL/TP
// 任一項無法回復時才失敗，因為殘缺的交易建議比明確的失敗更危險。
func ParseWithOptions(raw string, risk domain.RiskProfile, opts Options) (domain.Analysis, error) {
	if !risk.Valid() {
		return domain.Analysis{}, &domain.ValidationError{Field: "risk", Reason: "must be Low or Medium"}
	}

	text := Normalize(raw)
	scope := recommendationScope(text)

	action, actionOK := extractAction(scope)
	entry, entryOK := extractEntry(scope)
	stopLoss, slOK := extractStopLoss(scope)
	takeProfits := extractTakeProfits(scope)

	if opts.Degraded {
		action, actionOK, entry, entryOK, stopLoss, slOK, takeProfits =
			degradedFill(text, action, actionOK, entry, entryOK, stopLoss, slOK, takeProfits)
	}

	if !actionOK || !entryOK || !slOK || len(takeProfits) == 0 {
		log.Printf("analysis parse failed: missing crucial trade data, scope=%q", scope)
		return domain.Analysis{}, &domain.ParseError{
			Reason: "missing crucial trade data (Aksi, Entry, SL, or TP)",
			Scope:  scope,
		}
	}

	out := domain.Analysis{
		Trend:             narrative(text, FieldTrend),
		SupportResistance: narrative(text, FieldSupportResistance),
		Candlestick:       narrative(text, FieldCandlestick),
		Indicators:        narrative(text, FieldIndicators),
		Explanation:       explanation(text),
		Recommendation: domain.Recommendation{
			Action:         action,
			Entry:          entry,
			EntryRationale: extractEntryRationale(scope),
			StopLoss:       stopLoss,
			TakeProfit:     takeProfits,
			RiskProfile:    risk,
		},
	}
	return out, nil
}

// narrative 取出單一敘述段落；缺漏時以 "-" 哨兵值填補，絕不留空字串。
func narrative(text string, field FieldKind) string {
	section, ok := locateSection(text, field)
	if !ok {
		return domain.Placeholder
	}
	if s := cleanInline(section); s != "" {
		return s
	}
	return domain.Placeholder
}

// explanation 取出策略說明段落，並剔除混進敘述裡的交易數字片段，
// 確保敘述欄位不會重複（甚至矛盾於）結構化建議。
func explanation(text string) string {
	section, ok := locateSection(text, FieldExplanation)
	if !ok {
		return domain.Placeholder
	}
	s := tradeFragmentRe.ReplaceAllString(section, "")
	if s = cleanInline(s); s != "" {
		return s
	}
	return domain.Placeholder
}
