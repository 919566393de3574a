package analysis

import (
	"regexp"
	"strings"

	domain "ai-chart-analyst/internal/domain/analysis"
)

// numPattern 接受帶千分位逗號與小數點的價位，不吃句尾標點。
const numPattern = `-?\d+(?:[.,]\d+)*`

var (
	actionRe = regexp.MustCompile(`(?i)\b(?:Aksi|Action|Signal(?:\s*Type)?)\s*[:\-]?\s*\(?\s*(Buy|Sell)\b`)

	entryRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bEntry(?:\s*(?:Price|Zone|Level))?\s*[:\-]?\s*(` + numPattern + `)`),
		regexp.MustCompile(`(?i)\b(?:Buy|Sell)\s*(?:Limit|Stop)\s*[:\-]?\s*(` + numPattern + `)`),
		regexp.MustCompile(`(?i)\bHarga\s*Entry\s*[:\-]?\s*(` + numPattern + `)`),
	}

	stopLossRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bStop\s*Loss(?:\s*Level)?\s*[:\-]?\s*(` + numPattern + `)`),
		regexp.MustCompile(`(?i)\bSL\s*[:\-]?\s*(` + numPattern + `)`),
		regexp.MustCompile(`(?i)\bStop\s*[:\-]\s*(` + numPattern + `)`),
	}

	entryRationaleRe = regexp.MustCompile(`(?i)\b(?:Rasional|Alasan)\s*Entry\s*[:\-]?\s*([^\n]+)`)

	// 依編號抓 TP1..TP3；順序有意義。
	takeProfitNumberedRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:Take\s*Profit|TP)\s*1\s*[:\-]?\s*(` + numPattern + `)`),
		regexp.MustCompile(`(?i)\b(?:Take\s*Profit|TP)\s*2\s*[:\-]?\s*(` + numPattern + `)`),
		regexp.MustCompile(`(?i)\b(?:Take\s*Profit|TP)\s*3\s*[:\-]?\s*(` + numPattern + `)`),
	}
	// 後援：單一標籤後接逗號/分號分隔的清單。
	takeProfitListRe = regexp.MustCompile(`(?i)\bTake\s*Profit(?:\s*Targets?)?\s*[:\-]\s*([^\n]+)`)

	numTokenRe = regexp.MustCompile(numPattern)
)

func extractAction(scope string) (domain.Action, bool) {
	m := actionRe.FindStringSubmatch(scope)
	if m == nil {
		return "", false
	}
	if strings.EqualFold(m[1], "sell") {
		return domain.ActionSell, true
	}
	return domain.ActionBuy, true
}

func extractEntry(scope string) (string, bool) {
	return firstNumericMatch(scope, entryRes)
}

func extractStopLoss(scope string) (string, bool) {
	return firstNumericMatch(scope, stopLossRes)
}

func extractEntryRationale(scope string) string {
	m := entryRationaleRe.FindStringSubmatch(scope)
	if m == nil {
		return ""
	}
	return cleanInline(m[1])
}

// extractTakeProfits 先試編號標籤 TP1..TP3，完全沒有編號時退回
// 單一標籤清單格式。一無所獲時回傳空切片（觸發整體驗證失敗）。
func extractTakeProfits(scope string) []string {
	out := make([]string, 0, 3)
	for _, re := range takeProfitNumberedRes {
		m := re.FindStringSubmatch(scope)
		if m == nil {
			continue
		}
		if v := cleanNumeric(m[1]); v != "" {
			out = append(out, v)
		}
	}
	if len(out) > 0 {
		return out
	}
	m := takeProfitListRe.FindStringSubmatch(scope)
	if m == nil {
		return out
	}
	for _, part := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' || r == ';' }) {
		tok := numTokenRe.FindString(part)
		if tok == "" {
			continue
		}
		if v := cleanNumeric(tok); v != "" {
			out = append(out, v)
		}
		if len(out) == 3 {
			break
		}
	}
	return out
}

func firstNumericMatch(scope string, res []*regexp.Regexp) (string, bool) {
	for _, re := range res {
		m := re.FindStringSubmatch(scope)
		if m == nil {
			continue
		}
		if v := cleanNumeric(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}
