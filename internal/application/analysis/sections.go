package analysis

import (
	"regexp"
	"strings"
)

// FieldKind 列舉可定位的段落種類。
type FieldKind int

const (
	FieldTrend FieldKind = iota
	FieldSupportResistance
	FieldCandlestick
	FieldIndicators
	FieldExplanation
	FieldRecommendation
)

// sectionLabels 為各段落的標籤同義詞，依優先序嘗試。
// 上游模型有時用印尼文、有時用英文，也可能整段缺漏，
// 所以用標籤定位而不是行號定位。
var sectionLabels = map[FieldKind][]string{
	FieldTrend: {
		`Trend\s*Utama`,
		`Primary\s*Trend(?:\s*Direction)?`,
		`Trend\s*Analysis(?:\s*&?\s*Market\s*Structure)?`,
		`Trend\s*[:\-]`,
	},
	FieldSupportResistance: {
		`Support\s*(?:&|dan|and)?\s*Resistance`,
		`Key\s*Levels(?:\s*Identification)?`,
	},
	FieldCandlestick: {
		`Pola\s*Candlestick`,
		`Candlestick\s*Patterns?`,
		`Price\s*Action(?:\s*&?\s*Chart\s*Patterns?)?`,
	},
	FieldIndicators: {
		`Indikator(?:\s*Teknikal)?`,
		`Technical\s*Indicators(?:\s*Confluence)?`,
		`Indicators\s*[:\-]`,
	},
	FieldExplanation: {
		`Penjelasan\s*Analisa\s*(?:&|dan)?\s*Strategi`,
		`Penjelasan`,
		`Explanation`,
	},
	FieldRecommendation: {
		`Rekomendasi\s*Entry`,
		`Trading\s*Execution`,
		`Trading\s*Signal(?:\s*&?\s*Execution\s*Plan)?`,
		`Entry\s*Recommendation`,
	},
}

var (
	sectionStartRes map[FieldKind][]*regexp.Regexp
	// sectionStopRe 比對「下一個已知標籤」的行首出現位置，作為段落終點。
	sectionStopRe *regexp.Regexp
)

func init() {
	sectionStartRes = make(map[FieldKind][]*regexp.Regexp, len(sectionLabels))
	var all []string
	for kind, labels := range sectionLabels {
		for _, l := range labels {
			sectionStartRes[kind] = append(sectionStartRes[kind],
				regexp.MustCompile(`(?i)\b`+l+`\s*[:\-]?\s*`))
			all = append(all, l)
		}
	}
	sectionStopRe = regexp.MustCompile(`(?i)\n\s*(?:\d+\.\s*)?(?:` + strings.Join(all, "|") + `)`)
}

// locateSection 回傳 field 標籤之後、下一個已知標籤（或文末）之前的文字。
// 標籤缺漏是正常情況，以 ok=false 表示，不是錯誤。
func locateSection(text string, field FieldKind) (string, bool) {
	for _, re := range sectionStartRes[field] {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		rest := text[loc[1]:]
		if stop := sectionStopRe.FindStringIndex(rest); stop != nil {
			rest = rest[:stop[0]]
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// recommendationScope 找出建議區塊的搜尋範圍。沒有標頭時退回整段文字，
// 因為有些回應省略標頭但欄位仍散落在內文。永不失敗；空字串交給
// 下游萃取器去觸發驗證失敗，而不是在這裡 panic。
func recommendationScope(text string) string {
	if scope, ok := locateSection(text, FieldRecommendation); ok && scope != "" {
		return scope
	}
	return text
}
