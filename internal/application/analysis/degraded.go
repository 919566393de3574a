package analysis

import (
	"regexp"
	"strings"

	domain "ai-chart-analyst/internal/domain/analysis"
)

var (
	bareActionRe = regexp.MustCompile(`(?i)\b(buy|sell)\b`)
	decimalRe    = regexp.MustCompile(`\d+\.\d+`)
)

// degradedFill 在標籤式萃取失敗時，用位置式啟發法補缺口：
// 依序把文中前五個小數視為 Entry、SL、TP1..TP3，方向取全文第一個
// buy/sell。只填缺的欄位，已由標籤取得的值不動。
// 這是刻意鬆散的降級模式，獨立在這裡方便單測與停用。
func degradedFill(
	text string,
	action domain.Action, actionOK bool,
	entry string, entryOK bool,
	stopLoss string, slOK bool,
	takeProfits []string,
) (domain.Action, bool, string, bool, string, bool, []string) {
	if !actionOK {
		if m := bareActionRe.FindString(text); m != "" {
			action = domain.ActionBuy
			if strings.EqualFold(m, "sell") {
				action = domain.ActionSell
			}
			actionOK = true
		}
	}

	nums := decimalRe.FindAllString(text, 5)
	if !entryOK && len(nums) > 0 {
		entry = nums[0]
		entryOK = true
	}
	if !slOK && len(nums) > 1 {
		stopLoss = nums[1]
		slOK = true
	}
	if len(takeProfits) == 0 && len(nums) > 2 {
		for _, n := range nums[2:] {
			takeProfits = append(takeProfits, n)
		}
	}
	return action, actionOK, entry, entryOK, stopLoss, slOK, takeProfits
}
