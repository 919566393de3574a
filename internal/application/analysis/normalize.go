package analysis

import (
	"regexp"
	"strings"
)

var (
	markdownNoiseRe = regexp.MustCompile("[*`#]+|--+")
	spaceRunRe      = regexp.MustCompile(`[ \t]{2,}`)
	blankLineRe     = regexp.MustCompile(`\n{3,}`)
	inlineSpaceRe   = regexp.MustCompile(`\s+`)
	nonNumericRe    = regexp.MustCompile(`[^0-9.,\-]`)
)

// Normalize 清掉 markdown 雜訊（*、反引號、#、連字線分隔）並壓縮空白，
// 不動到數字與標籤內容。純函式、不會失敗，且重複套用結果不變。
func Normalize(raw string) string {
	t := strings.ReplaceAll(raw, "\r\n", "\n")
	t = markdownNoiseRe.ReplaceAllString(t, "")
	t = strings.ReplaceAll(t, "\t", " ")
	t = spaceRunRe.ReplaceAllString(t, " ")
	t = blankLineRe.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// cleanInline 把敘述欄位壓成單行：所有空白（含換行）縮成一個空格。
func cleanInline(s string) string {
	return strings.TrimSpace(inlineSpaceRe.ReplaceAllString(s, " "))
}

// cleanNumeric 移除價位字串中非 [0-9.,-] 的字元。不轉成數值型別：
// 系統不對價位做運算，字串原樣保留尾端零。
func cleanNumeric(s string) string {
	return strings.Trim(nonNumericRe.ReplaceAllString(s, ""), ",")
}
