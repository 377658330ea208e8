// Package export renders the working item list for spreadsheets and the
// clipboard.
package export

import (
	"fmt"
	"strings"

	"careplan-assistant/internal/careplan"
)

// BOM keeps Excel from misreading the UTF-8 CSV as Shift_JIS.
const bom = "\uFEFF"

const csvHeader = "No.,カテゴリ,ニーズ,長期目標,短期目標,サービス内容"

// CSV renders the items as UTF-8 CSV with a BOM and the fixed Japanese
// header row.
func CSV(items []careplan.Item) string {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(csvHeader)
	b.WriteString("\n")

	for i, item := range items {
		row := []string{
			fmt.Sprintf("%d", i+1),
			escapeCSV(item.CategoryName),
			escapeCSV(item.Needs),
			escapeCSV(item.LongTermGoal),
			escapeCSV(item.ShortTermGoal),
			escapeCSV(item.ServiceContent),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// escapeCSV quotes a field containing comma, newline or quote, doubling
// internal quotes.
func escapeCSV(field string) string {
	if strings.ContainsAny(field, ",\n\"") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}

// Text renders the items in the block format used for clipboard copy.
func Text(items []careplan.Item, planName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "【%s】\n\n", planName)

	for i, item := range items {
		fmt.Fprintf(&b, "■ %d. %s\n", i+1, item.CategoryName)
		fmt.Fprintf(&b, "【ニーズ】%s\n", item.Needs)
		fmt.Fprintf(&b, "【長期目標】%s\n", item.LongTermGoal)
		fmt.Fprintf(&b, "【短期目標】%s\n", item.ShortTermGoal)
		fmt.Fprintf(&b, "【サービス内容】%s\n\n", item.ServiceContent)
	}
	return b.String()
}
