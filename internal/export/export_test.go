package export

import (
	"strings"
	"testing"

	"careplan-assistant/internal/careplan"
)

func TestCSV(t *testing.T) {
	items := []careplan.Item{
		{
			CategoryName:   "健康状態",
			Needs:          "血圧管理が必要だが、安定した生活を送りたい",
			LongTermGoal:   "血圧が安定した状態を維持できる",
			ShortTermGoal:  "毎日服薬できる",
			ServiceContent: "服薬管理、バイタルチェック",
		},
		{
			CategoryName:   "ADL（日常生活動作）",
			Needs:          "歩行が不安定",
			LongTermGoal:   "転ばずに移動できる",
			ShortTermGoal:  "歩行器で歩ける",
			ServiceContent: "歩行訓練",
		},
	}

	got := CSV(items)

	if !strings.HasPrefix(got, bom) {
		t.Error("CSV must start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}
	if strings.TrimPrefix(lines[0], bom) != "No.,カテゴリ,ニーズ,長期目標,短期目標,サービス内容" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,健康状態,") {
		t.Errorf("First row mismatch: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2,ADL（日常生活動作）,") {
		t.Errorf("Second row mismatch: %s", lines[2])
	}
}

func TestCSVEscaping(t *testing.T) {
	items := []careplan.Item{{
		CategoryName:   "健康,状態",
		Needs:          "改行\nあり",
		LongTermGoal:   `引用"符あり`,
		ShortTermGoal:  "通常",
		ServiceContent: "通常",
	}}

	got := CSV(items)

	if !strings.Contains(got, `"健康,状態"`) {
		t.Error("Comma field must be quoted")
	}
	if !strings.Contains(got, "\"改行\nあり\"") {
		t.Error("Newline field must be quoted")
	}
	if !strings.Contains(got, `"引用""符あり"`) {
		t.Error("Internal quotes must be doubled")
	}
	if strings.Contains(got, `"通常"`) {
		t.Error("Plain fields must not be quoted")
	}
}

func TestCSVEmptyList(t *testing.T) {
	got := CSV(nil)
	if got != bom+"No.,カテゴリ,ニーズ,長期目標,短期目標,サービス内容\n" {
		t.Errorf("Empty list should render only the header: %q", got)
	}
}

func TestText(t *testing.T) {
	items := []careplan.Item{{
		CategoryName:   "健康状態",
		Needs:          "血圧管理が必要",
		LongTermGoal:   "血圧が安定する",
		ShortTermGoal:  "毎日服薬できる",
		ServiceContent: "服薬管理",
	}}

	got := Text(items, "施設サービス計画書（第2表）")

	if !strings.HasPrefix(got, "【施設サービス計画書（第2表）】\n") {
		t.Errorf("Plan name heading missing: %q", got)
	}
	if !strings.Contains(got, "■ 1. 健康状態\n") {
		t.Error("Numbered block heading missing")
	}
	for _, label := range []string{"【ニーズ】血圧管理が必要", "【長期目標】血圧が安定する", "【短期目標】毎日服薬できる", "【サービス内容】服薬管理"} {
		if !strings.Contains(got, label) {
			t.Errorf("Line missing: %s", label)
		}
	}
}
