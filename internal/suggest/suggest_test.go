package suggest

import (
	"testing"

	"careplan-assistant/internal/reference"
)

func TestSuggest(t *testing.T) {
	table := map[string]reference.ItemTemplate{
		"歩行が不安定": {
			Needs:          "歩行がふらつくが、転ばずに自分で歩きたい",
			LongTermGoal:   "安全に屋内を移動することができる",
			ShortTermGoal:  "歩行器を使って安定して歩くことができる",
			ServiceContent: "歩行訓練、移動時の見守り・介助",
		},
	}

	t.Run("SkipsUntemplatedItems", func(t *testing.T) {
		got := Suggest([]string{"寝返りが困難", "歩行が不安定"}, table)
		if len(got) != 1 {
			t.Fatalf("Expected 1 suggestion, got %d", len(got))
		}
		if got[0].ItemName != "歩行が不安定" {
			t.Errorf("Unexpected item: %s", got[0].ItemName)
		}
		if got[0].Needs != table["歩行が不安定"].Needs {
			t.Error("Template fields must be copied verbatim")
		}
	})

	t.Run("EmptyWhenNothingMatches", func(t *testing.T) {
		got := Suggest([]string{"寝返りが困難", "起き上がりが困難"}, table)
		if len(got) != 0 {
			t.Errorf("Expected no suggestions, got %d", len(got))
		}
	})

	t.Run("PreservesCheckedOrder", func(t *testing.T) {
		bigger := map[string]reference.ItemTemplate{
			"歩行が不安定":  {Needs: "a"},
			"転倒リスクがある": {Needs: "b"},
		}
		got := Suggest([]string{"転倒リスクがある", "歩行が不安定"}, bigger)
		if len(got) != 2 {
			t.Fatalf("Expected 2 suggestions, got %d", len(got))
		}
		if got[0].ItemName != "転倒リスクがある" || got[1].ItemName != "歩行が不安定" {
			t.Errorf("Checked order not preserved: %s, %s", got[0].ItemName, got[1].ItemName)
		}
	})

	t.Run("RealTemplateTableCoversScenario", func(t *testing.T) {
		got := Suggest([]string{"寝返りが困難", "歩行が不安定"}, reference.Templates())
		for _, s := range got {
			if s.Needs == "" || s.LongTermGoal == "" || s.ShortTermGoal == "" || s.ServiceContent == "" {
				t.Errorf("Template entry for %s has empty fields", s.ItemName)
			}
		}
	})
}

func TestApplySelected(t *testing.T) {
	suggestions := []Entry{
		{ItemName: "歩行が不安定", Needs: "n0"},
		{ItemName: "転倒リスクがある", Needs: "n1"},
		{ItemName: "尿失禁がある", Needs: "n2"},
	}

	t.Run("FiltersBySelection", func(t *testing.T) {
		items := ApplySelected(suggestions, []int{2, 0})
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		// Order follows the suggestion list, not the selection order.
		if items[0].CategoryName != "歩行が不安定" || items[1].CategoryName != "尿失禁がある" {
			t.Errorf("Suggestion order not preserved: %+v", items)
		}
		if items[0].Needs != "n0" {
			t.Errorf("Fields not mapped: %+v", items[0])
		}
	})

	t.Run("IgnoresOutOfRangeIndices", func(t *testing.T) {
		items := ApplySelected(suggestions, []int{1, 7, -3})
		if len(items) != 1 {
			t.Fatalf("Expected 1 item, got %d", len(items))
		}
		if items[0].CategoryName != "転倒リスクがある" {
			t.Errorf("Unexpected item: %+v", items[0])
		}
	})

	t.Run("EmptySelection", func(t *testing.T) {
		if items := ApplySelected(suggestions, nil); len(items) != 0 {
			t.Errorf("Expected no items, got %d", len(items))
		}
	})
}
