// Package suggest is the deterministic, non-generative path: checked items
// map straight to template-backed care-plan entries, no external call.
package suggest

import (
	"careplan-assistant/internal/careplan"
	"careplan-assistant/internal/reference"
)

// Entry is one templated proposal for a checked item.
type Entry struct {
	ItemName       string
	Needs          string
	LongTermGoal   string
	ShortTermGoal  string
	ServiceContent string
}

// Suggest returns a template-backed entry for every checked item present in
// the table, in checked order. Items without a template are silently
// skipped; an empty result means "no suggestions found" and is the caller's
// condition to surface.
func Suggest(checkedItems []string, templates map[string]reference.ItemTemplate) []Entry {
	var entries []Entry
	for _, item := range checkedItems {
		tmpl, ok := templates[item]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ItemName:       item,
			Needs:          tmpl.Needs,
			LongTermGoal:   tmpl.LongTermGoal,
			ShortTermGoal:  tmpl.ShortTermGoal,
			ServiceContent: tmpl.ServiceContent,
		})
	}
	return entries
}

// ApplySelected maps the selected suggestions 1:1 into care-plan items,
// keeping the original suggestion order. The item name becomes the entry's
// category column. Out-of-range indices are ignored.
func ApplySelected(suggestions []Entry, selectedIndices []int) []careplan.Item {
	selected := make(map[int]bool, len(selectedIndices))
	for _, i := range selectedIndices {
		selected[i] = true
	}

	var items []careplan.Item
	for i, s := range suggestions {
		if !selected[i] {
			continue
		}
		items = append(items, careplan.Item{
			CategoryName:   s.ItemName,
			Needs:          s.Needs,
			LongTermGoal:   s.LongTermGoal,
			ShortTermGoal:  s.ShortTermGoal,
			ServiceContent: s.ServiceContent,
		})
	}
	return items
}
