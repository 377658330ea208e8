package assessment

import (
	"fmt"

	"careplan-assistant/internal/reference"
)

// CategoryAssessment holds the user's answers for a single category.
// The zero value means "nothing recorded yet" — absence and empty state
// are equivalent.
type CategoryAssessment struct {
	CheckedItems []string `json:"checkedItems"`
	DetailText   string   `json:"detailText"`
}

// IsEmpty reports whether the record carries no checked items and no detail.
func (a CategoryAssessment) IsEmpty() bool {
	return len(a.CheckedItems) == 0 && a.DetailText == ""
}

// Sheet is the working assessment state for the current editing session,
// keyed by category id. It is single-writer state owned by the App.
type Sheet struct {
	data map[string]CategoryAssessment
}

// NewSheet creates an empty assessment sheet.
func NewSheet() *Sheet {
	return &Sheet{data: make(map[string]CategoryAssessment)}
}

// SetCategory replaces the stored record for a category wholesale.
// Unknown category ids and checked items outside the category's checklist
// are rejected, so checkedItems is always a subset of the catalog items.
func (s *Sheet) SetCategory(categoryID string, checkedItems []string, detailText string) error {
	cat, ok := reference.CategoryByID(categoryID)
	if !ok {
		return fmt.Errorf("unknown assessment category: %s", categoryID)
	}
	for _, item := range checkedItems {
		if !cat.HasItem(item) {
			return fmt.Errorf("item %q is not in the %s checklist", item, cat.Name)
		}
	}

	record := CategoryAssessment{DetailText: detailText}
	record.CheckedItems = append(record.CheckedItems, checkedItems...)
	s.data[categoryID] = record
	return nil
}

// Category returns the stored record for a category, or an empty record
// when none has been saved.
func (s *Sheet) Category(categoryID string) CategoryAssessment {
	return s.data[categoryID]
}

// CountNonEmpty counts categories with at least one checked item. Used to
// gate integrated generation and to display progress.
func (s *Sheet) CountNonEmpty() int {
	count := 0
	for _, record := range s.data {
		if len(record.CheckedItems) > 0 {
			count++
		}
	}
	return count
}

// CheckedEntry pairs a category with its recorded assessment.
type CheckedEntry struct {
	Category   reference.AssessmentCategory
	Assessment CategoryAssessment
}

// Checked returns, in catalog order, every category with at least one
// checked item.
func (s *Sheet) Checked() []CheckedEntry {
	var entries []CheckedEntry
	for _, cat := range reference.Categories() {
		record, ok := s.data[cat.ID]
		if !ok || len(record.CheckedItems) == 0 {
			continue
		}
		entries = append(entries, CheckedEntry{Category: cat, Assessment: record})
	}
	return entries
}

// Reset clears the sheet for a new assessment.
func (s *Sheet) Reset() {
	s.data = make(map[string]CategoryAssessment)
}

// Snapshot returns a deep copy of the sheet's data for persistence.
func (s *Sheet) Snapshot() map[string]CategoryAssessment {
	snapshot := make(map[string]CategoryAssessment, len(s.data))
	for id, record := range s.data {
		copied := CategoryAssessment{DetailText: record.DetailText}
		copied.CheckedItems = append(copied.CheckedItems, record.CheckedItems...)
		snapshot[id] = copied
	}
	return snapshot
}

// Restore replaces the sheet's contents with a previously saved snapshot.
func (s *Sheet) Restore(snapshot map[string]CategoryAssessment) {
	s.data = make(map[string]CategoryAssessment, len(snapshot))
	for id, record := range snapshot {
		copied := CategoryAssessment{DetailText: record.DetailText}
		copied.CheckedItems = append(copied.CheckedItems, record.CheckedItems...)
		s.data[id] = copied
	}
}
