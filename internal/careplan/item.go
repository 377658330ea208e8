// Package careplan holds the working care-plan entries and the parser that
// recovers them from generation output.
package careplan

import "fmt"

// Item is one row of the plan document. The 55-character goal rule is a
// prompt instruction only and is not enforced here.
type Item struct {
	CategoryName   string `json:"categoryName"`
	Needs          string `json:"needs"`
	LongTermGoal   string `json:"longTermGoal"`
	ShortTermGoal  string `json:"shortTermGoal"`
	ServiceContent string `json:"serviceContent"`
}

// List is the ordered working set of care-plan entries for the current
// editing session. Order is insertion order; there is no deduplication.
type List struct {
	items []Item
}

// NewList creates an empty item list.
func NewList() *List {
	return &List{}
}

// Append adds an item to the end of the list.
func (l *List) Append(item Item) {
	l.items = append(l.items, item)
}

// RemoveAt deletes the item at the given position.
func (l *List) RemoveAt(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("item index %d out of range (list has %d items)", index, len(l.items))
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// Clear empties the list for a new assessment.
func (l *List) Clear() {
	l.items = nil
}

// Items returns a copy of the entries in insertion order.
func (l *List) Items() []Item {
	items := make([]Item, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.items)
}

// Replace swaps the list contents for a loaded plan's items.
func (l *List) Replace(items []Item) {
	l.items = make([]Item, len(items))
	copy(l.items, items)
}
