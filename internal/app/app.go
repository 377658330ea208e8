// Package app owns the editing-session state: the assessment sheet, the
// working item list, and the current user / plan / service-type pointers.
// Every mutation that affects persistence writes through immediately.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"careplan-assistant/internal/assessment"
	"careplan-assistant/internal/careplan"
	"careplan-assistant/internal/export"
	"careplan-assistant/internal/llm"
	"careplan-assistant/internal/metrics"
	"careplan-assistant/internal/prompt"
	"careplan-assistant/internal/reference"
	"careplan-assistant/internal/storage"
	"careplan-assistant/internal/suggest"
)

// ErrNoSuggestions is returned when none of the checked items has a
// template entry.
var ErrNoSuggestions = errors.New("選択した項目に対応する提案が見つかりませんでした")

// Generator is the slice of the llm.Router the App depends on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (llm.ContentResponse, error)
	Mode() llm.Mode
}

// App wires the components together and is the single owner of the mutable
// session state.
type App struct {
	store     *storage.Store
	generator Generator
	metrics   *metrics.Store // nil disables recording

	sheet *assessment.Sheet
	items *careplan.List

	serviceType   reference.ServiceType
	currentUserID string
	currentPlanID string
}

// NewApp creates an App around its collaborators. metricsStore may be nil.
func NewApp(store *storage.Store, generator Generator, metricsStore *metrics.Store) *App {
	return &App{
		store:     store,
		generator: generator,
		metrics:   metricsStore,
		sheet:     assessment.NewSheet(),
		items:     careplan.NewList(),
	}
}

// Sheet exposes the working assessment sheet.
func (a *App) Sheet() *assessment.Sheet {
	return a.sheet
}

// Items exposes the working item list.
func (a *App) Items() *careplan.List {
	return a.items
}

// CurrentPlanID returns the id of the loaded plan, empty when editing a new
// one.
func (a *App) CurrentPlanID() string {
	return a.currentPlanID
}

// ServiceType returns the selected service type.
func (a *App) ServiceType() reference.ServiceType {
	return a.serviceType
}

// StartAssessment begins a fresh editing session for the given service
// type, clearing the working list, the sheet and the active-plan pointer.
func (a *App) StartAssessment(serviceTypeID string) error {
	st, ok := reference.ServiceTypeByID(serviceTypeID)
	if !ok {
		return fmt.Errorf("サービス種別を選択してください")
	}
	a.serviceType = st
	a.currentPlanID = ""
	a.items.Clear()
	a.sheet.Reset()
	return nil
}

func (a *App) planName() string {
	if a.serviceType.PlanName != "" {
		return a.serviceType.PlanName
	}
	return "サービス計画書（第2表）"
}

// GenerateFromCategory builds the single-category prompt, dispatches it and
// appends the recovered entry to the working list. Returns the appended
// items and whether the parser had to substitute the fallback record.
func (a *App) GenerateFromCategory(ctx context.Context, categoryID string) ([]careplan.Item, bool, error) {
	cat, ok := reference.CategoryByID(categoryID)
	if !ok {
		return nil, false, fmt.Errorf("unknown assessment category: %s", categoryID)
	}

	data := a.sheet.Category(categoryID)
	if len(data.CheckedItems) == 0 {
		return nil, false, fmt.Errorf("少なくとも1つの項目にチェックを入れてください")
	}

	p, err := prompt.BuildCategoryPrompt(cat, data, a.planName())
	if err != nil {
		return nil, false, err
	}

	result, fallback, err := a.generate(ctx, p)
	if err != nil {
		return nil, false, err
	}

	appended := make([]careplan.Item, 0, len(result))
	for _, item := range result {
		item.CategoryName = cat.Name
		a.items.Append(item)
		appended = append(appended, item)
	}
	return appended, fallback, nil
}

// GenerateFromAll builds the integrated prompt over every category with
// data and appends each recovered entry.
func (a *App) GenerateFromAll(ctx context.Context) ([]careplan.Item, bool, error) {
	if a.sheet.CountNonEmpty() == 0 {
		return nil, false, fmt.Errorf("少なくとも1つのカテゴリでチェックを入れてください")
	}

	p, err := prompt.BuildIntegratedPrompt(a.sheet.Checked(), a.planName())
	if err != nil {
		return nil, false, err
	}

	result, fallback, err := a.generate(ctx, p)
	if err != nil {
		return nil, false, err
	}

	for _, item := range result {
		a.items.Append(item)
	}
	return result, fallback, nil
}

// generate dispatches one prompt and records a metric row for the call.
func (a *App) generate(ctx context.Context, p string) ([]careplan.Item, bool, error) {
	start := time.Now()
	resp, err := a.generator.Generate(ctx, p)
	if err != nil {
		return nil, false, err
	}

	parsed := careplan.ParseResponse(resp.Content)

	if a.metrics != nil {
		if err := a.metrics.RecordUsage(string(a.generator.Mode()), resp.Usage, time.Since(start), parsed.Fallback); err != nil {
			log.Printf("メトリクスの記録に失敗: %v", err)
		}
	}
	return parsed.Items, parsed.Fallback, nil
}

// Suggestions returns the template-backed entries for the category's
// checked items. ErrNoSuggestions means no checked item had a template.
func (a *App) Suggestions(categoryID string) ([]suggest.Entry, error) {
	if _, ok := reference.CategoryByID(categoryID); !ok {
		return nil, fmt.Errorf("unknown assessment category: %s", categoryID)
	}

	data := a.sheet.Category(categoryID)
	if len(data.CheckedItems) == 0 {
		return nil, fmt.Errorf("項目をチェックしてから提案を表示してください")
	}

	entries := suggest.Suggest(data.CheckedItems, reference.Templates())
	if len(entries) == 0 {
		return nil, ErrNoSuggestions
	}
	return entries, nil
}

// AddSuggestions appends the selected suggestions to the working list and
// returns how many were added.
func (a *App) AddSuggestions(suggestions []suggest.Entry, selectedIndices []int) (int, error) {
	items := suggest.ApplySelected(suggestions, selectedIndices)
	if len(items) == 0 {
		return 0, fmt.Errorf("項目を選択してください")
	}
	for _, item := range items {
		a.items.Append(item)
	}
	return len(items), nil
}

// AddManualEntry validates and appends a hand-written entry. Nothing is
// mutated when validation fails.
func (a *App) AddManualEntry(item careplan.Item) error {
	if item.Needs == "" || item.LongTermGoal == "" || item.ShortTermGoal == "" {
		return fmt.Errorf("ニーズ・長期目標・短期目標は必須です")
	}
	a.items.Append(item)
	return nil
}

// SavePlan persists the working state. With overwrite set and a loaded
// plan, the existing record is refreshed in place; otherwise a new record
// is created and becomes the loaded plan.
func (a *App) SavePlan(overwrite bool) (string, error) {
	if a.items.Len() == 0 {
		return "", fmt.Errorf("保存する項目がありません")
	}

	planID, err := a.store.SavePlan(
		a.items.Items(),
		a.sheet.Snapshot(),
		a.serviceType.ID,
		a.currentUserID,
		a.currentPlanID,
		overwrite,
	)
	if err != nil {
		return "", err
	}
	a.currentPlanID = planID
	return planID, nil
}

// LoadPlan replaces the working state with a saved plan's snapshot.
func (a *App) LoadPlan(planID string) error {
	plan, ok := a.store.PlanByID(planID)
	if !ok {
		return fmt.Errorf("計画書が見つかりません: %s", planID)
	}

	if st, ok := reference.ServiceTypeByID(plan.ServiceType); ok {
		a.serviceType = st
	}
	a.items.Replace(plan.Items)
	a.sheet.Restore(plan.AssessmentData)
	a.currentPlanID = plan.ID
	if plan.UserID != "" {
		a.currentUserID = plan.UserID
	}
	return nil
}

// DeletePlan removes a saved plan. When it is the loaded plan, the pointer
// is cleared so the next save creates a new record.
func (a *App) DeletePlan(planID string) error {
	if err := a.store.DeletePlan(planID); err != nil {
		return err
	}
	if a.currentPlanID == planID {
		a.currentPlanID = ""
	}
	return nil
}

// RegisterUser validates and stores a new user record.
func (a *App) RegisterUser(initial string, age int, careLevel string) (string, error) {
	return a.store.AddUser(initial, age, careLevel)
}

// SelectUser makes subsequent saves belong to the given user.
func (a *App) SelectUser(userID string) error {
	if _, ok := a.store.UserByID(userID); !ok {
		return fmt.Errorf("利用者が見つかりません: %s", userID)
	}
	a.currentUserID = userID
	return nil
}

// DeleteUser removes the user and all their plans. The current-user and
// active-plan pointers are cleared when they referenced the deleted user.
func (a *App) DeleteUser(userID string) error {
	owned := a.store.PlansForUser(userID)
	if err := a.store.DeleteUserCascade(userID); err != nil {
		return err
	}
	if a.currentUserID == userID {
		a.currentUserID = ""
	}
	for _, p := range owned {
		if a.currentPlanID == p.ID {
			a.currentPlanID = ""
		}
	}
	return nil
}

// ExportCSV renders the working list as CSV.
func (a *App) ExportCSV() string {
	return export.CSV(a.items.Items())
}

// ExportText renders the working list in the clipboard block format.
func (a *App) ExportText() string {
	return export.Text(a.items.Items(), a.planName())
}
