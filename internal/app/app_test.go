package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"careplan-assistant/internal/careplan"
	"careplan-assistant/internal/database"
	"careplan-assistant/internal/llm"
	"careplan-assistant/internal/metrics"
	"careplan-assistant/internal/storage"
)

type mockGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.response}, nil
}

func (m *mockGenerator) Mode() llm.Mode { return llm.ModeRemote }

func newTestApp(t *testing.T, gen Generator) *App {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return NewApp(store, gen, nil)
}

func checkItems(t *testing.T, a *App, categoryID string, items []string, detail string) {
	t.Helper()
	if err := a.Sheet().SetCategory(categoryID, items, detail); err != nil {
		t.Fatalf("SetCategory failed: %v", err)
	}
}

func TestStartAssessment(t *testing.T) {
	a := newTestApp(t, &mockGenerator{})

	t.Run("UnknownServiceType", func(t *testing.T) {
		if err := a.StartAssessment("hospital"); err == nil {
			t.Error("Expected an error for unknown service type")
		}
	})

	t.Run("ResetsSession", func(t *testing.T) {
		if err := a.StartAssessment("facility"); err != nil {
			t.Fatal(err)
		}
		checkItems(t, a, "adl", []string{"歩行が不安定"}, "")
		a.Items().Append(careplan.Item{Needs: "n"})

		if err := a.StartAssessment("home"); err != nil {
			t.Fatal(err)
		}
		if a.Items().Len() != 0 {
			t.Error("Working list must be cleared")
		}
		if a.Sheet().CountNonEmpty() != 0 {
			t.Error("Assessment sheet must be cleared")
		}
		if a.CurrentPlanID() != "" {
			t.Error("Active-plan pointer must be cleared")
		}
		if a.ServiceType().ID != "home" {
			t.Errorf("Service type = %s, want home", a.ServiceType().ID)
		}
	})
}

func TestGenerateFromCategory(t *testing.T) {
	gen := &mockGenerator{
		response: `{"needs": "歩行が不安定だが、自分で歩きたい", "longTermGoal": "安全に移動できる", "shortTermGoal": "歩行器で歩ける", "serviceContent": "歩行訓練"}`,
	}
	a := newTestApp(t, gen)
	if err := a.StartAssessment("facility"); err != nil {
		t.Fatal(err)
	}

	t.Run("RequiresCheckedItems", func(t *testing.T) {
		if _, _, err := a.GenerateFromCategory(context.Background(), "adl"); err == nil {
			t.Error("Expected an error when nothing is checked")
		}
	})

	t.Run("AppendsWithCategoryName", func(t *testing.T) {
		checkItems(t, a, "adl", []string{"歩行が不安定"}, "ふらつきあり")

		items, fallback, err := a.GenerateFromCategory(context.Background(), "adl")
		if err != nil {
			t.Fatalf("GenerateFromCategory failed: %v", err)
		}
		if fallback {
			t.Error("Well-formed response must not report a fallback")
		}
		if len(items) != 1 {
			t.Fatalf("Expected 1 item, got %d", len(items))
		}
		if items[0].CategoryName != "ADL（日常生活動作）" {
			t.Errorf("Category name not stamped: %s", items[0].CategoryName)
		}
		if a.Items().Len() != 1 {
			t.Errorf("Working list length = %d, want 1", a.Items().Len())
		}
		if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "歩行が不安定") {
			t.Error("Prompt did not carry the checked items")
		}
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		if _, _, err := a.GenerateFromCategory(context.Background(), "nope"); err == nil {
			t.Error("Expected an error for unknown category")
		}
	})
}

func TestGenerateFromCategoryFallback(t *testing.T) {
	gen := &mockGenerator{response: "生成できませんでした。"}
	a := newTestApp(t, gen)
	if err := a.StartAssessment("facility"); err != nil {
		t.Fatal(err)
	}
	checkItems(t, a, "adl", []string{"歩行が不安定"}, "")

	items, fallback, err := a.GenerateFromCategory(context.Background(), "adl")
	if err != nil {
		t.Fatalf("GenerateFromCategory failed: %v", err)
	}
	if !fallback {
		t.Error("Unparseable response must report a fallback")
	}
	if len(items) != 1 || items[0].Needs == "" {
		t.Errorf("Fallback item missing: %+v", items)
	}
}

func TestGenerateFromCategoryBackendError(t *testing.T) {
	gen := &mockGenerator{err: errors.New("boom")}
	a := newTestApp(t, gen)
	if err := a.StartAssessment("facility"); err != nil {
		t.Fatal(err)
	}
	checkItems(t, a, "adl", []string{"歩行が不安定"}, "")

	if _, _, err := a.GenerateFromCategory(context.Background(), "adl"); err == nil {
		t.Fatal("Expected the backend error to surface")
	}
	if a.Items().Len() != 0 {
		t.Error("Failed generation must not touch the working list")
	}
}

func TestGenerateFromAll(t *testing.T) {
	gen := &mockGenerator{
		response: `[
			{"categoryName": "健康状態", "needs": "n1", "longTermGoal": "l1", "shortTermGoal": "s1", "serviceContent": "c1"},
			{"categoryName": "ADL（日常生活動作）", "needs": "n2", "longTermGoal": "l2", "shortTermGoal": "s2", "serviceContent": "c2"}
		]`,
	}
	a := newTestApp(t, gen)
	if err := a.StartAssessment("facility"); err != nil {
		t.Fatal(err)
	}

	t.Run("RequiresData", func(t *testing.T) {
		if _, _, err := a.GenerateFromAll(context.Background()); err == nil {
			t.Error("Expected an error when the sheet is empty")
		}
	})

	t.Run("AppendsAllEntries", func(t *testing.T) {
		checkItems(t, a, "health_status", []string{"血圧管理が必要"}, "")
		checkItems(t, a, "adl", []string{"歩行が不安定"}, "")

		items, fallback, err := a.GenerateFromAll(context.Background())
		if err != nil {
			t.Fatalf("GenerateFromAll failed: %v", err)
		}
		if fallback {
			t.Error("Well-formed array must not report a fallback")
		}
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if items[0].CategoryName != "健康状態" {
			t.Errorf("Category name from response lost: %s", items[0].CategoryName)
		}
		if a.Items().Len() != 2 {
			t.Errorf("Working list length = %d, want 2", a.Items().Len())
		}
	})
}

func TestGenerateRecordsMetrics(t *testing.T) {
	gen := &mockGenerator{
		response: `{"needs": "n", "longTermGoal": "l", "shortTermGoal": "s", "serviceContent": "c"}`,
	}

	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	db, err := database.NewDB(filepath.Join(t.TempDir(), "metrics.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	metricsStore := metrics.NewStore(db.SQL)

	a := NewApp(store, gen, metricsStore)
	if err := a.StartAssessment("facility"); err != nil {
		t.Fatal(err)
	}
	checkItems(t, a, "adl", []string{"歩行が不安定"}, "")
	checkItems(t, a, "health_status", []string{"血圧管理が必要"}, "")

	if _, _, err := a.GenerateFromCategory(context.Background(), "adl"); err != nil {
		t.Fatalf("GenerateFromCategory failed: %v", err)
	}
	if _, _, err := a.GenerateFromAll(context.Background()); err != nil {
		t.Fatalf("GenerateFromAll failed: %v", err)
	}

	usage, err := metricsStore.GetDailyUsage(1)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d", len(usage))
	}
	if usage[0].Calls != 2 {
		t.Errorf("Expected one metric row per generation call, got %d", usage[0].Calls)
	}
}

func TestSuggestionsFlow(t *testing.T) {
	a := newTestApp(t, &mockGenerator{})
	if err := a.StartAssessment("facility"); err != nil {
		t.Fatal(err)
	}

	t.Run("RequiresCheckedItems", func(t *testing.T) {
		if _, err := a.Suggestions("adl"); err == nil {
			t.Error("Expected an error when nothing is checked")
		}
	})

	t.Run("ReturnsTemplateEntries", func(t *testing.T) {
		checkItems(t, a, "adl", []string{"歩行が不安定"}, "")

		entries, err := a.Suggestions("adl")
		if err != nil {
			t.Fatalf("Suggestions failed: %v", err)
		}
		if len(entries) == 0 {
			t.Fatal("Expected at least one suggestion")
		}

		added, err := a.AddSuggestions(entries, []int{0})
		if err != nil {
			t.Fatalf("AddSuggestions failed: %v", err)
		}
		if added != 1 || a.Items().Len() != 1 {
			t.Errorf("Expected 1 appended item, added=%d len=%d", added, a.Items().Len())
		}
	})

	t.Run("EmptySelection", func(t *testing.T) {
		entries, err := a.Suggestions("adl")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := a.AddSuggestions(entries, nil); err == nil {
			t.Error("Expected an error for an empty selection")
		}
	})
}

func TestAddManualEntry(t *testing.T) {
	a := newTestApp(t, &mockGenerator{})

	if err := a.AddManualEntry(careplan.Item{Needs: "n", LongTermGoal: "l"}); err == nil {
		t.Error("Expected an error when short-term goal is missing")
	}
	if a.Items().Len() != 0 {
		t.Error("Failed validation must not mutate the list")
	}

	entry := careplan.Item{Needs: "n", LongTermGoal: "l", ShortTermGoal: "s", ServiceContent: "c"}
	if err := a.AddManualEntry(entry); err != nil {
		t.Fatalf("AddManualEntry failed: %v", err)
	}
	if a.Items().Len() != 1 {
		t.Errorf("Expected 1 item, got %d", a.Items().Len())
	}
}

func TestSaveLoadDeletePlan(t *testing.T) {
	a := newTestApp(t, &mockGenerator{})
	if err := a.StartAssessment("facility"); err != nil {
		t.Fatal(err)
	}

	t.Run("SaveRequiresItems", func(t *testing.T) {
		if _, err := a.SavePlan(false); err == nil {
			t.Error("Expected an error when the list is empty")
		}
	})

	checkItems(t, a, "adl", []string{"歩行が不安定"}, "詳細")
	if err := a.AddManualEntry(careplan.Item{Needs: "n", LongTermGoal: "l", ShortTermGoal: "s"}); err != nil {
		t.Fatal(err)
	}

	planID, err := a.SavePlan(false)
	if err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	if a.CurrentPlanID() != planID {
		t.Error("Saved plan must become the loaded plan")
	}

	t.Run("OverwriteKeepsID", func(t *testing.T) {
		if err := a.AddManualEntry(careplan.Item{Needs: "n2", LongTermGoal: "l2", ShortTermGoal: "s2"}); err != nil {
			t.Fatal(err)
		}
		gotID, err := a.SavePlan(true)
		if err != nil {
			t.Fatal(err)
		}
		if gotID != planID {
			t.Errorf("Overwrite changed the id: %s -> %s", planID, gotID)
		}
	})

	t.Run("LoadRestoresSession", func(t *testing.T) {
		if err := a.StartAssessment("home"); err != nil {
			t.Fatal(err)
		}
		if err := a.LoadPlan(planID); err != nil {
			t.Fatalf("LoadPlan failed: %v", err)
		}
		if a.ServiceType().ID != "facility" {
			t.Errorf("Service type not restored: %s", a.ServiceType().ID)
		}
		if a.Items().Len() != 2 {
			t.Errorf("Items not restored: %d", a.Items().Len())
		}
		if got := a.Sheet().Category("adl"); len(got.CheckedItems) != 1 || got.DetailText != "詳細" {
			t.Errorf("Sheet not restored: %+v", got)
		}
		if a.CurrentPlanID() != planID {
			t.Error("Active-plan pointer not set")
		}
	})

	t.Run("DeleteClearsPointer", func(t *testing.T) {
		if err := a.DeletePlan(planID); err != nil {
			t.Fatalf("DeletePlan failed: %v", err)
		}
		if a.CurrentPlanID() != "" {
			t.Error("Deleting the loaded plan must clear the pointer")
		}
	})
}

func TestUserLifecycle(t *testing.T) {
	a := newTestApp(t, &mockGenerator{})
	if err := a.StartAssessment("facility"); err != nil {
		t.Fatal(err)
	}

	userID, err := a.RegisterUser("Y.T", 85, "要介護3")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if err := a.SelectUser(userID); err != nil {
		t.Fatalf("SelectUser failed: %v", err)
	}
	if err := a.SelectUser("missing"); err == nil {
		t.Error("Expected an error for an unknown user")
	}

	if err := a.AddManualEntry(careplan.Item{Needs: "n", LongTermGoal: "l", ShortTermGoal: "s"}); err != nil {
		t.Fatal(err)
	}
	planID, err := a.SavePlan(false)
	if err != nil {
		t.Fatal(err)
	}

	if err := a.DeleteUser(userID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if a.CurrentPlanID() != "" {
		t.Error("Cascade delete of the owner must clear the active-plan pointer")
	}
	if err := a.LoadPlan(planID); err == nil {
		t.Error("Cascaded plan must be gone")
	}
}

func TestExport(t *testing.T) {
	a := newTestApp(t, &mockGenerator{})
	if err := a.StartAssessment("home"); err != nil {
		t.Fatal(err)
	}
	if err := a.AddManualEntry(careplan.Item{CategoryName: "健康状態", Needs: "n", LongTermGoal: "l", ShortTermGoal: "s"}); err != nil {
		t.Fatal(err)
	}

	if csv := a.ExportCSV(); !strings.Contains(csv, "健康状態") {
		t.Error("CSV export missing the item row")
	}
	if text := a.ExportText(); !strings.Contains(text, "【居宅サービス計画書（第2表）】") {
		t.Errorf("Text export missing the plan name heading: %q", text)
	}
}
