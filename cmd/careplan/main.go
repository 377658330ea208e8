package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"careplan-assistant/internal/app"
	"careplan-assistant/internal/assessment"
	"careplan-assistant/internal/config"
	"careplan-assistant/internal/database"
	"careplan-assistant/internal/llm"
	"careplan-assistant/internal/metrics"
	"careplan-assistant/internal/reference"
	"careplan-assistant/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("データの読み込みに失敗: %v", err)
	}

	apiKey := cfg.GeminiAPIKey
	if apiKey == "" {
		apiKey = store.APIKey()
	}

	router, err := llm.NewRouter(ctx, llm.RouterOptions{
		LocalURL:    cfg.LocalAIURL,
		LocalModel:  cfg.LocalAIModel,
		APIKey:      apiKey,
		RemoteModel: cfg.GeminiModel,
		Status: func(message string) {
			if message != "" {
				log.Println(message)
			}
		},
	})
	if err != nil {
		log.Fatalf("生成バックエンドの初期化に失敗: %v", err)
	}
	defer router.Close()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("データベースの初期化に失敗: %v", err)
	}
	defer db.Close()
	metricsStore := metrics.NewStore(db.SQL)

	application := app.NewApp(store, router, metricsStore)

	switch os.Args[1] {
	case "check":
		runCheck(router, apiKey)
	case "categories":
		runCategories()
	case "generate":
		runGenerate(ctx, application, false)
	case "generate-all":
		runGenerate(ctx, application, true)
	case "suggest":
		runSuggest(application)
	case "users":
		runUsers(application, store)
	case "plans":
		runPlans(application, store)
	case "export":
		runExport(application)
	case "usage":
		runUsage(metricsStore)
	case "set-key":
		runSetKey(store)
	default:
		fmt.Printf("不明なコマンド: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: careplan <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  check          生成バックエンドの状態を表示")
	fmt.Println("  categories     アセスメントカテゴリ一覧を表示")
	fmt.Println("  generate       1カテゴリからケアプラン項目を生成")
	fmt.Println("  generate-all   チェック済み全カテゴリから統合生成")
	fmt.Println("  suggest        テンプレートから提案を表示（API不要）")
	fmt.Println("  users          利用者の登録・一覧・削除")
	fmt.Println("  plans          保存済み計画書の一覧・削除")
	fmt.Println("  export         保存済み計画書をCSV/テキスト出力")
	fmt.Println("  usage          トークン使用量の集計を表示")
	fmt.Println("  set-key        Gemini APIキーを保存")
}

func runCheck(router *llm.Router, apiKey string) {
	switch router.Mode() {
	case llm.ModeLocal:
		fmt.Println("✅ ローカルAI利用可能 - 完全オフラインで動作します")
	case llm.ModeRemote:
		fmt.Println("⚠️ ローカルAI利用不可 - APIキーでリモート生成を使用します")
	default:
		fmt.Println("❌ AIが利用できません")
		if apiKey == "" {
			fmt.Println("   set-key でAPIキーを保存するか、ローカルAIを起動してください")
		}
		fmt.Println("   suggest コマンドならAPIなしで提案を生成できます")
	}
}

func runCategories() {
	for _, cat := range reference.Categories() {
		fmt.Printf("%s %s (%s)\n", cat.Icon, cat.Name, cat.ID)
		for _, item := range cat.CheckItems {
			fmt.Printf("    - %s\n", item)
		}
	}
}

// loadAssessment fills the working sheet from a JSON file of
// categoryID -> {checkedItems, detailText}.
func loadAssessment(a *app.App, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("アセスメントファイルを読み込めません: %w", err)
	}

	var records map[string]assessment.CategoryAssessment
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("アセスメントファイルの形式が不正です: %w", err)
	}

	for _, cat := range reference.Categories() {
		record, ok := records[cat.ID]
		if !ok {
			continue
		}
		if err := a.Sheet().SetCategory(cat.ID, record.CheckedItems, record.DetailText); err != nil {
			return err
		}
	}
	return nil
}

func runGenerate(ctx context.Context, application *app.App, all bool) {
	cmd := flag.NewFlagSet("generate", flag.ExitOnError)
	file := cmd.String("file", "", "アセスメントJSONファイル")
	category := cmd.String("category", "", "カテゴリID（generateのみ）")
	service := cmd.String("service", "facility", "サービス種別 (facility|home)")
	user := cmd.String("user", "", "利用者ID")
	save := cmd.Bool("save", false, "生成結果を計画書として保存する")
	cmd.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal("-file でアセスメントファイルを指定してください")
	}

	if err := application.StartAssessment(*service); err != nil {
		log.Fatalf("%v", err)
	}
	if *user != "" {
		if err := application.SelectUser(*user); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if err := loadAssessment(application, *file); err != nil {
		log.Fatalf("%v", err)
	}

	var err error
	var fallback bool
	if all {
		_, fallback, err = application.GenerateFromAll(ctx)
	} else {
		if *category == "" {
			log.Fatal("-category でカテゴリIDを指定してください")
		}
		_, fallback, err = application.GenerateFromCategory(ctx, *category)
	}
	if err != nil {
		log.Fatalf("生成に失敗しました: %v", err)
	}
	if fallback {
		log.Println("AIの応答を解釈できなかったため、汎用的な内容で代替しました")
	}

	fmt.Print(application.ExportText())

	if *save {
		planID, err := application.SavePlan(false)
		if err != nil {
			log.Fatalf("保存に失敗しました: %v", err)
		}
		fmt.Printf("計画書を保存しました (id: %s)\n", planID)
	}
}

func runSuggest(application *app.App) {
	cmd := flag.NewFlagSet("suggest", flag.ExitOnError)
	file := cmd.String("file", "", "アセスメントJSONファイル")
	category := cmd.String("category", "", "カテゴリID")
	selectArg := cmd.String("select", "", "追加する提案番号（カンマ区切り、省略時は表示のみ）")
	cmd.Parse(os.Args[2:])

	if *file == "" || *category == "" {
		log.Fatal("-file と -category を指定してください")
	}

	if err := application.StartAssessment("facility"); err != nil {
		log.Fatalf("%v", err)
	}
	if err := loadAssessment(application, *file); err != nil {
		log.Fatalf("%v", err)
	}

	suggestions, err := application.Suggestions(*category)
	if err != nil {
		log.Fatalf("%v", err)
	}

	for i, s := range suggestions {
		fmt.Printf("[%d] %s\n", i, s.ItemName)
		fmt.Printf("    ニーズ: %s\n", s.Needs)
		fmt.Printf("    長期目標: %s\n", s.LongTermGoal)
		fmt.Printf("    短期目標: %s\n", s.ShortTermGoal)
		fmt.Printf("    サービス内容: %s\n", s.ServiceContent)
	}

	if *selectArg == "" {
		return
	}

	var indices []int
	for _, part := range strings.Split(*selectArg, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			log.Fatalf("提案番号が不正です: %s", part)
		}
		indices = append(indices, i)
	}

	added, err := application.AddSuggestions(suggestions, indices)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("%d件を追加しました\n", added)
	fmt.Print(application.ExportText())
}

func runUsers(application *app.App, store *storage.Store) {
	if len(os.Args) < 3 {
		log.Fatal("users <add|list|delete> を指定してください")
	}

	switch os.Args[2] {
	case "add":
		cmd := flag.NewFlagSet("users add", flag.ExitOnError)
		initial := cmd.String("initial", "", "イニシャル (例: Y.T)")
		age := cmd.Int("age", 0, "年齢")
		level := cmd.String("level", "要介護3", "要介護度")
		cmd.Parse(os.Args[3:])

		id, err := application.RegisterUser(*initial, *age, *level)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("利用者を登録しました (id: %s)\n", id)
	case "list":
		users := store.Users()
		if len(users) == 0 {
			fmt.Println("登録されている利用者はいません")
			return
		}
		for _, u := range users {
			planCount := len(store.PlansForUser(u.ID))
			fmt.Printf("%s  %s  %d歳 / %s  計画書: %d件\n", u.ID, u.Initial, u.Age, u.CareLevel, planCount)
		}
	case "delete":
		cmd := flag.NewFlagSet("users delete", flag.ExitOnError)
		id := cmd.String("id", "", "利用者ID")
		cmd.Parse(os.Args[3:])
		if *id == "" {
			log.Fatal("-id を指定してください")
		}
		if err := application.DeleteUser(*id); err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println("利用者を削除しました")
	default:
		log.Fatalf("不明なサブコマンド: users %s", os.Args[2])
	}
}

func runPlans(application *app.App, store *storage.Store) {
	if len(os.Args) < 3 {
		log.Fatal("plans <list|delete> を指定してください")
	}

	switch os.Args[2] {
	case "list":
		cmd := flag.NewFlagSet("plans list", flag.ExitOnError)
		user := cmd.String("user", "", "利用者IDで絞り込み")
		cmd.Parse(os.Args[3:])

		plans := store.Plans()
		if *user != "" {
			plans = store.PlansForUser(*user)
		}
		if len(plans) == 0 {
			fmt.Println("保存されている計画書はありません")
			return
		}
		for _, p := range plans {
			name := p.ServiceType
			if st, ok := reference.ServiceTypeByID(p.ServiceType); ok {
				name = st.Name
			}
			fmt.Printf("%s  %s  %d項目  更新: %s\n", p.ID, name, len(p.Items), p.UpdatedAt.Format("2006-01-02"))
		}
	case "delete":
		cmd := flag.NewFlagSet("plans delete", flag.ExitOnError)
		id := cmd.String("id", "", "計画書ID")
		cmd.Parse(os.Args[3:])
		if *id == "" {
			log.Fatal("-id を指定してください")
		}
		if err := application.DeletePlan(*id); err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println("計画書を削除しました")
	default:
		log.Fatalf("不明なサブコマンド: plans %s", os.Args[2])
	}
}

func runExport(application *app.App) {
	cmd := flag.NewFlagSet("export", flag.ExitOnError)
	plan := cmd.String("plan", "", "計画書ID")
	format := cmd.String("format", "csv", "出力形式 (csv|text)")
	cmd.Parse(os.Args[2:])

	if *plan == "" {
		log.Fatal("-plan で計画書IDを指定してください")
	}
	if err := application.LoadPlan(*plan); err != nil {
		log.Fatalf("%v", err)
	}

	switch *format {
	case "csv":
		fmt.Print(application.ExportCSV())
	case "text":
		fmt.Print(application.ExportText())
	default:
		log.Fatalf("不明な出力形式: %s", *format)
	}
}

func runUsage(metricsStore *metrics.Store) {
	cmd := flag.NewFlagSet("usage", flag.ExitOnError)
	days := cmd.Int("days", 7, "集計する日数")
	cmd.Parse(os.Args[2:])

	usage, err := metricsStore.GetDailyUsage(*days)
	if err != nil {
		log.Fatalf("使用量の取得に失敗: %v", err)
	}
	if len(usage) == 0 {
		fmt.Println("記録された生成呼び出しはありません")
		return
	}
	for _, u := range usage {
		fmt.Printf("%s  呼び出し: %d  入力: %d  出力: %d\n", u.Date, u.Calls, u.TotalPrompt, u.TotalCompletion)
	}
}

func runSetKey(store *storage.Store) {
	cmd := flag.NewFlagSet("set-key", flag.ExitOnError)
	key := cmd.String("key", "", "Gemini APIキー")
	cmd.Parse(os.Args[2:])

	if *key == "" {
		log.Fatal("-key でAPIキーを指定してください")
	}
	if err := store.SetAPIKey(*key); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("設定を保存しました")
}
