package reference

// チェック項目ごとの定型文。提案機能（API不要）が参照する。
// 表に無い項目は提案対象外になるだけで、エラーにはならない。

var itemTemplates = map[string]ItemTemplate{
	"持病の管理が必要": {
		Needs:          "持病があるが、体調を安定させて生活したい",
		LongTermGoal:   "持病の悪化を防ぎ、安定した体調で生活できる",
		ShortTermGoal:  "定期受診と服薬を続けることができる",
		ServiceContent: "健康状態の観察、受診の支援、服薬管理の支援",
	},
	"血圧管理が必要": {
		Needs:          "血圧が変動しやすいが、安心して過ごしたい",
		LongTermGoal:   "血圧が安定し、体調の変化なく生活できる",
		ShortTermGoal:  "毎日の血圧測定を習慣にすることができる",
		ServiceContent: "バイタルサイン測定、医師・看護師への報告、生活指導",
	},
	"糖尿病の管理が必要": {
		Needs:          "糖尿病があるが、合併症を防いで生活したい",
		LongTermGoal:   "血糖値が安定し、合併症なく生活できる",
		ShortTermGoal:  "食事療法と服薬を守ることができる",
		ServiceContent: "食事内容の確認、服薬支援、定期的な血糖測定の支援",
	},
	"寝返りが困難": {
		Needs:          "自分で寝返りが打てないが、床ずれなく過ごしたい",
		LongTermGoal:   "安楽な姿勢で休息でき、褥瘡を予防できる",
		ShortTermGoal:  "定期的な体位変換で安楽に過ごすことができる",
		ServiceContent: "定時の体位変換、体圧分散マットレスの使用、皮膚状態の観察",
	},
	"起き上がりが困難": {
		Needs:          "起き上がりに介助が必要だが、自分でできることを増やしたい",
		LongTermGoal:   "見守りのもとで起き上がりができる",
		ShortTermGoal:  "ベッド柵を使って起き上がる練習ができる",
		ServiceContent: "起居動作の介助と見守り、リハビリテーションの実施",
	},
	"立ち上がりが困難": {
		Needs:          "立ち上がりがつらいが、自分の力で動きたい",
		LongTermGoal:   "支えがあれば安全に立ち上がることができる",
		ShortTermGoal:  "手すりを使った立ち上がり練習を続けることができる",
		ServiceContent: "立ち上がり動作の介助、下肢筋力訓練、手すりの設置検討",
	},
	"歩行が不安定": {
		Needs:          "歩行がふらつくが、転ばずに自分で歩きたい",
		LongTermGoal:   "安全に屋内を移動することができる",
		ShortTermGoal:  "歩行器を使って安定して歩くことができる",
		ServiceContent: "歩行訓練、移動時の見守り・介助、福祉用具の活用",
	},
	"移乗に介助が必要": {
		Needs:          "移乗に介助が必要だが、安全に乗り移りたい",
		LongTermGoal:   "最小限の介助で安全に移乗することができる",
		ShortTermGoal:  "移乗の手順を覚えて協力動作ができる",
		ServiceContent: "移乗介助、動作手順の声かけ、福祉用具の検討",
	},
	"転倒リスクがある": {
		Needs:          "転倒が心配だが、安心して動ける生活をしたい",
		LongTermGoal:   "転倒なく安全に日常生活を送ることができる",
		ShortTermGoal:  "危険箇所を把握し、安全な動き方を身につけることができる",
		ServiceContent: "環境整備、移動時の見守り、バランス訓練",
	},
	"買い物が困難": {
		Needs:          "買い物に行けないが、必要な物を自分で選びたい",
		LongTermGoal:   "必要な物を自分で選んで生活を続けることができる",
		ShortTermGoal:  "支援を受けながら週1回の買い物ができる",
		ServiceContent: "買い物同行・代行、移動支援",
	},
	"調理が困難": {
		Needs:          "調理が難しくなったが、栄養のある食事をとりたい",
		LongTermGoal:   "栄養バランスのよい食事を毎日とることができる",
		ShortTermGoal:  "簡単な調理や盛り付けに参加することができる",
		ServiceContent: "調理支援、配食サービスの利用調整、栄養状態の確認",
	},
	"服薬管理が困難": {
		Needs:          "薬の管理が難しいが、飲み忘れなく過ごしたい",
		LongTermGoal:   "決められた薬を正しく飲み続けることができる",
		ShortTermGoal:  "服薬カレンダーを使って飲み忘れを減らすことができる",
		ServiceContent: "服薬カレンダーの設置、服薬確認の声かけ、薬剤師との連携",
	},
	"物忘れがある": {
		Needs:          "物忘れが増えてきたが、慣れた生活を続けたい",
		LongTermGoal:   "残された力を活かして穏やかに生活できる",
		ShortTermGoal:  "日課やなじみの活動を続けることができる",
		ServiceContent: "見当識への支援、なじみの関係づくり、生活リズムの維持",
	},
	"徘徊がある": {
		Needs:          "外に出て行ってしまうことがあるが、安全に暮らしたい",
		LongTermGoal:   "安全が確保された環境で安心して生活できる",
		ShortTermGoal:  "日中の活動を増やし、落ち着いて過ごすことができる",
		ServiceContent: "見守り体制の整備、日中活動の提供、地域との連携",
	},
	"意思疎通が困難": {
		Needs:          "思いをうまく伝えられないが、気持ちを分かってほしい",
		LongTermGoal:   "自分の意思や要望を周囲に伝えることができる",
		ShortTermGoal:  "ジェスチャーや筆談など伝える手段を使うことができる",
		ServiceContent: "コミュニケーション手段の工夫、表情・様子の観察、家族との情報共有",
	},
	"外出機会が少ない": {
		Needs:          "外出の機会が減ったが、人との交流を持ちたい",
		LongTermGoal:   "定期的に外出し、社会との交流を続けることができる",
		ShortTermGoal:  "週1回の通所サービスに参加することができる",
		ServiceContent: "通所サービスの利用、外出同行、趣味活動への参加支援",
	},
	"閉じこもりがち": {
		Needs:          "家に閉じこもりがちだが、楽しみを見つけたい",
		LongTermGoal:   "楽しみや役割を持って生活することができる",
		ShortTermGoal:  "興味のある活動に月2回参加することができる",
		ServiceContent: "活動プログラムの提供、本人の趣味を活かした関わり",
	},
	"尿失禁がある": {
		Needs:          "尿失禁があるが、気兼ねなく過ごしたい",
		LongTermGoal:   "排泄の失敗を減らし、快適に生活できる",
		ShortTermGoal:  "トイレ誘導により失敗なく排泄することができる",
		ServiceContent: "定時のトイレ誘導、排泄パターンの把握、パッド交換の支援",
	},
	"トイレまでの移動が困難": {
		Needs:          "トイレまでの移動が大変だが、トイレで排泄したい",
		LongTermGoal:   "安全にトイレで排泄を続けることができる",
		ShortTermGoal:  "介助を受けてトイレで排泄することができる",
		ServiceContent: "移動・排泄介助、ポータブルトイレの検討、動線の環境整備",
	},
	"食欲不振がある": {
		Needs:          "食欲がわかないが、しっかり食べて元気に過ごしたい",
		LongTermGoal:   "必要な栄養をとり、体力を維持することができる",
		ShortTermGoal:  "好みに合った食事を半分以上食べることができる",
		ServiceContent: "食事内容・形態の工夫、食事環境の調整、摂取量の観察",
	},
	"嚥下困難がある": {
		Needs:          "飲み込みが難しいが、口から食べ続けたい",
		LongTermGoal:   "誤嚥なく口から食事をとり続けることができる",
		ShortTermGoal:  "とろみ調整した食事を安全に食べることができる",
		ServiceContent: "嚥下状態に合わせた食形態の提供、食事時の見守り、嚥下体操",
	},
	"口腔内の清潔保持が困難": {
		Needs:          "口の中の手入れが難しいが、口をきれいに保ちたい",
		LongTermGoal:   "口腔内を清潔に保ち、おいしく食事ができる",
		ShortTermGoal:  "毎食後の口腔ケアを受けることができる",
		ServiceContent: "口腔ケアの実施・支援、歯科受診の調整",
	},
	"褥瘡リスクが高い": {
		Needs:          "褥瘡ができやすい状態だが、皮膚を健康に保ちたい",
		LongTermGoal:   "褥瘡を予防し、皮膚トラブルなく過ごすことができる",
		ShortTermGoal:  "除圧と皮膚観察を毎日続けることができる",
		ServiceContent: "体位変換、体圧分散用具の使用、皮膚状態の観察と記録",
	},
	"主介護者の負担が大きい": {
		Needs:          "家族の介護負担が大きいが、在宅での生活を続けたい",
		LongTermGoal:   "介護者の負担を軽減し、在宅生活を継続できる",
		ShortTermGoal:  "短期入所等を利用し介護者が休息をとることができる",
		ServiceContent: "ショートステイ・通所サービスの利用調整、介護方法の助言",
	},
	"独居である": {
		Needs:          "一人暮らしだが、安心して自宅で暮らし続けたい",
		LongTermGoal:   "見守り体制のもとで安心して独居生活を続けられる",
		ShortTermGoal:  "緊急時の連絡方法を身につけることができる",
		ServiceContent: "安否確認・見守りサービス、緊急通報装置の設置、定期訪問",
	},
}
