package llm

import (
	"errors"
	"strings"
)

// ErrBusy is returned when a generation call is already in flight. A second
// request is rejected rather than queued, because the response could not be
// attributed to its prompt otherwise.
var ErrBusy = errors.New("generation already in progress")

// ErrorKind classifies a failed generation call into a user-facing message
// class.
type ErrorKind string

const (
	KindUnavailable ErrorKind = "unavailable"
	KindQuota       ErrorKind = "quota"
	KindInvalidKey  ErrorKind = "invalid-key"
	KindModelAccess ErrorKind = "model-access"
	KindGeneric     ErrorKind = "generic"
)

// GenerationError carries the classified, user-facing failure message for a
// generation call. Every message points at the no-API suggestion path as the
// way forward.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.cause }

// ErrUnavailable is raised before any call when neither the on-device model
// nor a stored API key is available.
var ErrUnavailable = &GenerationError{
	Kind:    KindUnavailable,
	Message: "AIが利用できません。設定からAPIキーを入力してください。",
}

const suggestionHint = "「✨ 提案を表示（API不要）」を使えば、APIを使わずにテンプレートからケアプランを生成できます。"

// ClassifyError maps a transport failure onto one of the four user-facing
// message classes by substring match on the underlying error text.
func ClassifyError(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}

	msg := err.Error()

	if strings.Contains(msg, "exceeded your current quota") ||
		strings.Contains(msg, "Quota exceeded") ||
		strings.Contains(msg, "rate limit") {
		return &GenerationError{
			Kind: KindQuota,
			Message: "⚠️ Gemini API の無料枠制限に達しました。\n\n" +
				"【解決方法】\n" +
				"・しばらく待ってから再試行してください（1〜2分）\n" +
				"・" + suggestionHint,
			cause: err,
		}
	}

	if strings.Contains(msg, "API_KEY_INVALID") ||
		strings.Contains(msg, "API key not valid") {
		return &GenerationError{
			Kind: KindInvalidKey,
			Message: "⚠️ APIキーが無効です。\n\n" +
				"【解決方法】\n" +
				"・設定したAPIキーを確認してください\n" +
				"・Google AI StudioでAPIキーを再発行してください\n" +
				"・" + suggestionHint,
			cause: err,
		}
	}

	if strings.Contains(msg, "model not found") ||
		strings.Contains(msg, "permission denied") {
		return &GenerationError{
			Kind: KindModelAccess,
			Message: "⚠️ AIモデルにアクセスできません。\n\n" +
				"【解決方法】\n" +
				"・" + suggestionHint,
			cause: err,
		}
	}

	return &GenerationError{
		Kind: KindGeneric,
		Message: "⚠️ AI生成でエラーが発生しました。\n\n" +
			msg + "\n\n" +
			"【代替方法】\n" + suggestionHint,
		cause: err,
	}
}
