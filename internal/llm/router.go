package llm

import (
	"context"
	"log"
	"sync"
)

// Mode says which backend the router dispatches to.
type Mode string

const (
	ModeLocal       Mode = "local"
	ModeRemote      Mode = "remote"
	ModeUnavailable Mode = "unavailable"
)

// StatusFunc receives user-facing processing notices. It is called with a
// message before an on-device dispatch and with an empty string once the
// call completes, in that order, so indicator states never overlap.
type StatusFunc func(message string)

// RouterOptions configures backend selection.
type RouterOptions struct {
	LocalURL    string
	LocalModel  string
	APIKey      string
	RemoteModel string
	Status      StatusFunc
}

// Router owns the backend choice made at startup and funnels every
// generation call through a single TextGenerator.
type Router struct {
	mode      Mode
	generator TextGenerator
	status    StatusFunc

	// Guards against a second generation call while one is outstanding.
	// This is an exclusivity policy, not a queue.
	mu sync.Mutex
}

// NewRouter probes on-device capability and picks a backend: local when the
// model is (or can be made) ready, remote when an API key is stored,
// unavailable otherwise.
func NewRouter(ctx context.Context, opts RouterOptions) (*Router, error) {
	r := &Router{mode: ModeUnavailable, status: opts.Status}
	if r.status == nil {
		r.status = func(string) {}
	}

	local := NewLocalGenerator(opts.LocalURL, opts.LocalModel)
	switch local.Probe(ctx) {
	case AvailabilityReady:
		r.mode = ModeLocal
		r.generator = local
		log.Printf("ローカルAI利用可能: %s", opts.LocalModel)
		return r, nil
	case AvailabilityAfterDownload:
		r.status("AIモデルをダウンロード中...")
		err := local.Pull(ctx)
		r.status("")
		if err == nil {
			r.mode = ModeLocal
			r.generator = local
			log.Printf("ローカルAIモデルを取得しました: %s", opts.LocalModel)
			return r, nil
		}
		log.Printf("ローカルAIモデルの取得に失敗: %v", err)
	}

	if opts.APIKey != "" {
		remote, err := NewGeminiGenerator(ctx, opts.APIKey, opts.RemoteModel)
		if err != nil {
			return nil, err
		}
		r.mode = ModeRemote
		r.generator = remote
		return r, nil
	}

	return r, nil
}

// Mode reports the backend selected at startup.
func (r *Router) Mode() Mode {
	return r.mode
}

// Generate dispatches a prompt to the selected backend. It raises
// immediately when no backend is available, and rejects a second call while
// one is in flight.
func (r *Router) Generate(ctx context.Context, prompt string) (ContentResponse, error) {
	if r.mode == ModeUnavailable {
		return ContentResponse{}, ErrUnavailable
	}

	if !r.mu.TryLock() {
		return ContentResponse{}, ErrBusy
	}
	defer r.mu.Unlock()

	if r.mode == ModeLocal {
		r.status("端末内でAI処理中... インターネット接続は使用していません")
		defer r.status("")
	}

	resp, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return ContentResponse{}, ClassifyError(err)
	}
	return resp, nil
}

// Close releases the underlying backend when it holds resources.
func (r *Router) Close() error {
	if c, ok := r.generator.(Closer); ok {
		return c.Close()
	}
	return nil
}
