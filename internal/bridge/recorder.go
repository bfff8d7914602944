package bridge

import (
	"context"
	"sync"

	"github.com/stellar/go-stellar-sdk/support/log"
)

type EffectType string

const (
	EffectTypeOpenLink EffectType = "open_link"
	EffectTypeDial     EffectType = "dial"
	EffectTypeCopy     EffectType = "copy"
	EffectTypeToast    EffectType = "toast"
)

type ToastLevel string

const (
	ToastLevelSuccess ToastLevel = "success"
	ToastLevelError   ToastLevel = "error"
)

// Effect is a side effect the remote shell has to perform on the user's device.
type Effect struct {
	Type    EffectType `json:"type"`
	Value   string     `json:"value,omitempty"`
	Target  string     `json:"target,omitempty"`
	Level   ToastLevel `json:"level,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Recorder queues side effects instead of performing them. It backs the HTTP front-end, where the
// device is on the other side of the wire.
type Recorder struct {
	mu      sync.Mutex
	effects []Effect
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) AttemptDial(ctx context.Context, code string) {
	log.Ctx(ctx).Debugf("queueing dial of %s", code)
	r.record(Effect{Type: EffectTypeDial, Value: code, Target: DialTarget(code)})
}

func (r *Recorder) OpenLink(ctx context.Context, link string) {
	log.Ctx(ctx).Debugf("queueing link %s", link)
	r.record(Effect{Type: EffectTypeOpenLink, Value: link, Target: link})
}

// CopyToClipboard queues the copy together with the success toast. The shell reports its own
// failure if the device refuses the write.
func (r *Recorder) CopyToClipboard(ctx context.Context, text string) bool {
	r.record(Effect{Type: EffectTypeCopy, Value: text})
	r.Success(MsgCodeCopied)
	return true
}

func (r *Recorder) Success(msg string) {
	r.record(Effect{Type: EffectTypeToast, Level: ToastLevelSuccess, Message: msg})
}

func (r *Recorder) Error(msg string) {
	r.record(Effect{Type: EffectTypeToast, Level: ToastLevelError, Message: msg})
}

// Drain returns the queued effects in order and empties the queue.
func (r *Recorder) Drain() []Effect {
	r.mu.Lock()
	defer r.mu.Unlock()

	effects := r.effects
	r.effects = nil
	return effects
}

func (r *Recorder) record(effect Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, effect)
}

var _ Bridge = (*Recorder)(nil)
