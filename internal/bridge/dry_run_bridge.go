package bridge

import (
	"context"

	"github.com/stellar/go-stellar-sdk/support/log"
)

// DryRunBridge logs the side effects instead of performing them.
type DryRunBridge struct {
	Notifier
}

func NewDryRunBridge(notifier Notifier) *DryRunBridge {
	return &DryRunBridge{Notifier: notifier}
}

func (b *DryRunBridge) AttemptDial(ctx context.Context, code string) {
	log.Ctx(ctx).Infof("[DRY_RUN] dialing %s", DialTarget(code))
}

func (b *DryRunBridge) OpenLink(ctx context.Context, link string) {
	log.Ctx(ctx).Infof("[DRY_RUN] opening %s", link)
}

func (b *DryRunBridge) CopyToClipboard(ctx context.Context, text string) bool {
	log.Ctx(ctx).Infof("[DRY_RUN] copying %q to the clipboard", text)
	b.Success(MsgCodeCopied)
	return true
}

var _ Bridge = (*DryRunBridge)(nil)
