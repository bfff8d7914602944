package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/utils"
)

// OSBridge performs side effects on the local machine. Dial and link launches run on goroutines
// tracked by Wait.
type OSBridge struct {
	Notifier
	monitorService monitor.MonitorServiceInterface
	openURL        func(string) error
	writeClipboard func(string) error
	wg             sync.WaitGroup
}

func NewOSBridge(notifier Notifier, monitorService monitor.MonitorServiceInterface) *OSBridge {
	return &OSBridge{
		Notifier:       notifier,
		monitorService: monitorService,
		openURL:        browser.OpenURL,
		writeClipboard: clipboard.WriteAll,
	}
}

func (b *OSBridge) AttemptDial(ctx context.Context, code string) {
	target := DialTarget(code)
	b.launch(ctx, EffectTypeDial, func() error {
		return b.openURL(target)
	})
}

func (b *OSBridge) OpenLink(ctx context.Context, link string) {
	if err := utils.ValidateHTTPURL(link); err != nil {
		b.reportFailure(ctx, EffectTypeOpenLink, err)
		return
	}

	b.launch(ctx, EffectTypeOpenLink, func() error {
		return b.openURL(link)
	})
}

func (b *OSBridge) CopyToClipboard(ctx context.Context, text string) bool {
	if err := b.writeClipboard(text); err != nil {
		b.reportFailure(ctx, EffectTypeCopy, err)
		b.Error(MsgCopyFailed)
		return false
	}

	b.Success(MsgCodeCopied)
	return true
}

// Wait blocks until every launched side effect has returned.
func (b *OSBridge) Wait() {
	b.wg.Wait()
}

func (b *OSBridge) launch(ctx context.Context, effect EffectType, fn func() error) {
	ctx = context.WithoutCancel(ctx)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.reportFailure(ctx, effect, fmt.Errorf("panic: %v", r))
			}
		}()

		if err := fn(); err != nil {
			b.reportFailure(ctx, effect, err)
		}
	}()
}

func (b *OSBridge) reportFailure(ctx context.Context, effect EffectType, err error) {
	log.Ctx(ctx).WithField("effect", effect).Warnf("side effect failed: %v", err)

	if b.monitorService == nil {
		return
	}
	labels := monitor.SideEffectLabels{Effect: string(effect)}
	if metricErr := b.monitorService.MonitorCounters(monitor.SideEffectFailuresCounterTag, labels.ToMap()); metricErr != nil {
		log.Ctx(ctx).Errorf("monitoring side effect failure: %v", metricErr)
	}
}

var _ Bridge = (*OSBridge)(nil)
