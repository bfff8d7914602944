package bridge

import (
	"fmt"
	"strings"

	"github.com/betpay/betpay-wallet/internal/monitor"
)

type SideEffectsMode string

const (
	// SideEffectsModeOS opens links, dials and copies on the local machine.
	SideEffectsModeOS SideEffectsMode = "OS"
	// SideEffectsModeDryRun only logs the side effects.
	SideEffectsModeDryRun SideEffectsMode = "DRY_RUN"
)

func ParseSideEffectsMode(modeStr string) (SideEffectsMode, error) {
	mode := SideEffectsMode(strings.ToUpper(strings.TrimSpace(modeStr)))

	switch mode {
	case SideEffectsModeOS, SideEffectsModeDryRun:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid side effects mode %q", mode)
	}
}

// Waiter is implemented by bridges whose side effects can outlive the call that started them.
type Waiter interface {
	Wait()
}

// NewBridge returns the terminal bridge for the given mode.
func NewBridge(mode SideEffectsMode, notifier Notifier, monitorService monitor.MonitorServiceInterface) (Bridge, error) {
	switch mode {
	case SideEffectsModeOS:
		return NewOSBridge(notifier, monitorService), nil
	case SideEffectsModeDryRun:
		return NewDryRunBridge(notifier), nil
	default:
		return nil, fmt.Errorf("unknown side effects mode: %q", mode)
	}
}
