package bridge

import (
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	MsgCodeCopied = "USSD code copied"
	MsgCopyFailed = "Unable to copy"
)

// Dialer hands a USSD code to the device dialer. It never blocks and never fails the caller.
type Dialer interface {
	AttemptDial(ctx context.Context, code string)
}

// LinkOpener opens a hosted payment link. It never blocks and never fails the caller.
type LinkOpener interface {
	OpenLink(ctx context.Context, url string)
}

// Clipboard writes text to the clipboard, toasts the result and reports whether it succeeded.
type Clipboard interface {
	CopyToClipboard(ctx context.Context, text string) bool
}

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Bridge groups the side effects the submission flow needs.
//
//go:generate mockery --name=Bridge --case=underscore --structname=MockBridge --filename=bridge_mock.go --inpackage
type Bridge interface {
	Dialer
	LinkOpener
	Clipboard
	Notifier
}

// DialTarget returns the tel: URI for a USSD code. '#' must be percent-encoded or the OS handler
// truncates the code.
func DialTarget(code string) string {
	return "tel:" + strings.ReplaceAll(code, "#", "%23")
}

// WriterNotifier prints toasts as lines on a writer.
type WriterNotifier struct {
	Out io.Writer
}

func (n WriterNotifier) Success(msg string) {
	fmt.Fprintf(n.Out, "✔ %s\n", msg)
}

func (n WriterNotifier) Error(msg string) {
	fmt.Fprintf(n.Out, "✘ %s\n", msg)
}

var _ Notifier = WriterNotifier{}
