package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/betapi"
	"github.com/betpay/betpay-wallet/internal/bridge"
	"github.com/betpay/betpay-wallet/internal/channel"
	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/wizard"
)

const (
	MsgDepositInitiated    = "Deposit initiated"
	MsgWithdrawalInitiated = "Withdrawal initiated"
	MsgMissingData         = "Missing data for the transaction"
	MsgDepositFailed       = "Error while creating the deposit"
	MsgWithdrawalFailed    = "Error while creating the withdrawal"
)

type OutcomeKind string

const (
	// OutcomeDashboard ends the flow and sends the user back to the dashboard.
	OutcomeDashboard OutcomeKind = "DASHBOARD"
	// OutcomeInterstitial asks the user to continue to a hosted payment link.
	OutcomeInterstitial OutcomeKind = "INTERSTITIAL"
	// OutcomeUSSD shows the merchant number and dial code.
	OutcomeUSSD OutcomeKind = "USSD"
	// OutcomeRetry returns to the confirmation gate after a failed submission.
	OutcomeRetry OutcomeKind = "RETRY"
	// OutcomeDiscarded is the late result of a submission the user cancelled.
	OutcomeDiscarded OutcomeKind = "DISCARDED"
)

type Outcome struct {
	Kind      OutcomeKind         `json:"kind"`
	Link      string              `json:"link,omitempty"`
	Directive *data.USSDDirective `json:"directive,omitempty"`
	Message   string              `json:"message,omitempty"`
	Err       error               `json:"-"`
}

type submissionResult string

const (
	resultSuccess     submissionResult = "success"
	resultFailure     submissionResult = "failure"
	resultDiscarded   submissionResult = "discarded"
	resultMissingData submissionResult = "missing_data"
)

type CoordinatorOptions struct {
	Wizard         *wizard.Wizard
	Client         betapi.ClientInterface
	MerchantConfig data.MerchantConfig
	Bridge         bridge.Bridge
	CrashTracker   crashtracker.CrashTrackerClient
	MonitorService monitor.MonitorServiceInterface
}

func (o CoordinatorOptions) Validate() error {
	if o.Wizard == nil {
		return fmt.Errorf("wizard cannot be nil")
	}
	if o.Client == nil {
		return fmt.Errorf("client cannot be nil")
	}
	if o.Bridge == nil {
		return fmt.Errorf("bridge cannot be nil")
	}
	if o.CrashTracker == nil {
		return fmt.Errorf("crash tracker cannot be nil")
	}
	return nil
}

// Coordinator submits the confirmed draft and drives the completion protocol that follows: the
// hosted-link interstitial, the USSD modal and the dashboard redirect.
type Coordinator struct {
	opts CoordinatorOptions

	mu        sync.Mutex
	pending   *pendingLink
	directive *data.USSDDirective
}

// pendingLink keeps what the post-link USSD resolution needs once the draft has been discarded.
type pendingLink struct {
	link    string
	network *data.Network
	draft   *data.TransactionDraft
}

func NewCoordinator(opts CoordinatorOptions) (*Coordinator, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating coordinator options: %w", err)
	}
	return &Coordinator{opts: opts}, nil
}

func (c *Coordinator) Wizard() *wizard.Wizard {
	return c.opts.Wizard
}

// Confirm submits the draft held by the confirmation gate. Refused confirmations are returned as
// errors. A remote failure is an OutcomeRetry with the draft preserved.
func (c *Coordinator) Confirm(ctx context.Context) (Outcome, error) {
	w := c.opts.Wizard
	txType := w.Type()

	ticket, snapshot, err := w.BeginSubmit()
	if err != nil {
		var missingErr *data.MissingDataError
		if errors.As(err, &missingErr) {
			c.opts.CrashTracker.LogAndReportErrors(ctx, err, "confirming transaction")
			c.opts.Bridge.Error(MsgMissingData)
			c.recordSubmission(ctx, txType, resultMissingData)
		}
		return Outcome{}, fmt.Errorf("beginning submission: %w", err)
	}

	req, err := snapshot.ToCreateRequest()
	if err != nil {
		w.EndSubmit(ticket, false)
		c.opts.CrashTracker.LogAndReportErrors(ctx, err, "building transaction request")
		c.opts.Bridge.Error(MsgMissingData)
		c.recordSubmission(ctx, txType, resultMissingData)
		return Outcome{}, fmt.Errorf("building transaction request: %w", err)
	}

	// The request outlives the caller: cancelling the gate must not abort it.
	remoteCtx := context.WithoutCancel(ctx)
	var resp *data.CreateTransactionResponse
	if txType == data.TransactionTypeWithdrawal {
		resp, err = c.opts.Client.CreateWithdrawal(remoteCtx, req)
	} else {
		resp, err = c.opts.Client.CreateDeposit(remoteCtx, req)
	}

	if !w.EndSubmit(ticket, err == nil) {
		log.Ctx(ctx).Infof("discarding the result of a cancelled %s submission", txType)
		c.recordSubmission(ctx, txType, resultDiscarded)
		return Outcome{Kind: OutcomeDiscarded}, nil
	}

	if err != nil {
		return c.handleFailure(ctx, txType, err), nil
	}
	c.recordSubmission(ctx, txType, resultSuccess)

	if txType == data.TransactionTypeWithdrawal {
		c.opts.Bridge.Success(MsgWithdrawalInitiated)
		return Outcome{Kind: OutcomeDashboard}, nil
	}
	c.opts.Bridge.Success(MsgDepositInitiated)

	resolution := channel.Resolve(snapshot, resp, c.opts.MerchantConfig)
	c.recordResolution(ctx, snapshot.Network, resolution.Kind)

	switch resolution.Kind {
	case channel.KindHostedLink:
		c.mu.Lock()
		c.pending = &pendingLink{link: resolution.HostedLink, network: snapshot.Network, draft: snapshot}
		c.mu.Unlock()
		return Outcome{Kind: OutcomeInterstitial, Link: resolution.HostedLink}, nil
	case channel.KindUSSD:
		return c.showUSSD(ctx, resolution.Directive), nil
	default:
		return Outcome{Kind: OutcomeDashboard}, nil
	}
}

func (c *Coordinator) handleFailure(ctx context.Context, txType data.TransactionType, err error) Outcome {
	msg := betapi.ExtractTimeErrorMessage(err)
	if msg == "" {
		msg = MsgDepositFailed
		if txType == data.TransactionTypeWithdrawal {
			msg = MsgWithdrawalFailed
		}
	}

	remoteErr := &RemoteTransactionError{Type: txType, Message: msg, Err: err}
	log.Ctx(ctx).Warnf("submission failed: %v", remoteErr)
	c.opts.Bridge.Error(msg)
	c.recordSubmission(ctx, txType, resultFailure)

	return Outcome{Kind: OutcomeRetry, Message: msg, Err: remoteErr}
}

// ContinueHostedLink opens the pending payment link and then checks whether the network still
// needs a USSD code to complete the deposit.
func (c *Coordinator) ContinueHostedLink(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	if pending == nil {
		return Outcome{}, ErrNoPendingLink
	}

	c.opts.Bridge.OpenLink(ctx, pending.link)

	directive := channel.ResolveUSSD(pending.network, pending.draft.Amount, c.opts.MerchantConfig)
	if directive == nil {
		return Outcome{Kind: OutcomeDashboard}, nil
	}
	c.recordResolution(ctx, pending.network, channel.KindUSSD)
	return c.showUSSD(ctx, directive), nil
}

// CancelHostedLink drops the pending link without opening it.
func (c *Coordinator) CancelHostedLink(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return Outcome{}, ErrNoPendingLink
	}
	log.Ctx(ctx).Debug("hosted payment link dismissed")
	c.pending = nil
	return Outcome{Kind: OutcomeDashboard}, nil
}

func (c *Coordinator) showUSSD(ctx context.Context, directive *data.USSDDirective) Outcome {
	c.mu.Lock()
	c.directive = directive
	c.mu.Unlock()

	c.opts.Bridge.AttemptDial(ctx, directive.DialCode)
	return Outcome{Kind: OutcomeUSSD, Directive: directive}
}

// CopyDialCode copies the displayed USSD code. The bridge toasts the result.
func (c *Coordinator) CopyDialCode(ctx context.Context) (bool, error) {
	c.mu.Lock()
	directive := c.directive
	c.mu.Unlock()

	if directive == nil {
		return false, ErrNoDialCode
	}
	return c.opts.Bridge.CopyToClipboard(ctx, directive.DialCode), nil
}

// DismissUSSD closes the USSD modal.
func (c *Coordinator) DismissUSSD(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.directive == nil {
		return Outcome{}, ErrNoDialCode
	}
	c.directive = nil
	return Outcome{Kind: OutcomeDashboard}, nil
}

// Directive returns the USSD directive on display, if any.
func (c *Coordinator) Directive() *data.USSDDirective {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.directive
}

// PendingLink returns the hosted link waiting for the user, if any.
func (c *Coordinator) PendingLink() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return ""
	}
	return c.pending.link
}

func (c *Coordinator) recordSubmission(ctx context.Context, txType data.TransactionType, result submissionResult) {
	if c.opts.MonitorService == nil {
		return
	}
	labels := monitor.SubmissionLabels{Type: string(txType), Result: string(result)}
	if err := c.opts.MonitorService.MonitorCounters(monitor.SubmissionsCounterTag, labels.ToMap()); err != nil {
		log.Ctx(ctx).Errorf("monitoring submission: %v", err)
	}
}

func (c *Coordinator) recordResolution(ctx context.Context, network *data.Network, kind channel.Kind) {
	if c.opts.MonitorService == nil {
		return
	}
	carrier := data.CarrierOther
	if network != nil {
		carrier = network.Carrier
	}
	labels := monitor.ChannelResolutionLabels{Carrier: string(carrier), Channel: string(kind)}
	if err := c.opts.MonitorService.MonitorCounters(monitor.ChannelResolutionsCounterTag, labels.ToMap()); err != nil {
		log.Ctx(ctx).Errorf("monitoring channel resolution: %v", err)
	}
}
