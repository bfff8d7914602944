// Package workflow runs the transaction wizard in a terminal.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/submission"
	"github.com/betpay/betpay-wallet/internal/ui"
	"github.com/betpay/betpay-wallet/internal/utils"
	"github.com/betpay/betpay-wallet/internal/wizard"
)

const (
	backItem        = "← Back"
	backInput       = "b"
	continueItem    = "Continue to payment"
	cancelItem      = "Cancel"
	copyCodeItem    = "Copy code"
	dismissUSSDItem = "Got it"
)

// WorkflowError is returned when the wizard cannot go on.
type WorkflowError struct {
	Step    wizard.Step
	Message string
	Cause   error
}

func (e *WorkflowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("wizard failed at step %s: %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("wizard failed at step %s: %s", e.Step, e.Message)
}

func (e *WorkflowError) Unwrap() error {
	return e.Cause
}

type Options struct {
	Coordinator *submission.Coordinator
	Prompter    ui.Prompter
	Out         io.Writer
}

type runner struct {
	Options
	w *wizard.Wizard
}

// Execute drives one wizard session until the user lands back on the dashboard.
func Execute(ctx context.Context, opts Options) error {
	r := &runner{Options: opts, w: opts.Coordinator.Wizard()}
	r.printWelcome()

	for {
		switch r.w.State() {
		case wizard.StateCollecting:
			if err := r.collect(ctx); err != nil {
				return err
			}
		case wizard.StateConfirming:
			done, err := r.confirm(ctx)
			if err != nil || done {
				return err
			}
		default:
			return &WorkflowError{Step: r.w.Step(), Message: fmt.Sprintf("unexpected state %s", r.w.State())}
		}
	}
}

func (r *runner) printWelcome() {
	action := "Deposit"
	if r.w.Type() == data.TransactionTypeWithdrawal {
		action = "Withdrawal"
	}
	fmt.Fprintf(r.Out, "💸 %s wizard\n\n", action)
}

func (r *runner) printProgress() {
	p := r.w.Progress()
	fmt.Fprintf(r.Out, "Step %d/%d\n", p.Step, p.Total)
}

func (r *runner) collect(ctx context.Context) error {
	r.printProgress()

	step := r.w.Step()
	var err error
	switch step {
	case wizard.StepPlatform:
		err = r.collectPlatform()
	case wizard.StepAccount:
		err = r.collectAccount()
	case wizard.StepNetwork:
		err = r.collectNetwork()
	case wizard.StepPhone:
		err = r.collectPhone()
	case wizard.StepAmount:
		err = r.collectAmount()
	}
	if err != nil {
		return &WorkflowError{Step: step, Message: "collecting input", Cause: err}
	}
	return nil
}

// choose shows the items plus a back entry past the first step. It returns -1 when the user went
// back.
func (r *runner) choose(label string, items []string) (int, error) {
	withBack := r.w.Step() > wizard.StepPlatform
	if withBack {
		items = append(items, backItem)
	}

	idx, err := r.Prompter.Select(label, items)
	if err != nil {
		return 0, err
	}
	if withBack && idx == len(items)-1 {
		return -1, r.w.Backward()
	}
	return idx, nil
}

func (r *runner) forward() error {
	err := r.w.Forward()
	var validationErr *wizard.ValidationError
	if errors.As(err, &validationErr) {
		r.printValidationError(validationErr)
		return nil
	}
	return err
}

func (r *runner) printValidationError(err *wizard.ValidationError) {
	keys := make([]string, 0, len(err.Fields))
	for k := range err.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(r.Out, "❌ %v\n", err.Fields[k])
	}
}

func (r *runner) collectPlatform() error {
	platforms := r.w.CandidatePlatforms()
	if len(platforms) == 0 {
		return errors.New("no betting platform is available")
	}

	idx, err := r.choose("Betting platform", utils.MapSlice(platforms, func(p data.Platform) string { return p.Name }))
	if err != nil || idx < 0 {
		return err
	}
	if err = r.w.SelectPlatform(platforms[idx].ID); err != nil {
		return err
	}
	return r.forward()
}

func (r *runner) collectAccount() error {
	accounts := r.w.CandidateAccounts()
	if len(accounts) == 0 {
		fmt.Fprintln(r.Out, "⚠️  No betting account identifier is linked to this platform.")
		return r.w.Backward()
	}

	idx, err := r.choose("Betting account identifier", utils.MapSlice(accounts, func(a data.UserAppID) string { return a.UserAppID }))
	if err != nil || idx < 0 {
		return err
	}
	if err = r.w.SelectAccount(accounts[idx].ID); err != nil {
		return err
	}
	return r.forward()
}

func (r *runner) collectNetwork() error {
	networks := r.w.CandidateNetworks()
	if len(networks) == 0 {
		return errors.New("no mobile-money network is available")
	}

	idx, err := r.choose("Mobile-money network", utils.MapSlice(networks, func(n data.Network) string { return n.String() }))
	if err != nil || idx < 0 {
		return err
	}
	if err = r.w.SelectNetwork(networks[idx].ID); err != nil {
		return err
	}
	return r.forward()
}

func (r *runner) collectPhone() error {
	phones := r.w.CandidatePhones()
	if len(phones) == 0 {
		fmt.Fprintln(r.Out, "⚠️  No phone number is saved for this network.")
		return r.w.Backward()
	}

	idx, err := r.choose("Phone number", utils.MapSlice(phones, func(p data.UserPhone) string {
		return utils.FormatPhoneNumberForDisplay(p.Phone)
	}))
	if err != nil || idx < 0 {
		return err
	}
	if err = r.w.SelectPhone(phones[idx].ID); err != nil {
		return err
	}
	return r.forward()
}

func (r *runner) collectAmount() error {
	raw, err := r.Prompter.Input(fmt.Sprintf("Amount ('%s' to go back)", backInput), validateAmountInput)
	if err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, backInput) {
		return r.w.Backward()
	}

	amount, err := utils.ParseAmount(raw)
	if err != nil {
		return fmt.Errorf("parsing amount: %w", err)
	}
	if err = r.w.SetAmount(amount); err != nil {
		return err
	}

	if r.w.Type() == data.TransactionTypeWithdrawal {
		code, inputErr := r.Prompter.Input("Withdrawal code", validateWithdrawalCode)
		if inputErr != nil {
			return inputErr
		}
		if err = r.w.SetWithdrawalCode(code); err != nil {
			return err
		}
	}

	return r.forward()
}

func validateAmountInput(input string) error {
	if strings.EqualFold(strings.TrimSpace(input), backInput) {
		return nil
	}
	_, err := utils.ParseAmount(input)
	return err
}

func validateWithdrawalCode(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("withdrawal code is required")
	}
	return nil
}

// confirm shows the gate and handles the outcome of the submission. It reports true once the user
// is back on the dashboard.
func (r *runner) confirm(ctx context.Context) (bool, error) {
	summary, err := r.w.Summary()
	if err != nil {
		return false, &WorkflowError{Step: r.w.Step(), Message: "building summary", Cause: err}
	}
	r.printSummary(summary)

	ok, err := r.Prompter.Confirm(fmt.Sprintf("Confirm this %s", strings.ToLower(string(summary.Type))))
	if err != nil {
		return false, &WorkflowError{Step: r.w.Step(), Message: "confirming", Cause: err}
	}
	if !ok {
		return false, r.w.Cancel()
	}

	outcome, err := r.Coordinator.Confirm(ctx)
	if err != nil {
		return false, &WorkflowError{Step: r.w.Step(), Message: "submitting", Cause: err}
	}
	return r.handleOutcome(ctx, outcome)
}

func (r *runner) printSummary(s *wizard.Summary) {
	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, "📋 Summary")
	fmt.Fprintf(r.Out, "   Platform: %s\n", s.Platform)
	fmt.Fprintf(r.Out, "   Account:  %s\n", s.Account)
	fmt.Fprintf(r.Out, "   Network:  %s\n", s.Network)
	fmt.Fprintf(r.Out, "   Phone:    %s\n", s.Phone)
	fmt.Fprintf(r.Out, "   Amount:   %s\n", s.Amount.String())
	if s.WithdrawalCode != "" {
		fmt.Fprintf(r.Out, "   Code:     %s\n", s.WithdrawalCode)
	}
	fmt.Fprintln(r.Out)
}

func (r *runner) handleOutcome(ctx context.Context, outcome submission.Outcome) (bool, error) {
	for {
		var err error
		switch outcome.Kind {
		case submission.OutcomeDashboard:
			fmt.Fprintln(r.Out, "🏠 Back to the dashboard")
			return true, nil
		case submission.OutcomeRetry, submission.OutcomeDiscarded:
			return false, nil
		case submission.OutcomeInterstitial:
			outcome, err = r.interstitial(ctx, outcome.Link)
		case submission.OutcomeUSSD:
			outcome, err = r.ussd(ctx, outcome.Directive)
		default:
			return false, fmt.Errorf("unknown outcome %q", outcome.Kind)
		}
		if err != nil {
			return false, &WorkflowError{Step: r.w.Step(), Message: "completing transaction", Cause: err}
		}
	}
}

func (r *runner) interstitial(ctx context.Context, link string) (submission.Outcome, error) {
	fmt.Fprintf(r.Out, "🔗 Complete the payment at %s\n", link)

	idx, err := r.Prompter.Select("Payment link", []string{continueItem, cancelItem})
	if err != nil {
		return submission.Outcome{}, err
	}
	if idx == 0 {
		return r.Coordinator.ContinueHostedLink(ctx)
	}
	return r.Coordinator.CancelHostedLink(ctx)
}

func (r *runner) ussd(ctx context.Context, directive *data.USSDDirective) (submission.Outcome, error) {
	fmt.Fprintln(r.Out, "📱 Dial the following code to complete the payment")
	fmt.Fprintf(r.Out, "   Merchant: %s\n", directive.MerchantPhone)
	fmt.Fprintf(r.Out, "   Amount:   %s\n", directive.DisplayAmount.String())
	fmt.Fprintf(r.Out, "   Code:     %s\n", directive.DialCode)

	for {
		idx, err := r.Prompter.Select("USSD code", []string{copyCodeItem, dismissUSSDItem})
		if err != nil {
			return submission.Outcome{}, err
		}
		if idx == 1 {
			return r.Coordinator.DismissUSSD(ctx)
		}
		if _, err = r.Coordinator.CopyDialCode(ctx); err != nil {
			return submission.Outcome{}, err
		}
	}
}
