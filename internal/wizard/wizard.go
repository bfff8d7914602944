package wizard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/registry"
	"github.com/betpay/betpay-wallet/internal/serve/validators"
	"github.com/betpay/betpay-wallet/internal/utils"
)

type Step int

const (
	StepPlatform Step = iota + 1
	StepAccount
	StepNetwork
	StepPhone
	StepAmount
)

const TotalSteps = int(StepAmount)

func (s Step) String() string {
	switch s {
	case StepPlatform:
		return "PLATFORM"
	case StepAccount:
		return "ACCOUNT"
	case StepNetwork:
		return "NETWORK"
	case StepPhone:
		return "PHONE"
	case StepAmount:
		return "AMOUNT"
	default:
		return fmt.Sprintf("STEP(%d)", int(s))
	}
}

type State string

const (
	StateCollecting State = "COLLECTING"
	StateConfirming State = "CONFIRMING"
	StateSubmitting State = "SUBMITTING"
	StateCompleted  State = "COMPLETED"
)

type Progress struct {
	Step  Step `json:"step"`
	Total int  `json:"total"`
}

// Summary is what the confirmation gate shows before the user commits.
type Summary struct {
	Type           data.TransactionType `json:"type"`
	Platform       string               `json:"platform"`
	Account        string               `json:"account"`
	Network        string               `json:"network"`
	Phone          string               `json:"phone"`
	Amount         decimal.Decimal      `json:"amount"`
	WithdrawalCode string               `json:"withdrawal_code,omitempty"`
}

// Ticket identifies one accepted submission. Results carrying an outdated ticket are discarded.
type Ticket uint64

// Wizard is the five-step data collection state machine for one transaction. It is safe for
// concurrent use.
type Wizard struct {
	mu         sync.Mutex
	catalog    *registry.Catalog
	draft      *data.TransactionDraft
	step       Step
	state      State
	inFlight   bool
	generation uint64
}

func New(txType data.TransactionType, catalog *registry.Catalog) *Wizard {
	if catalog == nil {
		catalog = &registry.Catalog{}
	}

	return &Wizard{
		catalog: catalog,
		draft:   data.NewTransactionDraft(txType),
		step:    StepPlatform,
		state:   StateCollecting,
	}
}

func (w *Wizard) Type() data.TransactionType {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Type
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Wizard) Progress() Progress {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Progress{Step: w.step, Total: TotalSteps}
}

// Draft returns a copy of the draft being collected.
func (w *Wizard) Draft() *data.TransactionDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

func (w *Wizard) Catalog() *registry.Catalog {
	return w.catalog
}

func (w *Wizard) CandidatePlatforms() []data.Platform {
	return append([]data.Platform(nil), w.catalog.Platforms...)
}

// CandidateAccounts lists the account identifiers linked to the selected platform.
func (w *Wizard) CandidateAccounts() []data.UserAppID {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft.Platform == nil {
		return nil
	}
	return w.catalog.AccountsForPlatform(w.draft.Platform.ID)
}

func (w *Wizard) CandidateNetworks() []data.Network {
	return append([]data.Network(nil), w.catalog.Networks...)
}

// CandidatePhones lists the saved phones tied to the selected network.
func (w *Wizard) CandidatePhones() []data.UserPhone {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft.Network == nil {
		return nil
	}
	return w.catalog.PhonesForNetwork(w.draft.Network.ID)
}

func (w *Wizard) SelectPlatform(id string) error {
	return w.onStep(StepPlatform, func() error {
		platform, ok := w.catalog.PlatformByID(strings.TrimSpace(id))
		if !ok {
			return fmt.Errorf("%w: platform %q", ErrUnknownSelection, id)
		}
		w.draft.Platform = platform
		return nil
	})
}

func (w *Wizard) SelectAccount(id int64) error {
	return w.onStep(StepAccount, func() error {
		account, ok := w.catalog.UserAppIDByID(id)
		if !ok {
			return fmt.Errorf("%w: account %d", ErrUnknownSelection, id)
		}
		w.draft.Account = account
		return nil
	})
}

func (w *Wizard) SelectNetwork(id int64) error {
	return w.onStep(StepNetwork, func() error {
		network, ok := w.catalog.NetworkByID(id)
		if !ok {
			return fmt.Errorf("%w: network %d", ErrUnknownSelection, id)
		}
		w.draft.Network = network
		return nil
	})
}

func (w *Wizard) SelectPhone(id int64) error {
	return w.onStep(StepPhone, func() error {
		phone, ok := w.catalog.UserPhoneByID(id)
		if !ok {
			return fmt.Errorf("%w: phone %d", ErrUnknownSelection, id)
		}
		w.draft.Phone = phone
		return nil
	})
}

func (w *Wizard) SetAmount(amount decimal.Decimal) error {
	return w.onStep(StepAmount, func() error {
		w.draft.Amount = amount
		return nil
	})
}

func (w *Wizard) SetWithdrawalCode(code string) error {
	return w.onStep(StepAmount, func() error {
		w.draft.WithdrawalCode = strings.TrimSpace(code)
		return nil
	})
}

func (w *Wizard) onStep(step Step, apply func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateCollecting {
		return ErrNotCollecting
	}
	if w.step != step {
		return fmt.Errorf("%w: current step is %s, got %s", ErrNotOnStep, w.step, step)
	}
	return apply()
}

// Forward validates the current step and advances. On the last step a valid draft opens the
// confirmation gate.
func (w *Wizard) Forward() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateCollecting {
		return ErrNotCollecting
	}

	steps := []Step{w.step}
	if w.step == StepAmount {
		steps = []Step{StepPlatform, StepAccount, StepNetwork, StepPhone, StepAmount}
	}
	for _, step := range steps {
		if err := validateStep(step, w.draft); err != nil {
			return err
		}
	}

	if w.step == StepAmount {
		w.state = StateConfirming
		return nil
	}
	w.step++
	return nil
}

// Backward moves to the previous step. Collected values are kept.
func (w *Wizard) Backward() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateCollecting {
		return ErrNotCollecting
	}
	if w.step == StepPlatform {
		return ErrAtFirstStep
	}
	w.step--
	return nil
}

func validateStep(step Step, draft *data.TransactionDraft) error {
	v := validators.NewWizardStepValidator()
	switch step {
	case StepPlatform:
		v.ValidatePlatform(draft)
	case StepAccount:
		v.ValidateAccount(draft)
	case StepNetwork:
		v.ValidateNetwork(draft)
	case StepPhone:
		v.ValidatePhone(draft)
	case StepAmount:
		v.ValidateAmount(draft)
	}

	if v.HasErrors() {
		return &ValidationError{Step: step, Fields: v.Errors}
	}
	return nil
}

// Summary returns the display fields of the confirmation gate.
func (w *Wizard) Summary() (*Summary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateConfirming && w.state != StateSubmitting {
		return nil, ErrNotConfirming
	}

	d := w.draft
	summary := &Summary{Type: d.Type, Amount: d.Amount, WithdrawalCode: d.WithdrawalCode}
	if d.Platform != nil {
		summary.Platform = d.Platform.Name
	}
	if d.Account != nil {
		summary.Account = d.Account.UserAppID
	}
	if d.Network != nil {
		summary.Network = d.Network.DisplayName()
	}
	if d.Phone != nil {
		summary.Phone = utils.FormatPhoneNumberForDisplay(d.Phone.Phone)
	}
	return summary, nil
}

// Cancel closes the confirmation gate and returns to the amount step with the draft untouched.
// A submission still in flight keeps running but its result will be discarded.
func (w *Wizard) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case StateConfirming:
	case StateSubmitting:
		w.generation++
	default:
		return ErrNotConfirming
	}

	w.state = StateCollecting
	w.step = StepAmount
	return nil
}

// BeginSubmit accepts a confirmation. It returns the ticket to hand back to EndSubmit and a
// snapshot of the draft to send.
func (w *Wizard) BeginSubmit() (Ticket, *data.TransactionDraft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		return 0, nil, ErrSubmissionInFlight
	}
	if w.state != StateConfirming {
		return 0, nil, ErrNotConfirming
	}
	if missing := w.draft.MissingFields(); len(missing) > 0 {
		return 0, nil, &data.MissingDataError{Fields: missing}
	}

	w.generation++
	w.inFlight = true
	w.state = StateSubmitting
	return Ticket(w.generation), w.draft.Clone(), nil
}

// EndSubmit records the result of the submission identified by ticket. It returns false when the
// result is stale and must be discarded.
func (w *Wizard) EndSubmit(ticket Ticket, succeeded bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.inFlight = false
	if uint64(ticket) != w.generation || w.state != StateSubmitting {
		return false
	}

	if succeeded {
		w.state = StateCompleted
		w.draft = data.NewTransactionDraft(w.draft.Type)
		return true
	}

	w.state = StateConfirming
	return true
}

func (w *Wizard) InFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}
