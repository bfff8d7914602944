package httphandler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stellar/go-stellar-sdk/support/http/httpdecode"
	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/betpay/betpay-wallet/internal/betapi"
	"github.com/betpay/betpay-wallet/internal/bridge"
	"github.com/betpay/betpay-wallet/internal/crashtracker"
	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/registry"
	"github.com/betpay/betpay-wallet/internal/serve/httperror"
	"github.com/betpay/betpay-wallet/internal/serve/middleware"
	"github.com/betpay/betpay-wallet/internal/serve/validators"
	"github.com/betpay/betpay-wallet/internal/services"
	"github.com/betpay/betpay-wallet/internal/submission"
	"github.com/betpay/betpay-wallet/internal/wizard"
)

const NavigationDashboard = "dashboard"

// SessionHandler hosts wizard sessions for the web and mobile shells. Every response is the
// session view, which carries the effects the shell has to perform on the user's device.
type SessionHandler struct {
	Registry           registry.RegistryInterface
	Client             betapi.ClientInterface
	Sessions           services.SessionStore
	CrashTrackerClient crashtracker.CrashTrackerClient
	MonitorService     monitor.MonitorServiceInterface
}

type Candidates struct {
	Platforms []data.Platform  `json:"platforms,omitempty"`
	Accounts  []data.UserAppID `json:"accounts,omitempty"`
	Networks  []data.Network   `json:"networks,omitempty"`
	Phones    []data.UserPhone `json:"phones,omitempty"`
}

type SessionView struct {
	ID         string                 `json:"id"`
	Type       data.TransactionType   `json:"type"`
	State      wizard.State           `json:"state"`
	Progress   wizard.Progress        `json:"progress"`
	Draft      *data.TransactionDraft `json:"draft"`
	Candidates *Candidates            `json:"candidates,omitempty"`
	Summary    *wizard.Summary        `json:"summary,omitempty"`
	Outcome    *submission.Outcome    `json:"outcome,omitempty"`
	Effects    []bridge.Effect        `json:"effects"`
	Navigation string                 `json:"navigation,omitempty"`
}

// PostSession starts a deposit or withdrawal wizard.
func (h SessionHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqBody *validators.CreateSessionRequest
	if err := httpdecode.DecodeJSON(r, &reqBody); err != nil {
		httperror.BadRequest("invalid request body", err, nil).WithErrorCode(httperror.Code400_0).Render(w)
		return
	}

	validator := validators.NewSessionRequestValidator()
	txType := validator.ValidateCreateSessionRequest(reqBody)
	if validator.HasErrors() {
		httperror.BadRequest("invalid request body", nil, validator.Errors).WithErrorCode(httperror.Code400_0).Render(w)
		return
	}

	recorder := bridge.NewRecorder()
	coordinator, err := submission.StartSession(ctx, txType, h.Registry, submission.CoordinatorOptions{
		Client:         h.Client,
		Bridge:         recorder,
		CrashTracker:   h.CrashTrackerClient,
		MonitorService: h.MonitorService,
	})
	if err != nil {
		h.renderError(ctx, w, err, "Cannot start the wizard")
		return
	}

	session := &services.WizardSession{
		ID:          uuid.NewString(),
		Coordinator: coordinator,
		Effects:     recorder,
		CreatedAt:   time.Now(),
	}
	if err = h.Sessions.Store(session); err != nil {
		httperror.InternalError(ctx, "Cannot store the wizard session", err, nil).Render(w)
		return
	}

	if h.MonitorService != nil {
		labels := map[string]string{"type": string(txType), "front_end": "http"}
		if monitorErr := h.MonitorService.MonitorCounters(monitor.WizardSessionsStartedTag, labels); monitorErr != nil {
			log.Ctx(ctx).Errorf("monitoring counter %s: %v", monitor.WizardSessionsStartedTag, monitorErr)
		}
	}
	log.Ctx(ctx).WithFields(log.F{"session_id": session.ID, "type": txType}).Info("Wizard session started")

	httpjson.RenderStatus(w, http.StatusCreated, buildSessionView(session), httpjson.JSON)
}

// GetSession returns the session view. Pending effects are delivered once.
func (h SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ context.Context, _ *services.WizardSession) error {
		return nil
	})
}

func (h SessionHandler) PutPlatform(w http.ResponseWriter, r *http.Request) {
	h.withSelection(w, r, func(session *services.WizardSession, id string) error {
		return session.Coordinator.Wizard().SelectPlatform(id)
	})
}

func (h SessionHandler) PutAccount(w http.ResponseWriter, r *http.Request) {
	h.withNumericSelection(w, r, func(session *services.WizardSession, id int64) error {
		return session.Coordinator.Wizard().SelectAccount(id)
	})
}

func (h SessionHandler) PutNetwork(w http.ResponseWriter, r *http.Request) {
	h.withNumericSelection(w, r, func(session *services.WizardSession, id int64) error {
		return session.Coordinator.Wizard().SelectNetwork(id)
	})
}

func (h SessionHandler) PutPhone(w http.ResponseWriter, r *http.Request) {
	h.withNumericSelection(w, r, func(session *services.WizardSession, id int64) error {
		return session.Coordinator.Wizard().SelectPhone(id)
	})
}

func (h SessionHandler) PutAmount(w http.ResponseWriter, r *http.Request) {
	var reqBody *validators.AmountRequest
	if err := httpdecode.DecodeJSON(r, &reqBody); err != nil {
		httperror.BadRequest("invalid request body", err, nil).WithErrorCode(httperror.Code400_0).Render(w)
		return
	}

	validator := validators.NewSessionRequestValidator()
	amount, withdrawalCode := validator.ValidateAmountRequest(reqBody)
	if validator.HasErrors() {
		httperror.BadRequest("invalid request body", nil, validator.Errors).WithErrorCode(httperror.Code400_0).Render(w)
		return
	}

	h.withSession(w, r, func(_ context.Context, session *services.WizardSession) error {
		wz := session.Coordinator.Wizard()
		if err := wz.SetAmount(amount); err != nil {
			return err
		}
		if wz.Type() == data.TransactionTypeWithdrawal {
			return wz.SetWithdrawalCode(withdrawalCode)
		}
		return nil
	})
}

func (h SessionHandler) PostForward(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ context.Context, session *services.WizardSession) error {
		return session.Coordinator.Wizard().Forward()
	})
}

func (h SessionHandler) PostBackward(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ context.Context, session *services.WizardSession) error {
		return session.Coordinator.Wizard().Backward()
	})
}

// PostCancel leaves the confirmation gate. A submission still in flight is not cancelled, its
// result is discarded.
func (h SessionHandler) PostCancel(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(_ context.Context, session *services.WizardSession) error {
		return session.Coordinator.Wizard().Cancel()
	})
}

func (h SessionHandler) PostConfirm(w http.ResponseWriter, r *http.Request) {
	h.withOutcome(w, r, func(ctx context.Context, coordinator *submission.Coordinator) (submission.Outcome, error) {
		return coordinator.Confirm(ctx)
	})
}

func (h SessionHandler) PostContinueLink(w http.ResponseWriter, r *http.Request) {
	h.withOutcome(w, r, func(ctx context.Context, coordinator *submission.Coordinator) (submission.Outcome, error) {
		return coordinator.ContinueHostedLink(ctx)
	})
}

func (h SessionHandler) PostCancelLink(w http.ResponseWriter, r *http.Request) {
	h.withOutcome(w, r, func(ctx context.Context, coordinator *submission.Coordinator) (submission.Outcome, error) {
		return coordinator.CancelHostedLink(ctx)
	})
}

// PostCopyCode keeps the USSD outcome on screen: the copy result is reported as a toast effect.
func (h SessionHandler) PostCopyCode(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(ctx context.Context, session *services.WizardSession) error {
		if _, err := session.Coordinator.CopyDialCode(ctx); err != nil {
			return err
		}
		session.SetOutcome(&submission.Outcome{Kind: submission.OutcomeUSSD, Directive: session.Coordinator.Directive()})
		return nil
	})
}

func (h SessionHandler) PostDismissCode(w http.ResponseWriter, r *http.Request) {
	h.withOutcome(w, r, func(ctx context.Context, coordinator *submission.Coordinator) (submission.Outcome, error) {
		return coordinator.DismissUSSD(ctx)
	})
}

func (h SessionHandler) withSelection(w http.ResponseWriter, r *http.Request, apply func(*services.WizardSession, string) error) {
	var reqBody *validators.SelectionRequest
	if err := httpdecode.DecodeJSON(r, &reqBody); err != nil {
		httperror.BadRequest("invalid request body", err, nil).WithErrorCode(httperror.Code400_0).Render(w)
		return
	}

	validator := validators.NewSessionRequestValidator()
	id := validator.ValidateSelectionRequest(reqBody)
	if validator.HasErrors() {
		httperror.BadRequest("invalid request body", nil, validator.Errors).WithErrorCode(httperror.Code400_0).Render(w)
		return
	}

	h.withSession(w, r, func(_ context.Context, session *services.WizardSession) error {
		return apply(session, id)
	})
}

func (h SessionHandler) withNumericSelection(w http.ResponseWriter, r *http.Request, apply func(*services.WizardSession, int64) error) {
	h.withSelection(w, r, func(session *services.WizardSession, id string) error {
		numericID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return &wizard.ValidationError{
				Step:   session.Coordinator.Wizard().Step(),
				Fields: map[string]any{"id": "id must be a number"},
			}
		}
		return apply(session, numericID)
	})
}

func (h SessionHandler) withOutcome(w http.ResponseWriter, r *http.Request, run func(context.Context, *submission.Coordinator) (submission.Outcome, error)) {
	h.withSession(w, r, func(ctx context.Context, session *services.WizardSession) error {
		outcome, err := run(ctx, session.Coordinator)
		if err != nil {
			return err
		}
		session.SetOutcome(&outcome)
		return nil
	})
}

// withSession runs action on the session named in the URL and renders the resulting view. The
// outcome of the previous action is cleared before action runs.
func (h SessionHandler) withSession(w http.ResponseWriter, r *http.Request, action func(context.Context, *services.WizardSession) error) {
	ctx := r.Context()

	sessionID := chi.URLParam(r, middleware.SessionIDURLParam)
	session, ok := h.Sessions.Get(sessionID)
	if !ok {
		httperror.NotFound("wizard session not found or expired", nil, nil).WithErrorCode(httperror.Code404_0).Render(w)
		return
	}

	if r.Method != http.MethodGet {
		session.SetOutcome(nil)
	}
	if err := action(ctx, session); err != nil {
		h.renderError(ctx, w, err, "Cannot process the wizard action")
		return
	}

	httpjson.Render(w, buildSessionView(session), httpjson.JSON)
}

// stateErrors are the actions that don't apply to the current wizard state.
var stateErrors = []error{
	wizard.ErrNotOnStep,
	wizard.ErrNotCollecting,
	wizard.ErrNotConfirming,
	wizard.ErrAtFirstStep,
	submission.ErrNoPendingLink,
	submission.ErrNoDialCode,
}

func (h SessionHandler) renderError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	var validationErr *wizard.ValidationError
	if errors.As(err, &validationErr) {
		httperror.BadRequest("invalid value for step "+validationErr.Step.String(), err, validationErr.Fields).
			WithErrorCode(httperror.Code400_1).Render(w)
		return
	}
	if errors.Is(err, wizard.ErrUnknownSelection) {
		httperror.BadRequest(err.Error(), err, nil).WithErrorCode(httperror.Code400_2).Render(w)
		return
	}
	if errors.Is(err, wizard.ErrSubmissionInFlight) {
		httperror.Conflict(wizard.ErrSubmissionInFlight.Error(), err, nil).WithErrorCode(httperror.Code409_1).Render(w)
		return
	}
	for _, stateErr := range stateErrors {
		if errors.Is(err, stateErr) {
			httperror.Conflict(stateErr.Error(), err, nil).WithErrorCode(httperror.Code409_0).Render(w)
			return
		}
	}

	var missingDataErr *data.MissingDataError
	if errors.As(err, &missingDataErr) {
		httperror.UnprocessableEntity(submission.MsgMissingData, err, map[string]any{"fields": missingDataErr.Fields}).
			WithErrorCode(httperror.Code422_0).Render(w)
		return
	}

	var apiErr *betapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusUnauthorized {
			httperror.Unauthorized("", err, nil).WithErrorCode(httperror.Code401_0).Render(w)
			return
		}
		log.Ctx(ctx).Warnf("%s: %v", msg, err)
		httperror.BadGateway("", err, nil).WithErrorCode(httperror.Code502_0).Render(w)
		return
	}

	httperror.InternalError(ctx, msg, err, nil).Render(w)
}

func buildSessionView(session *services.WizardSession) SessionView {
	wz := session.Coordinator.Wizard()
	view := SessionView{
		ID:       session.ID,
		Type:     wz.Type(),
		State:    wz.State(),
		Progress: wz.Progress(),
		Draft:    wz.Draft(),
		Outcome:  session.Outcome(),
		Effects:  session.Effects.Drain(),
	}
	if view.Effects == nil {
		view.Effects = []bridge.Effect{}
	}

	switch view.State {
	case wizard.StateCollecting:
		view.Candidates = candidatesFor(wz)
	case wizard.StateConfirming, wizard.StateSubmitting:
		if summary, err := wz.Summary(); err == nil {
			view.Summary = summary
		}
	}

	if view.Outcome != nil && view.Outcome.Kind == submission.OutcomeDashboard {
		view.Navigation = NavigationDashboard
	}
	return view
}

func candidatesFor(wz *wizard.Wizard) *Candidates {
	switch wz.Step() {
	case wizard.StepPlatform:
		return &Candidates{Platforms: wz.CandidatePlatforms()}
	case wizard.StepAccount:
		return &Candidates{Accounts: wz.CandidateAccounts()}
	case wizard.StepNetwork:
		return &Candidates{Networks: wz.CandidateNetworks()}
	case wizard.StepPhone:
		return &Candidates{Phones: wz.CandidatePhones()}
	default:
		return nil
	}
}
