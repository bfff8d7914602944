package validators

import (
	"strings"

	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/utils"
)

// WizardStepValidator checks that the value collected by one wizard step is present and
// consistent with the earlier steps.
type WizardStepValidator struct {
	*Validator
}

func NewWizardStepValidator() *WizardStepValidator {
	return &WizardStepValidator{Validator: NewValidator()}
}

func (v *WizardStepValidator) ValidatePlatform(draft *data.TransactionDraft) {
	v.Check(draft.Platform != nil, "platform", "platform is required")
}

func (v *WizardStepValidator) ValidateAccount(draft *data.TransactionDraft) {
	v.Check(draft.Account != nil, "account", "betting account identifier is required")
	if draft.Account == nil {
		return
	}

	v.Check(strings.TrimSpace(draft.Account.UserAppID) != "", "account", "betting account identifier cannot be empty")
	v.Check(draft.Platform != nil && draft.Account.App == draft.Platform.ID, "account", "betting account identifier does not belong to the selected platform")
}

func (v *WizardStepValidator) ValidateNetwork(draft *data.TransactionDraft) {
	v.Check(draft.Network != nil, "network", "network is required")
}

func (v *WizardStepValidator) ValidatePhone(draft *data.TransactionDraft) {
	v.Check(draft.Phone != nil, "phone", "phone number is required")
	if draft.Phone == nil {
		return
	}

	v.CheckError(utils.ValidatePhoneNumber(draft.Phone.Phone), "phone", "")
	v.Check(draft.Network != nil && draft.Phone.Network == draft.Network.ID, "phone", "phone number is not linked to the selected network")
}

func (v *WizardStepValidator) ValidateAmount(draft *data.TransactionDraft) {
	v.Check(draft.Amount.IsPositive(), "amount", "amount must be greater than zero")
	if draft.Type == data.TransactionTypeWithdrawal {
		v.Check(strings.TrimSpace(draft.WithdrawalCode) != "", "withdrawal_code", "withdrawal code is required")
	}
}
