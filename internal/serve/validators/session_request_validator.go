package validators

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/utils"
)

type CreateSessionRequest struct {
	Type string `json:"type"`
}

type SelectionRequest struct {
	ID string `json:"id"`
}

type AmountRequest struct {
	Amount         string `json:"amount"`
	WithdrawalCode string `json:"withdrawal_code"`
}

type SessionRequestValidator struct {
	*Validator
}

func NewSessionRequestValidator() *SessionRequestValidator {
	return &SessionRequestValidator{Validator: NewValidator()}
}

func (v *SessionRequestValidator) ValidateCreateSessionRequest(reqBody *CreateSessionRequest) data.TransactionType {
	v.Check(reqBody != nil, "body", "request body is empty")
	if v.HasErrors() {
		return ""
	}

	txType, err := data.ParseTransactionType(reqBody.Type)
	v.CheckError(err, "type", "type must be one of [DEPOSIT WITHDRAWAL]")
	return txType
}

func (v *SessionRequestValidator) ValidateSelectionRequest(reqBody *SelectionRequest) string {
	v.Check(reqBody != nil, "body", "request body is empty")
	if v.HasErrors() {
		return ""
	}

	id := strings.TrimSpace(reqBody.ID)
	v.Check(id != "", "id", "id is required")
	return id
}

func (v *SessionRequestValidator) ValidateAmountRequest(reqBody *AmountRequest) (decimal.Decimal, string) {
	v.Check(reqBody != nil, "body", "request body is empty")
	if v.HasErrors() {
		return decimal.Zero, ""
	}

	amount, err := utils.ParseAmount(reqBody.Amount)
	v.CheckError(err, "amount", "")
	return amount, strings.TrimSpace(reqBody.WithdrawalCode)
}
