package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

var ErrInvalidTransactionType = errors.New("invalid transaction type")

func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TransactionTypeDeposit):
		return TransactionTypeDeposit, nil
	case string(TransactionTypeWithdrawal), "WITHDRAW":
		return TransactionTypeWithdrawal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
}

const TransactionSourceWeb = "web"

// CreateTransactionRequest is the body sent to the remote deposit and withdrawal endpoints.
type CreateTransactionRequest struct {
	Amount      json.Number `json:"amount"`
	PhoneNumber string      `json:"phone_number"`
	App         string      `json:"app"`
	UserAppID   string      `json:"user_app_id"`
	Network     int64       `json:"network"`
	Source      string      `json:"source"`
	// The remote service spells this field "withdriwal_code".
	WithdrawalCode string `json:"withdriwal_code,omitempty"`
}

type CreateTransactionResponse struct {
	TransactionLink string `json:"transaction_link,omitempty"`
}

func (r CreateTransactionResponse) HasLink() bool {
	return strings.TrimSpace(r.TransactionLink) != ""
}

// TransactionDraft is the in-progress transaction collected across the wizard steps.
type TransactionDraft struct {
	Type           TransactionType `json:"type"`
	Platform       *Platform       `json:"platform,omitempty"`
	Account        *UserAppID      `json:"account,omitempty"`
	Network        *Network        `json:"network,omitempty"`
	Phone          *UserPhone      `json:"phone,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	WithdrawalCode string          `json:"withdrawal_code,omitempty"`
}

func NewTransactionDraft(txType TransactionType) *TransactionDraft {
	return &TransactionDraft{Type: txType, Amount: decimal.Zero}
}

// MissingDataError is returned when a draft is submitted with a required field unset.
type MissingDataError struct {
	Fields []string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("transaction draft is missing required fields: %s", strings.Join(e.Fields, ", "))
}

// MissingFields lists the required fields that are still unset.
func (d *TransactionDraft) MissingFields() []string {
	var missing []string
	if d.Platform == nil {
		missing = append(missing, "platform")
	}
	if d.Account == nil {
		missing = append(missing, "account")
	}
	if d.Network == nil {
		missing = append(missing, "network")
	}
	if d.Phone == nil {
		missing = append(missing, "phone")
	}
	if !d.Amount.IsPositive() {
		missing = append(missing, "amount")
	}
	if d.Type == TransactionTypeWithdrawal && strings.TrimSpace(d.WithdrawalCode) == "" {
		missing = append(missing, "withdrawal_code")
	}
	return missing
}

// Clone returns a deep copy so a snapshot can be handed out without sharing pointers.
func (d *TransactionDraft) Clone() *TransactionDraft {
	clone := *d
	if d.Platform != nil {
		p := *d.Platform
		clone.Platform = &p
	}
	if d.Account != nil {
		a := *d.Account
		clone.Account = &a
	}
	if d.Network != nil {
		n := *d.Network
		clone.Network = &n
	}
	if d.Phone != nil {
		ph := *d.Phone
		clone.Phone = &ph
	}
	return &clone
}

// ToCreateRequest builds the remote request body. It fails with a *MissingDataError if any
// required field is unset.
func (d *TransactionDraft) ToCreateRequest() (CreateTransactionRequest, error) {
	if missing := d.MissingFields(); len(missing) > 0 {
		return CreateTransactionRequest{}, &MissingDataError{Fields: missing}
	}

	req := CreateTransactionRequest{
		Amount:      json.Number(d.Amount.String()),
		PhoneNumber: d.Phone.Phone,
		App:         d.Platform.ID,
		UserAppID:   d.Account.UserAppID,
		Network:     d.Network.ID,
		Source:      TransactionSourceWeb,
	}
	if d.Type == TransactionTypeWithdrawal {
		req.WithdrawalCode = strings.TrimSpace(d.WithdrawalCode)
	}

	return req, nil
}
