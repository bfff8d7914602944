package submission

import (
	"errors"
	"fmt"

	"github.com/betpay/betpay-wallet/internal/data"
)

var (
	ErrNoPendingLink = errors.New("no hosted payment link is pending")
	ErrNoDialCode    = errors.New("no USSD code is displayed")
)

// RemoteTransactionError is a create-transaction call the remote service refused or that never
// reached it. Message is what the user is shown.
type RemoteTransactionError struct {
	Type    data.TransactionType
	Message string
	Err     error
}

func (e *RemoteTransactionError) Error() string {
	return fmt.Sprintf("creating %s transaction: %v", e.Type, e.Err)
}

func (e *RemoteTransactionError) Unwrap() error {
	return e.Err
}
