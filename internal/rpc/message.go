// Package rpc carries the bank operations over a newline-delimited JSON
// request/response protocol on TCP. Each request names a method and its
// parameters; each response echoes the request id and carries either a
// result or a rendered error message.
package rpc

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method names exposed by the endpoint.
const (
	MethodCreateAccount    = "create_account"
	MethodAuthenticate     = "authenticate"
	MethodGetBalance       = "get_balance"
	MethodDeposit          = "deposit"
	MethodWithdraw         = "withdraw"
	MethodTransfer         = "transfer"
	MethodGetHistory       = "get_transaction_history"
	MethodGetNotifications = "get_notifications"
)

// Request is one remote call.
type Request struct {
	Id     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Response answers the request with the matching id. Ok distinguishes a
// result from a domain or protocol failure; Error holds the rendered
// message when Ok is false.
type Response struct {
	Id     string          `json:"id"`
	Ok     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// NewRequest builds a request with a fresh id and marshaled params.
func NewRequest(method string, params any) (Request, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return Request{}, err
	}
	return Request{Id: uuid.New().String(), Method: method, Params: data}, nil
}

// CredentialParams carries an account id and password (create_account,
// authenticate).
type CredentialParams struct {
	AccountId string `json:"account_id"`
	Password  string `json:"password"`
}

// AccountParams carries a bare account id (get_balance, history,
// notifications).
type AccountParams struct {
	AccountId string `json:"account_id"`
}

// AmountParams carries an account id and amount (deposit, withdraw).
type AmountParams struct {
	AccountId string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// TransferParams carries both sides of a transfer.
type TransferParams struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}
