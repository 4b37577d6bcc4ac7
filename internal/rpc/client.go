package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a connection to the bank endpoint. A single in-flight call at a
// time: the mutex pairs each written request with the next response on the
// wire, so one client may be shared across goroutines (the notification
// poller relies on this).
type Client struct {
	mu          sync.Mutex
	conn        net.Conn
	enc         *json.Encoder
	dec         *json.Decoder
	callTimeout time.Duration
}

// Dial connects to the endpoint at addr.
func Dial(addr string, dialTimeout, callTimeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %s: %v", addr, err)
	}
	return &Client{
		conn:        conn,
		enc:         json.NewEncoder(conn),
		dec:         json.NewDecoder(conn),
		callTimeout: callTimeout,
	}, nil
}

// Close tears down the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// call performs one request/response exchange. It returns the response even
// when ok is false; err is reserved for transport and protocol failures.
func (c *Client) call(method string, params any) (Response, error) {
	req, err := NewRequest(method, params)
	if err != nil {
		return Response{}, fmt.Errorf("unable to encode request: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.callTimeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.callTimeout)); err != nil {
			return Response{}, fmt.Errorf("unable to set deadline: %v", err)
		}
	}
	if err := c.enc.Encode(req); err != nil {
		return Response{}, fmt.Errorf("unable to send request: %v", err)
	}

	var resp Response
	if err := c.dec.Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("unable to read response: %v", err)
	}
	if resp.Id != req.Id {
		return Response{}, fmt.Errorf("response id mismatch: sent %s, got %s", req.Id, resp.Id)
	}
	return resp, nil
}

// CreateAccount returns the server's status message for both outcomes;
// err is transport-only.
func (c *Client) CreateAccount(id, password string) (string, error) {
	resp, err := c.call(MethodCreateAccount, CredentialParams{AccountId: id, Password: password})
	if err != nil {
		return "", err
	}
	if !resp.Ok {
		return resp.Error, nil
	}
	var msg string
	if err := json.Unmarshal(resp.Result, &msg); err != nil {
		return "", fmt.Errorf("unable to decode result: %v", err)
	}
	return msg, nil
}

// Authenticate reports whether the id/password pair is valid.
func (c *Client) Authenticate(id, password string) (bool, error) {
	resp, err := c.call(MethodAuthenticate, CredentialParams{AccountId: id, Password: password})
	if err != nil {
		return false, err
	}
	if !resp.Ok {
		return false, errors.New(resp.Error)
	}
	var ok bool
	if err := json.Unmarshal(resp.Result, &ok); err != nil {
		return false, fmt.Errorf("unable to decode result: %v", err)
	}
	return ok, nil
}

// GetBalance returns the account's balance; a domain failure surfaces as an
// error carrying the server's message.
func (c *Client) GetBalance(id string) (decimal.Decimal, error) {
	resp, err := c.call(MethodGetBalance, AccountParams{AccountId: id})
	if err != nil {
		return decimal.Zero, err
	}
	if !resp.Ok {
		return decimal.Zero, errors.New(resp.Error)
	}
	var balance decimal.Decimal
	if err := json.Unmarshal(resp.Result, &balance); err != nil {
		return decimal.Zero, fmt.Errorf("unable to decode result: %v", err)
	}
	return balance, nil
}

// Deposit returns the server's status message for both outcomes.
func (c *Client) Deposit(id string, amount decimal.Decimal) (string, error) {
	return c.amountCall(MethodDeposit, AmountParams{AccountId: id, Amount: amount})
}

// Withdraw returns the server's status message for both outcomes.
func (c *Client) Withdraw(id string, amount decimal.Decimal) (string, error) {
	return c.amountCall(MethodWithdraw, AmountParams{AccountId: id, Amount: amount})
}

// Transfer returns the server's status message for both outcomes.
func (c *Client) Transfer(from, to string, amount decimal.Decimal) (string, error) {
	resp, err := c.call(MethodTransfer, TransferParams{From: from, To: to, Amount: amount})
	if err != nil {
		return "", err
	}
	return statusMessage(resp)
}

// GetHistory returns the account's transaction log in order.
func (c *Client) GetHistory(id string) ([]string, error) {
	return c.listCall(MethodGetHistory, id)
}

// GetNotifications drains and returns the account's pending notifications.
func (c *Client) GetNotifications(id string) ([]string, error) {
	return c.listCall(MethodGetNotifications, id)
}

func (c *Client) amountCall(method string, params AmountParams) (string, error) {
	resp, err := c.call(method, params)
	if err != nil {
		return "", err
	}
	return statusMessage(resp)
}

func (c *Client) listCall(method, id string) ([]string, error) {
	resp, err := c.call(method, AccountParams{AccountId: id})
	if err != nil {
		return nil, err
	}
	if !resp.Ok {
		return nil, errors.New(resp.Error)
	}
	var list []string
	if err := json.Unmarshal(resp.Result, &list); err != nil {
		return nil, fmt.Errorf("unable to decode result: %v", err)
	}
	return list, nil
}

func statusMessage(resp Response) (string, error) {
	if !resp.Ok {
		return resp.Error, nil
	}
	var msg string
	if err := json.Unmarshal(resp.Result, &msg); err != nil {
		return "", fmt.Errorf("unable to decode result: %v", err)
	}
	return msg, nil
}
