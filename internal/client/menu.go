package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bank-ledger-go/internal/rpc"

	"github.com/shopspring/decimal"
)

// Menu is the interactive front end: a top-level loop for login and account
// creation, and a per-user loop for the bank operations. Input and output
// are injected so the flows are testable without a terminal.
type Menu struct {
	session *Session
	rpc     *rpc.Client
	in      *bufio.Scanner
	out     io.Writer
}

func NewMenu(session *Session, rpcClient *rpc.Client, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		session: session,
		rpc:     rpcClient,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run drives the top-level menu until the user quits or input ends.
func (m *Menu) Run() {
	for {
		fmt.Fprintln(m.out, "\n1. Log in\n2. Create account\n3. Quit")
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			id, ok := m.prompt("Enter your account id: ")
			if !ok {
				return
			}
			password, ok := m.prompt("Enter your password: ")
			if !ok {
				return
			}
			logged, err := m.session.Login(id, password, func(text string) {
				fmt.Fprintf(m.out, "\nNotification: %s\n", text)
			})
			if err != nil {
				fmt.Fprintf(m.out, "Login failed: %v\n", err)
				continue
			}
			if !logged {
				fmt.Fprintln(m.out, "Incorrect account id or password.")
				continue
			}
			fmt.Fprintln(m.out, "Login successful.")
			if !m.userLoop() {
				return
			}
		case "2":
			id, ok := m.prompt("Enter your account id: ")
			if !ok {
				return
			}
			password, ok := m.prompt("Enter your password: ")
			if !ok {
				return
			}
			msg, err := m.rpc.CreateAccount(id, password)
			if err != nil {
				fmt.Fprintf(m.out, "Request failed: %v\n", err)
				continue
			}
			fmt.Fprintln(m.out, msg)
		case "3":
			m.session.Logout()
			return
		default:
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
		}
	}
}

// userLoop drives the per-user menu. It returns false when input ended and
// the whole program should stop.
func (m *Menu) userLoop() bool {
	defer m.session.Logout()
	for {
		fmt.Fprintln(m.out, "\n1. Balance\n2. Deposit\n3. Withdraw\n4. Transfer\n5. Statement\n6. Log out")
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			balance, err := m.rpc.GetBalance(m.session.AccountId())
			if err != nil {
				fmt.Fprintf(m.out, "Request failed: %v\n", err)
				continue
			}
			fmt.Fprintf(m.out, "Balance: %s\n", balance.String())
		case "2":
			amount, ok := m.promptAmount("Enter the amount to deposit: ")
			if !ok {
				continue
			}
			m.printStatus(m.rpc.Deposit(m.session.AccountId(), amount))
		case "3":
			amount, ok := m.promptAmount("Enter the amount to withdraw: ")
			if !ok {
				continue
			}
			m.printStatus(m.rpc.Withdraw(m.session.AccountId(), amount))
		case "4":
			to, ok := m.prompt("Enter the destination account: ")
			if !ok {
				return false
			}
			amount, ok := m.promptAmount("Enter the amount to transfer: ")
			if !ok {
				continue
			}
			m.printStatus(m.rpc.Transfer(m.session.AccountId(), to, amount))
		case "5":
			history, err := m.rpc.GetHistory(m.session.AccountId())
			if err != nil {
				fmt.Fprintf(m.out, "Request failed: %v\n", err)
				continue
			}
			if len(history) == 0 {
				fmt.Fprintln(m.out, "No transactions.")
				continue
			}
			fmt.Fprintln(m.out, "Transaction history:")
			for _, line := range history {
				fmt.Fprintln(m.out, line)
			}
		case "6":
			return true
		default:
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
		}
	}
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptAmount(label string) (decimal.Decimal, bool) {
	text, ok := m.prompt(label)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid amount.")
		return decimal.Zero, false
	}
	return amount, true
}

func (m *Menu) printStatus(msg string, err error) {
	if err != nil {
		fmt.Fprintf(m.out, "Request failed: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, msg)
}
