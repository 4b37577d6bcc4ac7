package rpc

import (
	"sync"
	"testing"
	"time"

	"bank-ledger-go/internal/api"
	"bank-ledger-go/internal/digest"
	"bank-ledger-go/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func setupEndpoint(t *testing.T) (*Server, *Client) {
	t.Helper()

	service := api.NewLedgerService(ledger.NewStore(0), digest.SHA256{}, zap.NewNop())
	server := NewServer(service, zap.NewNop())
	if err := server.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	t.Cleanup(func() { server.Close() })

	client, err := Dial(server.Addr(), time.Second, 5*time.Second)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return server, client
}

func TestEndToEndScenario(t *testing.T) {
	_, client := setupEndpoint(t)

	msg, err := client.CreateAccount("alice", "pw1")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if msg != "Account created successfully." {
		t.Errorf("Unexpected create message: %q", msg)
	}
	if _, err := client.CreateAccount("bob", "pw2"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	// Duplicate create comes back as a status message, not a transport error.
	msg, err = client.CreateAccount("alice", "pw1")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if msg != "The account already exists." {
		t.Errorf("Unexpected duplicate message: %q", msg)
	}

	ok, err := client.Authenticate("alice", "pw1")
	if err != nil || !ok {
		t.Fatalf("Expected successful authentication, got ok=%v err=%v", ok, err)
	}
	ok, err = client.Authenticate("alice", "wrong")
	if err != nil || ok {
		t.Fatalf("Expected failed authentication, got ok=%v err=%v", ok, err)
	}

	msg, err = client.Deposit("alice", decimal.NewFromInt(300))
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if msg != "Deposit of 300 to account alice. New balance is 300." {
		t.Errorf("Unexpected deposit message: %q", msg)
	}

	msg, err = client.Transfer("alice", "bob", decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if msg != "Transfer of 100 from account alice to account bob. New balances: alice: 200, bob: 100." {
		t.Errorf("Unexpected transfer message: %q", msg)
	}

	balance, err := client.GetBalance("alice")
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected balance 200, got %s", balance)
	}

	history, err := client.GetHistory("alice")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	want := []string{"Deposit: 300", "Transfer to bob: 100"}
	if len(history) != len(want) {
		t.Fatalf("Expected history %v, got %v", want, history)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("History %d: expected %q, got %q", i, want[i], history[i])
		}
	}

	notifications, err := client.GetNotifications("bob")
	if err != nil {
		t.Fatalf("GetNotifications failed: %v", err)
	}
	if len(notifications) != 1 || notifications[0] != "Transfer received from alice: 100" {
		t.Errorf("Unexpected notifications: %v", notifications)
	}
	notifications, err = client.GetNotifications("bob")
	if err != nil {
		t.Fatalf("GetNotifications failed: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("Expected drained mailbox, got %v", notifications)
	}
}

func TestDomainErrorsOverTheWire(t *testing.T) {
	_, client := setupEndpoint(t)

	if _, err := client.GetBalance("ghost"); err == nil || err.Error() != "The account does not exist." {
		t.Errorf("Expected not-found error, got %v", err)
	}

	msg, err := client.Withdraw("ghost", decimal.NewFromInt(-5))
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if msg != "The amount must be positive." {
		t.Errorf("Expected the amount error before the existence error, got %q", msg)
	}

	if _, err := client.CreateAccount("alice", "pw1"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	msg, err = client.Withdraw("alice", decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if msg != "Insufficient funds." {
		t.Errorf("Unexpected overdraft message: %q", msg)
	}

	msg, err = client.Transfer("alice", "ghost", decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if msg != "One or both accounts do not exist." {
		t.Errorf("Unexpected transfer message: %q", msg)
	}

	// Unknown id polls are empty lists, never errors.
	notifications, err := client.GetNotifications("ghost")
	if err != nil {
		t.Fatalf("GetNotifications failed: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("Expected empty list, got %v", notifications)
	}
}

func TestUnknownMethod(t *testing.T) {
	_, client := setupEndpoint(t)

	resp, err := client.call("open_vault", AccountParams{AccountId: "alice"})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if resp.Ok {
		t.Fatal("Expected unknown method to fail")
	}
	if resp.Error != "unknown method: open_vault" {
		t.Errorf("Unexpected error: %q", resp.Error)
	}
}

func TestConcurrentClients(t *testing.T) {
	server, client := setupEndpoint(t)

	if _, err := client.CreateAccount("alice", "pw1"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	const clients = 10
	const depositsPerClient = 20
	amount := decimal.NewFromInt(5)

	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := Dial(server.Addr(), time.Second, 5*time.Second)
			if err != nil {
				t.Errorf("Dial failed: %v", err)
				return
			}
			defer c.Close()
			for j := 0; j < depositsPerClient; j++ {
				if _, err := c.Deposit("alice", amount); err != nil {
					t.Errorf("Deposit failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	balance, err := client.GetBalance("alice")
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	want := amount.Mul(decimal.NewFromInt(clients * depositsPerClient))
	if !balance.Equal(want) {
		t.Errorf("Expected balance %s, got %s", want, balance)
	}
}
