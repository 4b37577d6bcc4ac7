// Package client holds the caller-side session: the authenticated account
// id, the background notification poller and the interactive menus.
package client

import (
	"sync"
	"time"

	"bank-ledger-go/internal/rpc"

	"go.uber.org/zap"
)

// Session tracks the authenticated account and, while logged in, polls the
// endpoint for pending notifications at a fixed interval.
type Session struct {
	rpc          *rpc.Client
	logger       *zap.Logger
	pollInterval time.Duration

	mu        sync.Mutex
	accountId string
	stopChan  chan struct{}
	doneChan  chan struct{}
}

func NewSession(rpcClient *rpc.Client, logger *zap.Logger, pollInterval time.Duration) *Session {
	return &Session{
		rpc:          rpcClient,
		logger:       logger,
		pollInterval: pollInterval,
	}
}

// AccountId returns the authenticated account id, or "" when logged out.
func (s *Session) AccountId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountId
}

// Login authenticates against the endpoint. On success the session records
// the account id and, when notify is non-nil, starts the notification
// poller; each drained notification is handed to notify in order.
func (s *Session) Login(id, password string, notify func(string)) (bool, error) {
	ok, err := s.rpc.Authenticate(id, password)
	if err != nil || !ok {
		return ok, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountId = id
	if notify != nil {
		s.stopChan = make(chan struct{})
		s.doneChan = make(chan struct{})
		go s.pollLoop(id, notify, s.stopChan, s.doneChan)
	}
	return true, nil
}

// Logout stops the poller and clears the authenticated account.
func (s *Session) Logout() {
	s.mu.Lock()
	stop, done := s.stopChan, s.doneChan
	s.accountId = ""
	s.stopChan, s.doneChan = nil, nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

func (s *Session) pollLoop(accountId string, notify func(string), stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			notifications, err := s.rpc.GetNotifications(accountId)
			if err != nil {
				s.logger.Warn("Notification poll failed",
					zap.String("account_id", accountId),
					zap.Error(err))
				continue
			}
			for _, n := range notifications {
				notify(n)
			}
		case <-stop:
			return
		}
	}
}
