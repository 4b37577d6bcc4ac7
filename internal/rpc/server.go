package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"bank-ledger-go/internal/api"

	"go.uber.org/zap"
)

// Server accepts TCP connections and serves bank requests. Each connection
// gets its own goroutine; requests on one connection are answered in order,
// so a caller's operations observe program order.
type Server struct {
	service *api.LedgerService
	logger  *zap.Logger

	ln      net.Listener
	connsMu sync.Mutex
	conns   map[net.Conn]struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

func NewServer(service *api.LedgerService, logger *zap.Logger) *Server {
	return &Server{
		service: service,
		logger:  logger,
		conns:   make(map[net.Conn]struct{}),
		done:    make(chan struct{}),
	}
}

// Listen binds addr and starts accepting connections in the background.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %v", addr, err)
	}
	s.ln = ln
	s.logger.Info("Bank endpoint listening", zap.String("address", ln.Addr().String()))

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Close stops accepting, closes every open connection and waits for the
// connection goroutines to drain. In-flight mutations run to completion;
// only the transport is torn down.
func (s *Server) Close() error {
	close(s.done)
	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}
	s.connsMu.Lock()
	for conn := range s.conns {
		conn.Close()
		delete(s.conns, conn)
	}
	s.connsMu.Unlock()
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.logger.Error("Accept failed", zap.Error(err))
			}
			return
		}

		s.connsMu.Lock()
		s.conns[conn] = struct{}{}
		s.connsMu.Unlock()

		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.connsMu.Lock()
		delete(s.conns, conn)
		s.connsMu.Unlock()
		conn.Close()
	}()

	ctx := context.Background()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	remote := conn.RemoteAddr().String()

	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			select {
			case <-s.done:
			default:
				s.logger.Debug("Connection closed",
					zap.String("remote", remote),
					zap.Error(err))
			}
			return
		}

		resp := s.handle(ctx, req)
		if err := enc.Encode(resp); err != nil {
			s.logger.Warn("Failed to write response",
				zap.String("remote", remote),
				zap.String("request_id", req.Id),
				zap.Error(err))
			return
		}
	}
}

// handle dispatches one request to the service layer and wraps the outcome
// in a response. Domain failures come back with ok=false and the rendered
// message; malformed params are reported the same way.
func (s *Server) handle(ctx context.Context, req Request) Response {
	switch req.Method {
	case MethodCreateAccount:
		var p CredentialParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(req, "invalid parameters")
		}
		msg, err := s.service.CreateAccount(ctx, p.AccountId, p.Password)
		if err != nil {
			return failure(req, api.ErrorMessage(err))
		}
		return success(req, msg)

	case MethodAuthenticate:
		var p CredentialParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(req, "invalid parameters")
		}
		return success(req, s.service.Authenticate(ctx, p.AccountId, p.Password))

	case MethodGetBalance:
		var p AccountParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(req, "invalid parameters")
		}
		balance, err := s.service.GetBalance(ctx, p.AccountId)
		if err != nil {
			return failure(req, api.ErrorMessage(err))
		}
		return success(req, balance)

	case MethodDeposit:
		var p AmountParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(req, "invalid parameters")
		}
		result, err := s.service.Deposit(ctx, p.AccountId, p.Amount)
		if err != nil {
			return failure(req, api.ErrorMessage(err))
		}
		return success(req, result.Message)

	case MethodWithdraw:
		var p AmountParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(req, "invalid parameters")
		}
		result, err := s.service.Withdraw(ctx, p.AccountId, p.Amount)
		if err != nil {
			return failure(req, api.ErrorMessage(err))
		}
		return success(req, result.Message)

	case MethodTransfer:
		var p TransferParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(req, "invalid parameters")
		}
		result, err := s.service.Transfer(ctx, p.From, p.To, p.Amount)
		if err != nil {
			return failure(req, api.TransferErrorMessage(err))
		}
		return success(req, result.Message)

	case MethodGetHistory:
		var p AccountParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(req, "invalid parameters")
		}
		history, err := s.service.GetHistory(ctx, p.AccountId)
		if err != nil {
			return failure(req, api.ErrorMessage(err))
		}
		return success(req, history)

	case MethodGetNotifications:
		var p AccountParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(req, "invalid parameters")
		}
		return success(req, s.service.PollNotifications(ctx, p.AccountId))
	}

	return failure(req, fmt.Sprintf("unknown method: %s", req.Method))
}

func success(req Request, result any) Response {
	data, err := json.Marshal(result)
	if err != nil {
		return failure(req, fmt.Sprintf("unable to encode result: %v", err))
	}
	return Response{Id: req.Id, Ok: true, Result: data}
}

func failure(req Request, message string) Response {
	return Response{Id: req.Id, Ok: false, Error: message}
}
