package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/edgeap/edgeap/manager/errs"
	"github.com/edgeap/edgeap/manager/service"
	"github.com/edgeap/edgeap/pkg/logger"
	"github.com/edgeap/edgeap/pkg/util"
	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"
)

type Endpoint string

const (
	EndpointDeploy   Endpoint = "deploy"
	EndpointTeardown Endpoint = "teardown"
)

// DefaultMaxRequestSize bounds the bytes read for one request object.
const DefaultMaxRequestSize = 64 << 10

const lingerTimeout = time.Second

var (
	ErrServerClosed = errors.New("dispatcher: server closed")

	errRequestTooLarge = errors.New("request exceeds size limit")
)

type Options struct {
	RequestHost  string
	TeardownHost string
	// ReadTimeout closes a connection that sends nothing for this long. Zero
	// disables it.
	ReadTimeout time.Duration
	// MaxRequestSize caps a single request. Zero means DefaultMaxRequestSize.
	MaxRequestSize int64
}

// Server accepts deploy and teardown requests on two TCP endpoints. Every
// connection gets its own goroutine; requests on one connection are handled
// in order, and the lifecycle coordinator serializes state changes across
// all of them.
type Server struct {
	svc domain.Service
	opt Options

	baseCtx context.Context
	cancel  context.CancelFunc

	mu        sync.Mutex
	listeners map[Endpoint]net.Listener
	closing   atomic.Bool

	accepting sync.WaitGroup
	handlers  sync.WaitGroup
	conns     *util.GenericMap[string, net.Conn]
}

func NewServer(svc domain.Service, opt Options) *Server {
	if opt.MaxRequestSize <= 0 {
		opt.MaxRequestSize = DefaultMaxRequestSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		svc:     svc,
		opt:     opt,
		baseCtx: ctx,
		cancel:  cancel,
		conns:   util.NewGenericMap[string, net.Conn](),
	}
}

// Listen binds both endpoints. Nothing is accepted until Serve runs.
func (s *Server) Listen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Load() {
		return ErrServerClosed
	}
	var lc net.ListenConfig
	listeners := make(map[Endpoint]net.Listener, 2)
	for _, b := range []struct {
		ep   Endpoint
		host string
	}{
		{EndpointDeploy, s.opt.RequestHost},
		{EndpointTeardown, s.opt.TeardownHost},
	} {
		ln, err := lc.Listen(ctx, "tcp", b.host)
		if err != nil {
			for _, opened := range listeners {
				_ = opened.Close()
			}
			return fmt.Errorf("listen %s endpoint on %s: %w", b.ep, b.host, err)
		}
		listeners[b.ep] = ln
	}
	s.listeners = listeners
	return nil
}

// Addr returns the bound address of an endpoint, or nil before Listen.
func (s *Server) Addr(ep Endpoint) net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ln, ok := s.listeners[ep]; ok {
		return ln.Addr()
	}
	return nil
}

// ActiveConns is the number of open client connections.
func (s *Server) ActiveConns() int {
	return s.conns.Len()
}

// Serve runs both accept loops and blocks until Shutdown or an accept error.
func (s *Server) Serve() error {
	s.mu.Lock()
	if s.closing.Load() {
		s.mu.Unlock()
		return ErrServerClosed
	}
	if s.listeners == nil {
		s.mu.Unlock()
		return errors.New("dispatcher: Serve called before Listen")
	}
	var eg errgroup.Group
	for ep, ln := range s.listeners {
		s.accepting.Add(1)
		eg.Go(func() error {
			defer s.accepting.Done()
			return s.acceptLoop(ep, ln)
		})
		logger.Logger(s.baseCtx).Info().Msgf("%s endpoint listening on %s", ep, ln.Addr())
	}
	s.mu.Unlock()
	return eg.Wait()
}

func (s *Server) acceptLoop(ep Endpoint, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if s.closing.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return fmt.Errorf("accept on %s endpoint: %w", ep, err)
		}
		s.handlers.Add(1)
		go s.serveConn(ep, nc)
	}
}

// Shutdown stops accepting, lets requests in flight finish and closes idle
// connections. When ctx ends first, remaining connections are closed and
// their requests aborted.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing.Store(true)
	for _, ln := range s.listeners {
		_ = ln.Close()
	}
	s.mu.Unlock()
	s.accepting.Wait()

	// wakes readers blocked on idle connections
	s.conns.Range(func(_ string, nc net.Conn) bool {
		_ = nc.SetReadDeadline(time.Now())
		return true
	})

	done := make(chan struct{})
	go func() {
		s.handlers.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		s.conns.Range(func(_ string, nc net.Conn) bool {
			_ = nc.Close()
			return true
		})
		<-done
		return ctx.Err()
	}
}

func (s *Server) serveConn(ep Endpoint, nc net.Conn) {
	defer s.handlers.Done()
	id := xid.New().String()
	remote := nc.RemoteAddr().String()
	log := logger.Logger(s.baseCtx).With().
		Str("conn_id", id).
		Str("endpoint", string(ep)).
		Str("remote_addr", remote).
		Logger()
	ctx := log.WithContext(domain.WithRemoteAddr(s.baseCtx, remote))

	s.conns.Store(id, nc)
	defer func() {
		s.conns.Delete(id)
		_ = nc.Close()
	}()
	log.Debug().Msg("connection accepted")

	rd := &requestReader{r: nc, limit: s.opt.MaxRequestSize}
	dec := json.NewDecoder(rd)
	enc := json.NewEncoder(nc)
	for !s.closing.Load() {
		if s.opt.ReadTimeout > 0 {
			_ = nc.SetReadDeadline(time.Now().Add(s.opt.ReadTimeout))
			// Shutdown may have set its deadline before ours
			if s.closing.Load() {
				return
			}
		}
		rd.reset()
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			var syntaxErr *json.SyntaxError
			switch {
			case errors.As(err, &syntaxErr), errors.Is(err, errRequestTooLarge):
				// the stream cannot be resynchronised
				log.Warn().Err(err).Msg("malformed request")
				_ = enc.Encode(failure(ep, service.MsgInvalidRequest))
				lingeringClose(nc, s.opt.MaxRequestSize)
			case endOfSession(err):
				log.Debug().Msg("connection closed")
			default:
				log.Warn().Err(err).Msg("read request")
			}
			return
		}
		if err := enc.Encode(s.handle(ctx, ep, raw)); err != nil {
			log.Warn().Err(err).Msg("write response")
			return
		}
	}
}

// requestReader fails once more than limit bytes have been read since the
// last reset.
type requestReader struct {
	r     io.Reader
	limit int64
	n     int64
}

func (l *requestReader) Read(p []byte) (int, error) {
	if l.n >= l.limit {
		return 0, errRequestTooLarge
	}
	if rem := l.limit - l.n; int64(len(p)) > rem {
		p = p[:rem]
	}
	n, err := l.r.Read(p)
	l.n += int64(n)
	return n, err
}

func (l *requestReader) reset() {
	l.n = 0
}

// lingeringClose half-closes nc and discards what the peer still sends, so
// the final response is not lost to a reset.
func lingeringClose(nc net.Conn, limit int64) {
	if tc, ok := nc.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}
	_ = nc.SetReadDeadline(time.Now().Add(lingerTimeout))
	_, _ = io.Copy(io.Discard, io.LimitReader(nc, limit))
}

func endOfSession(err error) bool {
	var netErr net.Error
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		(errors.As(err, &netErr) && netErr.Timeout())
}

func failure(ep Endpoint, msg string) any {
	if ep == EndpointDeploy {
		return &DeployResponse{RespCode: RespFailure, FailureMsg: msg}
	}
	return &TeardownResponse{RespCode: RespFailure, FailureMsg: msg}
}

func (s *Server) handle(ctx context.Context, ep Endpoint, raw json.RawMessage) any {
	switch ep {
	case EndpointDeploy:
		req, msg := decodeDeploy(raw)
		if req == nil {
			logger.Logger(ctx).Warn().Msg(msg)
			return failure(ep, msg)
		}
		res, err := s.svc.Deploy(ctx, req)
		if err != nil {
			return failure(ep, errs.ClientMessage(err, service.MsgDeployFailed))
		}
		return &DeployResponse{
			RespCode:  RespSuccess,
			ServiceID: res.ServiceID,
			IP:        res.NodeAddress,
			Port:      res.Port,
		}
	default:
		req, msg := decodeTeardown(raw)
		if req == nil {
			logger.Logger(ctx).Warn().Msg(msg)
			return failure(ep, msg)
		}
		if err := s.svc.Teardown(ctx, req); err != nil {
			return failure(ep, errs.ClientMessage(err, service.MsgTeardownFailed))
		}
		return &TeardownResponse{RespCode: RespSuccess}
	}
}
