package tourguide

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"k8s.io/utils/clock"
)

// Handler is the interface for handling incoming TCP connections.
// Implementations own the connection and must close it.
type Handler interface {
	// Handle is called on its own goroutine for each new connection.
	Handle(conn *net.TCPConn)
}

// Server accepts TCP connections and hands each one to a Handler.
// Accepting never waits for a previous connection's handler.
type Server struct {
	listener        *net.TCPListener
	logger          Logger
	clock           clock.Clock
	shutdownTimeout time.Duration

	mu        sync.Mutex
	shutdown  bool
	closeOnce sync.Once
	closed    chan struct{} // closed by Close, bypasses the drain timeout

	unbindOnce sync.Once
	unbindErr  error

	inflight sync.WaitGroup
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// ServerLoggerOption sets the logger for the server.
func ServerLoggerOption(logger Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// ServerClockOption sets the clock used for accept backoff and drain waits.
func ServerClockOption(c clock.Clock) ServerOption {
	return func(s *Server) {
		s.clock = c
	}
}

// ServerShutdownTimeoutOption sets how long Serve waits for in-flight
// handlers once the context is canceled. Default is 0: Serve returns as soon
// as the listener is closed.
func ServerShutdownTimeoutOption(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}

// New creates a new TCP server bound to the specified address.
// Returns an ErrIO error if the address cannot be bound.
func New(addr *net.TCPAddr, opts ...ServerOption) (*Server, error) {
	listener, err := net.ListenTCP(addr.Network(), addr)
	if err != nil {
		return nil, ioError(err, "bind "+addr.String())
	}

	s := &Server{
		listener: listener,
		logger:   slog.Default(),
		clock:    clock.RealClock{},
		closed:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Serve accepts connections and runs handler.Handle for each one on its own
// goroutine. It blocks until the context is canceled or Close is called, and
// returns ctx.Err() after a context-driven stop. Either way the listener is
// closed before Serve returns, so new dials are refused.
func (s *Server) Serve(ctx context.Context, handler Handler) error {
	s.logger.Info("server started", "addr", s.listener.Addr())

	go func() {
		select {
		case <-ctx.Done():
		case <-s.closed:
		}
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		// Unblocks Accept.
		_ = s.unbind()
	}()

	var backoff time.Duration
	for {
		conn, err := s.listener.AcceptTCP()
		if err != nil {
			if s.isShutdown() {
				s.drain()
				s.logger.Info("server stopped", "addr", s.listener.Addr())
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return ioError(err, "accept")
			}

			// Transient failure such as running out of file descriptors.
			backoff = nextBackoff(backoff)
			s.logger.Error("accept error", "error", err, "retry_in", backoff)
			s.pause(ctx, backoff)
			continue
		}
		backoff = 0

		s.logger.Debug("accepted connection", "remote_addr", conn.RemoteAddr())
		_ = conn.SetNoDelay(true)

		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			handler.Handle(conn)
		}()
	}
}

func nextBackoff(d time.Duration) time.Duration {
	const (
		first    = 5 * time.Millisecond
		maxDelay = time.Second
	)
	if d == 0 {
		return first
	}
	if d *= 2; d > maxDelay {
		return maxDelay
	}
	return d
}

// pause waits for d on the server clock, or less if the server stops.
func (s *Server) pause(ctx context.Context, d time.Duration) {
	select {
	case <-s.clock.After(d):
	case <-ctx.Done():
	case <-s.closed:
	}
}

func (s *Server) isShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

// drain waits up to shutdownTimeout for running handlers.
func (s *Server) drain() {
	if s.shutdownTimeout <= 0 {
		return
	}

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	s.logger.Info("draining connections", "timeout", s.shutdownTimeout)
	select {
	case <-done:
	case <-s.clock.After(s.shutdownTimeout):
		s.logger.Warn("shutdown timeout expired with connections in flight")
	case <-s.closed:
		s.logger.Debug("drain bypassed via Close()")
	}
}

// Close stops the server by closing the underlying listener.
// A pending drain in Serve is abandoned. Safe to call multiple times.
func (s *Server) Close() error {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()

	s.closeOnce.Do(func() {
		close(s.closed)
	})
	return s.unbind()
}

// unbind closes the listener once and reports that close's result.
func (s *Server) unbind() error {
	s.unbindOnce.Do(func() {
		s.unbindErr = s.listener.Close()
	})
	return s.unbindErr
}

// Addr returns the listener's network address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// ListenAndServe binds all interfaces on port and runs one exchange per
// accepted connection with state and decider, until ctx is canceled.
// A bind failure is returned immediately as an ErrIO error; callers
// normally treat it as fatal.
func ListenAndServe[S any](ctx context.Context, port uint16, state S, decider Decider[S], opt ...Option) error {
	dispatcher, err := NewDispatcher(state, decider, opt...)
	if err != nil {
		return err
	}

	serverOpts := []ServerOption{
		ServerLoggerOption(dispatcher.logger),
		ServerClockOption(dispatcher.opts.clock),
	}
	if t := dispatcher.opts.exchangeTimeout; t > 0 {
		// No exchange outlives its deadline.
		serverOpts = append(serverOpts, ServerShutdownTimeoutOption(t))
	}

	srv, err := New(&net.TCPAddr{IP: net.IPv4zero, Port: int(port)}, serverOpts...)
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.Serve(ctx, dispatcher)
}
