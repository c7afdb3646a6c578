package tourguide

import (
	"bufio"
	"net"
	"time"

	"github.com/pkg/errors"
)

// Decider maps an incoming message and the shared state to the message sent
// back. Implementations must not block: they lock the state, compute and
// return.
//
// Anything that is not a well-formed request should be answered with a
// Failure response rather than by aborting.
type Decider[S any] interface {
	Decide(msg Message, state S) Message
}

// DecideFunc adapts a plain function to a Decider.
type DecideFunc[S any] func(msg Message, state S) Message

// Decide calls f(msg, state).
func (f DecideFunc[S]) Decide(msg Message, state S) Message {
	return f(msg, state)
}

// Dispatcher performs exactly one exchange per connection: it decodes one
// request, asks the Decider for the reply, encodes it and closes the
// connection. It implements Handler.
//
// Dispatcher does not serialize calls to Decide; S must protect itself,
// usually by being a *Guarded value.
type Dispatcher[S any] struct {
	state   S
	decider Decider[S]
	codec   Codec
	logger  Logger
	opts    options
}

// NewDispatcher binds state to decider.
// Returns ErrInvalidDecider if decider is nil.
func NewDispatcher[S any](state S, decider Decider[S], opt ...Option) (*Dispatcher[S], error) {
	if decider == nil {
		return nil, ErrInvalidDecider
	}
	if f, ok := decider.(DecideFunc[S]); ok && f == nil {
		return nil, ErrInvalidDecider
	}

	opts := newOptions(opt...)
	return &Dispatcher[S]{
		state:   state,
		decider: decider,
		codec:   opts.codec(),
		logger:  opts.logger,
		opts:    opts,
	}, nil
}

// Handle runs one exchange on conn. Failures are logged and reported through
// the OnErrorOption callback; they never reach the accept loop.
func (d *Dispatcher[S]) Handle(conn *net.TCPConn) {
	_ = d.Exchange(conn)
}

// Exchange decodes one message from conn, decides the reply and writes it
// back. conn is always closed on return. When decoding fails no reply is
// sent.
func (d *Dispatcher[S]) Exchange(conn net.Conn) (err error) {
	addr := conn.RemoteAddr()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("decider panicked: %v", r)
		}
		_ = conn.Close()

		if err != nil {
			d.logger.Warn("exchange failed", "addr", addr, "error", err)
			d.opts.onError(addr, err)
			return
		}
		d.logger.Debug("exchange complete", "addr", addr, "elapsed", time.Since(start))
	}()

	if d.opts.exchangeTimeout > 0 {
		if err := conn.SetDeadline(start.Add(d.opts.exchangeTimeout)); err != nil {
			return ioError(err, "set deadline")
		}
	}

	msg, err := d.codec.Decode(conn)
	if err != nil {
		return err
	}
	d.logger.Debug("message received", "addr", addr, "payload", msg.Data)

	reply := d.decider.Decide(msg, d.state)

	w := bufio.NewWriter(conn)
	if err := d.codec.Encode(w, reply); err != nil {
		return err
	}
	d.logger.Debug("reply sent", "addr", addr, "payload", reply.Data)
	return nil
}
