package tourguide

import (
	"context"
	"net"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

// Connector opens transport connections to a tour-guide. A connection
// actively refused by the remote end is retried after a fixed delay, for as
// long as the context allows; this covers a client started before its server
// has bound. Any other failure is returned at once.
type Connector struct {
	opts options
}

// NewConnector returns a Connector configured by opt.
// RetryDelayOption, ClockOption and LoggerOption apply.
func NewConnector(opt ...Option) *Connector {
	return &Connector{opts: newOptions(opt...)}
}

// Connect dials address:port over TCP.
//
// Returns an ErrAddress error when the endpoint cannot be resolved and an
// ErrIO error for any dial failure other than a refusal.
func (c *Connector) Connect(ctx context.Context, address string, port uint16) (net.Conn, error) {
	if strings.TrimSpace(address) == "" {
		return nil, addressError(errors.New("empty host"), "resolve")
	}
	hostport := net.JoinHostPort(address, strconv.Itoa(int(port)))
	addr, err := net.ResolveTCPAddr("tcp", hostport)
	if err != nil {
		return nil, addressError(err, "resolve "+hostport)
	}

	for attempt := 1; ; attempt++ {
		conn, err := c.opts.dial(ctx, "tcp", addr.String())
		if err == nil {
			c.opts.logger.Debug("connected", "addr", addr, "attempts", attempt)
			return conn, nil
		}
		if !isRefused(err) {
			return nil, ioError(err, "dial "+hostport)
		}

		c.opts.logger.Debug("connection refused, retrying", "addr", addr, "attempt", attempt, "delay", c.opts.retryDelay)
		select {
		case <-ctx.Done():
			return nil, ioError(ctx.Err(), "dial "+hostport)
		case <-c.opts.clock.After(c.opts.retryDelay):
		}
	}
}

// Connect dials address:port with the default Connector.
func Connect(ctx context.Context, address string, port uint16) (net.Conn, error) {
	return NewConnector().Connect(ctx, address, port)
}

func isRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
