package tourguide

import (
	"context"
	"net"
	"time"

	"k8s.io/utils/clock"
)

// Default configuration values.
const (
	// DefaultExchangeTimeout bounds one decode/decide/encode cycle.
	DefaultExchangeTimeout = 30 * time.Second
	// DefaultRetryDelay is how long the connector waits after a refused
	// connection before trying again.
	DefaultRetryDelay = 10 * time.Millisecond
)

// options holds the configuration shared by the dispatcher, the connector
// and the client.
type options struct {
	logger Logger
	clock  clock.Clock

	// onError is called when an exchange fails before its response was sent.
	onError func(addr net.Addr, err error)

	maxFrameSize    int           // maximum payload size of a single frame
	exchangeTimeout time.Duration // deadline of one exchange, negative disables it
	retryDelay      time.Duration // wait between refused connection attempts

	dial func(ctx context.Context, network, address string) (net.Conn, error)
}

// Option is a function that configures options.
type Option func(*options)

// newOptions applies opt over the defaults.
func newOptions(opt ...Option) options {
	var opts options
	for _, o := range opt {
		o(&opts)
	}
	checkOptions(&opts)
	return opts
}

// checkOptions sets default values for unset options.
func checkOptions(opts *options) {
	if opts.maxFrameSize <= 0 {
		opts.maxFrameSize = DefaultMaxFrameSize
	}

	if opts.exchangeTimeout == 0 {
		opts.exchangeTimeout = DefaultExchangeTimeout
	}

	if opts.retryDelay <= 0 {
		opts.retryDelay = DefaultRetryDelay
	}

	if opts.clock == nil {
		opts.clock = clock.RealClock{}
	}

	if opts.logger == nil {
		opts.logger = defaultLogger()
	}

	if opts.onError == nil {
		opts.onError = func(net.Addr, error) {}
	}

	if opts.dial == nil {
		var d net.Dialer
		opts.dial = d.DialContext
	}
}

func (o options) codec() Codec {
	return Codec{MaxFrameSize: o.maxFrameSize}
}

// MessageMaxSize returns an Option that sets the maximum payload size of a
// frame. Larger frames are rejected with ErrFrameTooLarge.
func MessageMaxSize(size int) Option {
	return func(o *options) {
		o.maxFrameSize = size
	}
}

// ExchangeTimeoutOption returns an Option that sets the deadline for one
// exchange, covering the request read and the response write.
// A negative value disables the deadline.
func ExchangeTimeoutOption(timeout time.Duration) Option {
	return func(o *options) {
		o.exchangeTimeout = timeout
	}
}

// OnErrorOption returns an Option that sets the exchange error callback.
// The callback is invoked after the failed connection has been dropped.
func OnErrorOption(cb func(addr net.Addr, err error)) Option {
	return func(o *options) {
		o.onError = cb
	}
}

// RetryDelayOption returns an Option that sets the delay between connection
// attempts refused by the remote end.
func RetryDelayOption(delay time.Duration) Option {
	return func(o *options) {
		o.retryDelay = delay
	}
}

// ClockOption returns an Option that sets the clock used for retry delays.
func ClockOption(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// LoggerOption returns an Option that sets the logger.
// If not set, the default slog logger will be used.
func LoggerOption(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
