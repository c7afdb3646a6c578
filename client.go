package tourguide

import (
	"bufio"
	"context"
	"time"

	"github.com/pkg/errors"
)

// Client asks a tour-guide one question per connection.
type Client struct {
	address   string
	port      uint16
	connector *Connector
	codec     Codec
	opts      options
}

// NewClient returns a Client for the tour-guide at address:port.
func NewClient(address string, port uint16, opt ...Option) *Client {
	opts := newOptions(opt...)
	return &Client{
		address:   address,
		port:      port,
		connector: &Connector{opts: opts},
		codec:     opts.codec(),
		opts:      opts,
	}
}

// Ask connects, sends req and waits for the reply. The exchange is bounded
// by the context deadline, or by the exchange timeout when ctx has none.
//
// A Failure response is a valid answer and is returned without error.
// A reply that is not a response yields ErrUnexpectedPayload.
func (c *Client) Ask(ctx context.Context, req Request) (Response, error) {
	conn, err := c.connector.Connect(ctx, c.address, c.port)
	if err != nil {
		return Response{}, err
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok && c.opts.exchangeTimeout > 0 {
		deadline, ok = time.Now().Add(c.opts.exchangeTimeout), true
	}
	if ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return Response{}, ioError(err, "set deadline")
		}
	}

	// Unblock pending reads and writes when ctx is canceled.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if err := c.codec.Encode(bufio.NewWriter(conn), NewRequestMessage(req)); err != nil {
		return Response{}, err
	}

	reply, err := c.codec.Decode(conn)
	if err != nil {
		return Response{}, err
	}
	if reply.Data.Response == nil {
		return Response{}, errors.Wrapf(ErrUnexpectedPayload, "got %s", reply.Data)
	}

	c.opts.logger.Debug("answer received", "request", req, "response", reply.Data.Response)
	return *reply.Data.Response, nil
}
