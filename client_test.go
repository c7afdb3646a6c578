package tourguide

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

// startServer runs a dispatcher for decider on a loopback port.
func startServer[S any](t *testing.T, state S, decider Decider[S]) uint16 {
	t.Helper()

	addr := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0}
	server, err := New(addr, ServerLoggerOption(NopLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { server.Close() })

	d, err := NewDispatcher(state, decider, LoggerOption(NopLogger()))
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	go server.Serve(context.Background(), d)

	return uint16(server.Addr().(*net.TCPAddr).Port)
}

func TestClient_Ask(t *testing.T) {
	calls := NewGuarded(0)
	port := startServer(t, calls, DecideFunc[*Guarded[int]](echoDecider))

	client := NewClient("127.0.0.1", port, LoggerOption(NopLogger()))
	for i := 0; i < 3; i++ {
		resp, err := client.Ask(context.Background(), NewRequest(ReqNext))
		if err != nil {
			t.Fatalf("Ask %d failed: %v", i, err)
		}
		if resp.Kind != RespWhere {
			t.Errorf("Ask %d = %s, want Where", i, resp)
		}
	}

	if got := Apply(calls, func(n *int) int { return *n }); got != 3 {
		t.Errorf("decider called %d times, want 3", got)
	}
}

func TestClient_FailureIsNotAnError(t *testing.T) {
	port := startServer(t, 0, DecideFunc[int](func(Message, int) Message {
		return NewResponseMessage(FailureResponse(LocationNotOnItinerary))
	}))

	resp, err := NewClient("127.0.0.1", port).Ask(context.Background(), DelRequest(Woods))
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if resp.Kind != RespFailure || resp.Reason != LocationNotOnItinerary {
		t.Errorf("resp = %s, want Failure(LocationNotOnItinerary)", resp)
	}
}

func TestClient_UnexpectedPayload(t *testing.T) {
	port := startServer(t, 0, DecideFunc[int](func(msg Message, _ int) Message {
		return msg
	}))

	_, err := NewClient("127.0.0.1", port).Ask(context.Background(), NewRequest(ReqList))
	if !errors.Is(err, ErrUnexpectedPayload) {
		t.Errorf("expected ErrUnexpectedPayload, got %v", err)
	}
}

func TestClient_ContextDeadline(t *testing.T) {
	l, err := net.ListenTCP("tcp", &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer l.Close()

	// Accept and never answer.
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(5 * time.Second)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	port := uint16(l.Addr().(*net.TCPAddr).Port)
	start := time.Now()
	_, err = NewClient("127.0.0.1", port, LoggerOption(NopLogger())).Ask(ctx, NewRequest(ReqCurrent))
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Ask took %v, deadline not applied", elapsed)
	}
}
