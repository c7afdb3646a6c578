package tourguide

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
)

const (
	// lengthPrefixSize is the size of the big-endian length prefix of a frame.
	lengthPrefixSize = 4
	// DefaultMaxFrameSize is the largest payload accepted when a Codec has no
	// explicit limit (1MB).
	DefaultMaxFrameSize = 1024 * 1024
)

// Flusher is implemented by writers that buffer, such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Codec reads and writes length-prefixed frames:
//
//	[0..4)   big-endian uint32 N
//	[4..4+N) JSON encoding of a Message
//
// The zero value uses DefaultMaxFrameSize.
type Codec struct {
	// MaxFrameSize bounds the payload length in both directions.
	MaxFrameSize int
}

func (c Codec) limit() int {
	if c.MaxFrameSize <= 0 {
		return DefaultMaxFrameSize
	}
	return c.MaxFrameSize
}

// Encode writes m as a single frame and flushes w if it buffers.
func (c Codec) Encode(w io.Writer, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return parseError(err, "encode message")
	}
	if len(body) > c.limit() || uint64(len(body)) > math.MaxUint32 {
		return frameTooLarge(len(body), c.limit())
	}

	var prefix [lengthPrefixSize]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(body)))

	if _, err := w.Write(prefix[:]); err != nil {
		return ioError(err, "write length prefix")
	}
	if _, err := w.Write(body); err != nil {
		return ioError(err, "write payload")
	}
	if f, ok := w.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return ioError(err, "flush")
		}
	}
	return nil
}

// Decode blocks until one complete frame has been read from r.
// A stream that ends before the frame is complete yields ErrIO; a frame
// whose declared length exceeds the limit yields ErrFrameTooLarge without
// reading the body.
func (c Codec) Decode(r io.Reader) (Message, error) {
	var prefix [lengthPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Message{}, ioError(err, "read length prefix")
	}

	length := binary.BigEndian.Uint32(prefix[:])
	if uint64(length) > uint64(c.limit()) {
		return Message{}, frameTooLarge(int(length), c.limit())
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return Message{}, ioError(err, "read payload")
	}

	var m Message
	if err := json.Unmarshal(body, &m); err != nil {
		return Message{}, parseError(err, "decode message")
	}
	return m, nil
}

// Marshal returns the complete frame for m using the default codec.
func Marshal(m Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := (Codec{}).Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
