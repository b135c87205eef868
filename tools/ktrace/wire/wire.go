// Package wire decodes the fixed-size trace frames a kernel instance emits
// on its debug serial line: one frame per dead-queue publish, fault-queue
// publish, or vtimer tick the router observed. Decoding is split out of
// tools/ktrace's main loop so it can be exercised without a real port.
package wire

import (
	"bufio"
	"fmt"
	"io"
)

// Tag identifies which kind of event a frame carries.
type Tag byte

// Frame tags. Chosen as printable ASCII so a frame is legible on a raw
// terminal even before ktrace decodes it.
const (
	TagDead  Tag = 'D'
	TagFault Tag = 'F'
	TagTick  Tag = 'T'
)

// frameSize is tag(1) + tid(4) + payload(4), big-endian.
const frameSize = 9

// Event is one decoded trace frame.
type Event struct {
	Tag     Tag
	TID     uint32
	Payload uint32
}

// String renders an Event the way ktrace prints it to stdout.
func (e Event) String() string {
	switch e.Tag {
	case TagDead:
		return fmt.Sprintf("DEAD  tid=%d exit=%d", e.TID, e.Payload)
	case TagFault:
		return fmt.Sprintf("FAULT tid=%d addr=%#08x", e.TID, e.Payload)
	case TagTick:
		return fmt.Sprintf("TICK  mask=0x%04x", e.Payload)
	default:
		return fmt.Sprintf("?%c?   tid=%d payload=%d", byte(e.Tag), e.TID, e.Payload)
	}
}

// ReadEvent reads one fixed-size frame from r and decodes it. It returns
// io.EOF unmodified when the stream ends cleanly between frames.
func ReadEvent(r *bufio.Reader) (Event, error) {
	var buf [frameSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Event{}, err
	}

	return Event{
		Tag:     Tag(buf[0]),
		TID:     be32(buf[1:5]),
		Payload: be32(buf[5:9]),
	}, nil
}

// PutEvent encodes e into its fixed-size wire form, the counterpart a
// kernel-side emitter would use to produce what ReadEvent consumes.
func PutEvent(e Event) []byte {
	buf := make([]byte, frameSize)
	buf[0] = byte(e.Tag)
	putBE32(buf[1:5], e.TID)
	putBE32(buf[5:9], e.Payload)
	return buf
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
