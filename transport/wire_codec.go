package transport

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteFrame writes env to w as
// length:uint64 LE || iteration:uint64 LE || payload, where length is
// 8 (the iteration field) plus len(env.Payload).
func WriteFrame(w io.Writer, env Envelope) error {
	var header [16]byte
	binary.LittleEndian.PutUint64(header[0:8], uint64(8+len(env.Payload)))
	binary.LittleEndian.PutUint64(header[8:16], env.Iteration)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("transport: WriteFrame: header: %w", err)
	}
	if len(env.Payload) > 0 {
		if _, err := w.Write(env.Payload); err != nil {
			return fmt.Errorf("transport: WriteFrame: payload: %w", err)
		}
	}
	return nil
}

// ReadFrame reads one complete frame from r, blocking until the
// length-prefixed frame has arrived in full.
func ReadFrame(r io.Reader) (Envelope, error) {
	var lenBuf [8]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return Envelope{}, fmt.Errorf("transport: ReadFrame: length: %w", err)
	}
	length := binary.LittleEndian.Uint64(lenBuf[:])
	if length < 8 {
		return Envelope{}, fmt.Errorf("transport: ReadFrame: frame length %d shorter than iteration field", length)
	}

	var iterBuf [8]byte
	if _, err := io.ReadFull(r, iterBuf[:]); err != nil {
		return Envelope{}, fmt.Errorf("transport: ReadFrame: iteration: %w", err)
	}
	iteration := binary.LittleEndian.Uint64(iterBuf[:])

	payload := make([]byte, length-8)
	if len(payload) > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Envelope{}, fmt.Errorf("transport: ReadFrame: payload: %w", err)
		}
	}
	return Envelope{Iteration: iteration, Payload: payload}, nil
}
