// Package wire implements the client/server framing protocol (spec §6):
// every message, in either direction, is a 32-bit big-endian length prefix
// followed by exactly that many payload bytes. There is no trailing
// newline and zero-length frames are legal.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// EOF is the distinguished sentinel frame payload marking the end of a
// command's response.
const EOF = "<<EOF>>"

// MaxFrameLength bounds a single frame's payload to guard against a
// corrupt or hostile length prefix forcing an unbounded allocation.
const MaxFrameLength = 16 << 20 // 16 MiB

// ErrFrameTooLarge is returned by ReadFrame when a peer's length prefix
// exceeds MaxFrameLength.
var ErrFrameTooLarge = errors.New("wire: frame exceeds maximum length")

// ReadFrame reads one length-prefixed frame from r.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	if length > MaxFrameLength {
		return nil, ErrFrameTooLarge
	}
	if length == 0 {
		return []byte{}, nil
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteFrame writes payload as one length-prefixed frame to w.
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("wire: write length prefix: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("wire: write payload: %w", err)
		}
	}
	return nil
}

// WriteEOF writes the end-of-response sentinel frame.
func WriteEOF(w io.Writer) error {
	return WriteFrame(w, []byte(EOF))
}
