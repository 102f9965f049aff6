package wire

import (
	"io"
	"net"
	"sync"
)

// Conn wraps a net.Conn with a write mutex so a job's streamed output
// frames and the final EOF sentinel can never interleave with another
// goroutine's write on the same socket.
type Conn struct {
	nc net.Conn
	mu sync.Mutex
}

// NewConn wraps nc for framed reads and writes.
func NewConn(nc net.Conn) *Conn {
	return &Conn{nc: nc}
}

// ReadFrame reads the next frame from the peer. Safe for a single reader
// goroutine; concurrent reads are not supported, matching the one
// intake-thread-per-client model.
func (c *Conn) ReadFrame() ([]byte, error) {
	return ReadFrame(c.nc)
}

// Send writes payload as one frame.
func (c *Conn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteFrame(c.nc, payload)
}

// SendEOF writes the end-of-response sentinel frame.
func (c *Conn) SendEOF() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteEOF(c.nc)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.nc.Close()
}

var _ io.Closer = (*Conn)(nil)
