// Package control relays RF-control requests to the OpenHD control
// peer over a local stream socket.
package control

import (
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/utils"
)

// Client performs single request/response round trips against the
// control socket. A missing peer is a normal condition, not an error.
type Client struct {
	socketPath string
	timeout    time.Duration
	maxLine    int
	logger     *zap.Logger
}

// NewClient creates a control client for the given socket path. The
// timeout bounds the whole read side of one round trip; maxLine caps
// the response line length.
func NewClient(socketPath string, timeout time.Duration, maxLine int, logger *zap.Logger) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    timeout,
		maxLine:    maxLine,
		logger:     logger,
	}
}

// Roundtrip writes the payload and reads one newline-terminated
// response line under the deadline. The second result is false when no
// response was obtained for any reason: socket absent, connect or send
// failure, peer closed, deadline passed, or the line cap exceeded
// without a terminator.
func (c *Client) Roundtrip(payload string) (string, bool) {
	if !utils.FileExists(c.socketPath) {
		return "", false
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		c.logger.Debug("control socket connect failed", zap.Error(err))
		return "", false
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if err := conn.SetDeadline(deadline); err != nil {
		return "", false
	}

	if !writeAll(conn, []byte(payload)) {
		c.logger.Debug("control socket send failed")
		return "", false
	}

	return c.readLine(conn)
}

// writeAll writes the whole buffer, continuing after short writes.
func writeAll(conn net.Conn, data []byte) bool {
	for len(data) > 0 {
		n, err := conn.Write(data)
		if n > 0 {
			data = data[n:]
			continue
		}
		if err != nil {
			return false
		}
	}
	return true
}

// readLine accumulates reads until a newline, the line cap, the peer
// closing, or the connection deadline.
func (c *Client) readLine(conn net.Conn) (string, bool) {
	var buffer strings.Builder
	tmp := make([]byte, 256)
	for buffer.Len() < c.maxLine {
		n, err := conn.Read(tmp)
		if n > 0 {
			buffer.Write(tmp[:n])
			if pos := strings.IndexByte(buffer.String(), '\n'); pos >= 0 {
				return buffer.String()[:pos], true
			}
		}
		if err != nil {
			return "", false
		}
	}
	return "", false
}
