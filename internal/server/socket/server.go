// Package socket serves newline-delimited requests over a unix socket.
package socket

import (
	"bufio"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Handler resolves one request line into a response line. The second
// result is false when the line is not a recognized request; such
// lines are dropped without a response.
type Handler interface {
	HandleLine(line string) (string, bool)
}

// Server accepts connections on a unix socket and feeds each inbound
// line through the handler. Every connection is served by its own
// goroutine; the handler is responsible for its own synchronization.
type Server struct {
	path    string
	maxLine int
	handler Handler
	logger  *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewServer creates a Server for the given socket path. maxLine caps
// the length of a single inbound request line.
func NewServer(path string, maxLine int, handler Handler, logger *zap.Logger) *Server {
	return &Server{
		path:     path,
		maxLine:  maxLine,
		handler:  handler,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// ListenAndServe binds the socket and serves until Stop is called. A
// stale socket file from a previous run is removed before binding.
func (s *Server) ListenAndServe() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	select {
	case <-s.stopChan:
		// Stop won the race with the bind and never saw the listener.
		s.mu.Unlock()
		listener.Close()
		os.Remove(s.path)
		return nil
	default:
	}
	s.listener = listener
	s.mu.Unlock()
	s.logger.Info("request socket listening", zap.String("path", s.path))

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Warn("accept failed", zap.Error(err))
			continue
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// Stop closes the listener, waits for in-flight connections and
// removes the socket file.
func (s *Server) Stop() {
	close(s.stopChan)
	s.mu.Lock()
	if s.listener != nil {
		s.listener.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	os.Remove(s.path)
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), s.maxLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		response, handled := s.handler.HandleLine(line)
		if !handled {
			s.logger.Debug("unrecognized request line dropped")
			continue
		}
		if _, err := conn.Write([]byte(response)); err != nil {
			s.logger.Debug("response write failed", zap.Error(err))
			return
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.logger.Debug("connection read ended", zap.Error(err))
	}
}
