package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.lsp.dev/jsonrpc2"
)

// ServerID identifies this server implementation in session/info
// responses.
const ServerID = "compared"

// Version is the protocol version reported to clients.
const Version = "0.1.0"

// Server represents the compared comparison server.
type Server struct {
	Spec Spec

	// TCP listener for session connections
	tcpListener *TCPListener
}

// New creates a new Server instance. The default logger writes to
// stderr; stdio sessions own stdout.
func New(spec *Spec) *Server {
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	if spec.Config == nil {
		spec.Config = DefaultConfig()
	}

	return &Server{
		Spec: *spec,
	}
}

func slogLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// StartTCP starts the TCP listener on the given address.
// The listener runs in a separate goroutine.
func (s *Server) StartTCP(addr string) error {
	if s.tcpListener != nil {
		return fmt.Errorf("TCP listener already running")
	}

	listener, err := NewTCPListener(addr, s)
	if err != nil {
		return err
	}

	s.tcpListener = listener

	go func() {
		if err := listener.Serve(); err != nil {
			s.Spec.Log.Error("TCP listener error", "error", err)
		}
	}()

	return nil
}

// StopTCP stops the TCP listener.
func (s *Server) StopTCP() error {
	if s.tcpListener == nil {
		return nil
	}

	err := s.tcpListener.Close()
	s.tcpListener = nil
	return err
}

// TCPAddr returns the TCP listener's address, or empty string if not running.
func (s *Server) TCPAddr() string {
	if s.tcpListener == nil {
		return ""
	}
	return s.tcpListener.Addr().String()
}

// ServeStdio runs a single session over the given read/write pair with
// Content-Length framing, for editor-style hosts that spawn the server
// as a child process. Blocks until the stream closes.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{read: r, write: w})
	session := NewSession("stdio", stream, &SessionConfig{
		Log:     s.Spec.Log,
		MaxKeys: s.Spec.Config.MaxKeys,
	})
	s.Spec.Log.Info("stdio session started")
	err := session.Run(ctx)
	s.Spec.Log.Info("stdio session ended")
	return err
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
