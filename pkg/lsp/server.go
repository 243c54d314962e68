// Package lsp implements a Language Server Protocol front end over
// pkg/project and pkg/resolver. server.go implements the transport:
// Content-Length framed JSON-RPC 2.0, logging malformed frames and
// rejecting oversized ones through the same log/slog stack the rest of the
// repository uses instead of silently killing the connection. service.go
// wires the transport to the name resolver core.
package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// maxMessageSize caps the body of a single Content-Length framed message.
// A client (or a corrupted stream) that sends a bogus multi-gigabyte
// Content-Length would otherwise make ServeOnce block trying to allocate
// and fill it.
const maxMessageSize = 64 << 20 // 64MiB

// errOversizedMessage is returned by readMessage when a frame's declared
// Content-Length exceeds maxMessageSize. Serve treats it as recoverable:
// the oversized body has already been discarded, so the stream is still
// framed correctly for the next message.
var errOversizedMessage = errors.New("lsp: message exceeds maximum size")

// HandlerFunc processes a JSON-RPC request and returns a result or error.
type HandlerFunc func(params json.RawMessage) (any, error)

// NotifyFunc processes a JSON-RPC notification (no response expected).
type NotifyFunc func(params json.RawMessage)

// Server implements the JSON-RPC 2.0 transport for LSP.
type Server struct {
	reader   *bufio.Reader
	writer   io.Writer
	log      *slog.Logger
	handlers map[string]HandlerFunc
	notifs   map[string]NotifyFunc
	outMu    sync.Mutex
}

func NewServer(in io.Reader, out io.Writer, log io.Writer) *Server {
	return &Server{
		reader:   bufio.NewReader(in),
		writer:   out,
		log:      slog.New(slog.NewTextHandler(log, nil)),
		handlers: make(map[string]HandlerFunc),
		notifs:   make(map[string]NotifyFunc),
	}
}

func (s *Server) Handle(method string, fn HandlerFunc) {
	s.handlers[method] = fn
}

func (s *Server) OnNotify(method string, fn NotifyFunc) {
	s.notifs[method] = fn
}

// Serve reads messages in a loop until the input reaches EOF; a shutdown
// request or exit notification does not end the loop. An oversized frame
// is logged and skipped rather than ending the connection; any other read
// or transport error ends it.
func (s *Server) Serve() error {
	for {
		err := s.ServeOnce()
		if err == io.EOF {
			return nil
		}
		if errors.Is(err, errOversizedMessage) {
			continue
		}
		if err != nil {
			return err
		}
	}
}

// ServeOnce reads and handles a single message.
func (s *Server) ServeOnce() error {
	msg, err := s.readMessage()
	if err != nil {
		return err
	}

	isNotification := len(msg.ID) == 0 || string(msg.ID) == "null"
	if isNotification {
		if fn, ok := s.notifs[msg.Method]; ok {
			fn(msg.Params)
		}
		return nil
	}

	fn, ok := s.handlers[msg.Method]
	if !ok {
		return s.sendError(msg.ID, -32601, "method not found: "+msg.Method)
	}

	result, handlerErr := fn(msg.Params)
	if handlerErr != nil {
		return s.sendError(msg.ID, -32603, handlerErr.Error())
	}
	return s.sendResult(msg.ID, result)
}

func (s *Server) sendResult(id json.RawMessage, result any) error {
	resp := rpcResponse{JSONRPC: "2.0", ID: id, Result: result}
	s.outMu.Lock()
	defer s.outMu.Unlock()
	return writeMessage(s.writer, resp)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	resp := rpcResponse{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}}
	s.outMu.Lock()
	defer s.outMu.Unlock()
	return writeMessage(s.writer, resp)
}

// Notify sends a server-initiated notification (e.g., diagnostics).
func (s *Server) Notify(method string, params any) error {
	msg := struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params,omitempty"`
	}{JSONRPC: "2.0", Method: method, Params: params}
	s.outMu.Lock()
	defer s.outMu.Unlock()
	return writeMessage(s.writer, msg)
}

// readMessage reads a Content-Length framed JSON-RPC message off s.reader.
// A malformed Content-Length header is logged and skipped; an oversized body
// is logged, discarded, and reported as errOversizedMessage; a malformed JSON
// body is logged and returned as a decode error.
func (s *Server) readMessage() (rpcMessage, error) {
	var contentLen int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return rpcMessage{}, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break // end of headers
		}
		if strings.HasPrefix(line, "Content-Length:") {
			val := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
			n, err := strconv.Atoi(val)
			if err != nil {
				s.log.Warn("lsp: malformed Content-Length header", "value", val, "err", err)
				continue
			}
			contentLen = n
		}
	}
	if contentLen == 0 {
		return rpcMessage{}, fmt.Errorf("lsp: missing Content-Length")
	}
	if contentLen > maxMessageSize {
		s.log.Warn("lsp: rejecting oversized message", "contentLength", contentLen, "max", maxMessageSize)
		if _, err := io.CopyN(io.Discard, s.reader, int64(contentLen)); err != nil {
			return rpcMessage{}, fmt.Errorf("lsp: discarding oversized message: %w", err)
		}
		return rpcMessage{}, errOversizedMessage
	}

	body := make([]byte, contentLen)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return rpcMessage{}, err
	}
	var msg rpcMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.log.Warn("lsp: malformed JSON-RPC frame", "err", err)
		return rpcMessage{}, fmt.Errorf("lsp: decode message: %w", err)
	}
	return msg, nil
}

// writeMessage writes a Content-Length framed JSON-RPC message.
func writeMessage(w io.Writer, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}
