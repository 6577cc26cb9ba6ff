//go:build js && wasm

package dom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"syscall/js"
	"time"

	"github.com/socialconnect/chat-client/internal/connection"
)

// WebSocket readyState values.
const (
	stateConnecting = 0
	stateOpen       = 1
)

var errSocket = errors.New("websocket error")

// socket implements connection.Client over the browser WebSocket. Cookies and
// keepalive are handled by the browser, so the header and ping settings of the
// client config are ignored.
type socket struct {
	cfg    connection.ClientConfig
	logger *slog.Logger

	messages chan connection.TimestampedMessage
	errors   chan error
	opened   chan error

	mu       sync.Mutex
	ws       js.Value
	funcs    []js.Func
	sawError bool
	isOpen   bool
	closed   bool
}

// Dial is a connection.DialFunc for the browser.
func Dial(cfg connection.ClientConfig, logger *slog.Logger) connection.Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BufferSize < 1 {
		cfg.BufferSize = 1
	}
	return &socket{
		cfg:      cfg,
		logger:   logger,
		messages: make(chan connection.TimestampedMessage, cfg.BufferSize),
		errors:   make(chan error, 1),
		opened:   make(chan error, 1),
	}
}

// Connect opens the socket and waits for the open or failure event.
func (s *socket) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return connection.ErrAlreadyClosed
	}
	ws, err := newWebSocket(s.cfg.URL)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.ws = ws
	s.bind()
	s.mu.Unlock()

	select {
	case err := <-s.opened:
		return err
	case <-ctx.Done():
		s.Close()
		return ctx.Err()
	}
}

func newWebSocket(url string) (ws js.Value, err error) {
	ctor := js.Global().Get("WebSocket")
	if !ctor.Truthy() {
		return js.Undefined(), errors.New("browser does not support WebSocket")
	}

	// The constructor throws on a malformed URL.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("open websocket: %v", r)
		}
	}()
	return ctor.New(url), nil
}

// bind installs the event handlers. Must be called with lock held.
func (s *socket) bind() {
	onOpen := js.FuncOf(func(this js.Value, args []js.Value) any {
		s.mu.Lock()
		s.isOpen = true
		s.mu.Unlock()
		select {
		case s.opened <- nil:
		default:
		}
		return nil
	})

	onMessage := js.FuncOf(func(this js.Value, args []js.Value) any {
		msg := connection.TimestampedMessage{
			Data:       []byte(args[0].Get("data").String()),
			ReceivedAt: time.Now(),
		}
		select {
		case s.messages <- msg:
		default:
			s.logger.Warn("message buffer full, dropping message")
		}
		return nil
	})

	// The browser follows every error with a close event.
	onError := js.FuncOf(func(this js.Value, args []js.Value) any {
		s.mu.Lock()
		s.sawError = true
		s.mu.Unlock()
		return nil
	})

	onClose := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		code, reason := ev.Get("code").Int(), ev.Get("reason").String()

		s.mu.Lock()
		wasOpen, sawError := s.isOpen, s.sawError
		s.isOpen = false
		s.mu.Unlock()

		if !wasOpen {
			select {
			case s.opened <- fmt.Errorf("%w: closed during handshake (%d)", errSocket, code):
			default:
			}
			return nil
		}

		var err error = &connection.CloseError{Code: code, Text: reason}
		if sawError {
			err = fmt.Errorf("%w (close %d)", errSocket, code)
		}
		select {
		case s.errors <- err:
		default:
		}
		return nil
	})

	s.ws.Set("onopen", onOpen)
	s.ws.Set("onmessage", onMessage)
	s.ws.Set("onerror", onError)
	s.ws.Set("onclose", onClose)
	s.funcs = []js.Func{onOpen, onMessage, onError, onClose}
}

// Close closes the socket and detaches its handlers.
func (s *socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.isOpen = false

	if s.ws.IsUndefined() || s.ws.IsNull() {
		return nil
	}

	for _, name := range []string{"onopen", "onmessage", "onerror", "onclose"} {
		s.ws.Set(name, js.Null())
	}
	if rs := s.ws.Get("readyState").Int(); rs == stateConnecting || rs == stateOpen {
		s.ws.Call("close", connection.CloseNormal)
	}
	for _, f := range s.funcs {
		f.Release()
	}
	s.funcs = nil

	select {
	case s.opened <- connection.ErrAlreadyClosed:
	default:
	}
	return nil
}

// Send writes one text frame.
func (s *socket) Send(data []byte) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isOpen || s.ws.Get("readyState").Int() != stateOpen {
		return connection.ErrNotConnected
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("send: %v", r)
		}
	}()
	s.ws.Call("send", string(data))
	return nil
}

func (s *socket) Messages() <-chan connection.TimestampedMessage { return s.messages }
func (s *socket) Errors() <-chan error                           { return s.errors }

func (s *socket) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}
