package connection

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/socialconnect/chat-client/internal/model"
	"github.com/socialconnect/chat-client/internal/ui"
)

// Manager owns the chat connection and mirrors it into the view.
type Manager interface {
	// Start begins the dispatch loop and the first connection attempt.
	Start(ctx context.Context) error

	// Stop cancels any pending reconnect and closes the connection.
	Stop(ctx context.Context) error

	// Submit sends the input field's text and waits until it was handled.
	Submit(ctx context.Context) error

	// Stats returns current connection statistics.
	Stats() ManagerStats
}

// Option customizes a manager.
type Option func(*manager)

// WithDialer replaces the WebSocket client factory.
func WithDialer(dial DialFunc) Option {
	return func(m *manager) { m.dial = dial }
}

// WithScheduler replaces the timer used for reconnects and status reverts.
func WithScheduler(s Scheduler) Option {
	return func(m *manager) { m.sched = s }
}

// instance is one connection attempt. It is replaced, never reused.
type instance struct {
	id     uuid.UUID
	client Client
}

// manager implements the Manager interface.
type manager struct {
	cfg    ManagerConfig
	view   ui.View
	dial   DialFunc
	sched  Scheduler
	logger *slog.Logger

	events   *queue[Event]
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup // pump goroutines
	loopDone chan struct{}

	// Owned by the dispatch loop
	current        *instance
	state          State
	attempts       int
	shown          ui.Status
	reconnectTimer Timer
	revertTimer    Timer
	revertToken    uint64

	statsMu sync.Mutex
	stats   ManagerStats
}

// NewManager creates a new Connection Manager.
func NewManager(cfg ManagerConfig, view ui.View, logger *slog.Logger, opts ...Option) Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Backoff == nil {
		cfg.Backoff = DefaultBackoff()
	}

	m := &manager{
		cfg:      cfg,
		view:     view,
		dial:     NewClient,
		sched:    realScheduler{},
		logger:   logger,
		events:   newQueue[Event](64),
		loopDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins the connection manager.
func (m *manager) Start(ctx context.Context) error {
	if m.ctx != nil {
		return ErrAlreadyStarted
	}
	m.ctx, m.cancel = context.WithCancel(ctx)

	go m.run()
	go func() {
		<-m.ctx.Done()
		m.events.Close()
	}()

	m.post(Event{Kind: eventConnect})

	m.logger.Info("connection manager started",
		"url", m.cfg.Client.URL,
		"max_attempts", m.cfg.MaxAttempts,
	)

	return nil
}

// Stop gracefully shuts down.
func (m *manager) Stop(ctx context.Context) error {
	if m.cancel == nil {
		return nil
	}

	m.logger.Info("stopping connection manager")
	m.cancel()
	m.events.Close()

	select {
	case <-m.loopDone:
	case <-ctx.Done():
		m.logger.Warn("shutdown timeout waiting for dispatch loop")
		return ctx.Err()
	}

	// The loop has exited; its state can be touched here.
	stopTimer(m.reconnectTimer)
	stopTimer(m.revertTimer)
	if m.current != nil {
		m.current.client.Close()
		m.current = nil
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("shutdown timeout, forcing close")
	}

	m.logger.Info("connection manager stopped")
	return nil
}

// Submit queues a send of the input field and waits for it to be handled.
func (m *manager) Submit(ctx context.Context) error {
	done := make(chan struct{})
	if !m.post(Event{Kind: eventSubmit, done: done}) {
		return ErrStopped
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns current statistics.
func (m *manager) Stats() ManagerStats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.stats
}

func (m *manager) post(ev Event) bool {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	return m.events.Send(ev)
}

func (m *manager) updateStats(fn func(*ManagerStats)) {
	m.statsMu.Lock()
	fn(&m.stats)
	m.statsMu.Unlock()
}

// run is the dispatch loop. It is the only goroutine touching loop-owned state.
func (m *manager) run() {
	defer close(m.loopDone)

	for {
		ev, ok := m.events.Receive()
		if !ok {
			return
		}
		if m.ctx.Err() != nil {
			ev.ack()
			continue
		}
		m.dispatch(ev)
	}
}

// dispatch handles one event. Panics are contained to the event.
func (m *manager) dispatch(ev Event) {
	defer ev.ack()
	defer m.recoverDispatch(ev)

	switch ev.Kind {
	case eventConnect:
		m.connect()
		return
	case eventSubmit:
		m.sendMessage()
		return
	case eventRevertStatus:
		m.revertStatus(ev.token)
		return
	}

	if m.current == nil || ev.Conn != m.current.id {
		m.logger.Debug("ignoring event from stale connection",
			"event", ev.Kind,
			"conn_id", ev.Conn,
		)
		return
	}

	switch ev.Kind {
	case EventOpened:
		m.handleOpen()
	case EventMessage:
		m.handleMessage(ev.Data)
	case EventClosed:
		m.handleClose(ev.Code)
	case EventErrored:
		m.handleError(ev.Err)
	}
}

func (m *manager) recoverDispatch(ev Event) {
	r := recover()
	if r == nil {
		return
	}

	m.logger.Error("panic while handling event",
		"event", ev.Kind,
		"panic", r,
		"stack", string(debug.Stack()),
	)

	// The view itself may be what panicked.
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic while reporting error", "panic", r)
		}
	}()
	m.showStatus(StatusInternalError)
}

// connect creates a new connection instance and starts its pump.
func (m *manager) connect() {
	m.reconnectTimer = nil

	if m.state == StateFailed || m.current != nil {
		return
	}

	id := uuid.New()
	logger := m.logger.With("conn_id", id)
	logger.Info("connecting",
		"url", m.cfg.Client.URL,
		"attempt", m.attempts,
	)

	inst := &instance{id: id, client: m.dial(m.cfg.Client, logger)}
	m.current = inst
	m.setState(StateConnecting)
	m.updateStats(func(s *ManagerStats) {
		s.ConnID = id
		s.Connects++
	})

	m.wg.Add(1)
	go m.pump(inst)
}

// pump connects one instance and forwards its events to the dispatch loop.
func (m *manager) pump(inst *instance) {
	defer m.wg.Done()

	if err := inst.client.Connect(m.ctx); err != nil {
		m.post(Event{Kind: EventErrored, Conn: inst.id, Err: err})
		m.post(Event{Kind: EventClosed, Conn: inst.id, Code: CloseAbnormal})
		return
	}
	m.post(Event{Kind: EventOpened, Conn: inst.id})

	for {
		select {
		case <-m.ctx.Done():
			return

		case msg := <-inst.client.Messages():
			m.post(Event{Kind: EventMessage, Conn: inst.id, Data: msg.Data, At: msg.ReceivedAt})

		case err := <-inst.client.Errors():
			m.drain(inst)

			code := CloseAbnormal
			var ce *CloseError
			if errors.As(err, &ce) {
				code = ce.Code
			} else {
				m.post(Event{Kind: EventErrored, Conn: inst.id, Err: err})
			}
			m.post(Event{Kind: EventClosed, Conn: inst.id, Code: code})
			return
		}
	}
}

// drain forwards messages received before the connection ended.
func (m *manager) drain(inst *instance) {
	for {
		select {
		case msg := <-inst.client.Messages():
			m.post(Event{Kind: EventMessage, Conn: inst.id, Data: msg.Data, At: msg.ReceivedAt})
		default:
			return
		}
	}
}

func (m *manager) handleOpen() {
	m.logger.Info("connected", "conn_id", m.current.id, "after_attempts", m.attempts)

	m.attempts = 0
	m.setState(StateOpen)
	m.showStatus(StatusConnected)
}

func (m *manager) handleMessage(data []byte) {
	in, err := model.DecodeInbound(data)
	if err != nil {
		m.logger.Warn("dropping malformed frame", "error", err, "bytes", len(data))
		m.updateStats(func(s *ManagerStats) { s.Dropped++ })
		return
	}
	if in.IsError() {
		m.logger.Error("error from server", "error", in.Error)
		m.updateStats(func(s *ManagerStats) { s.Dropped++ })
		return
	}

	identity := ""
	if m.view.Container != nil {
		identity = m.view.Container.UserIdentity()
	}

	m.view.Messages.AppendMessage(model.Classify(in, identity))
	m.view.Messages.ScrollToEnd()
	m.updateStats(func(s *ManagerStats) { s.Rendered++ })
}

func (m *manager) handleClose(code int) {
	inst := m.current
	m.current = nil
	inst.client.Close()

	m.logger.Info("connection closed", "conn_id", inst.id, "code", code)
	m.setState(StateClosed)
	m.showStatus(StatusDisconnected)

	if m.attempts < m.cfg.MaxAttempts {
		m.attempts++
		delay := m.cfg.Backoff.Delay(m.attempts)

		m.logger.Info("scheduling reconnection",
			"delay", delay,
			"attempt", m.attempts,
			"max_attempts", m.cfg.MaxAttempts,
		)
		m.showStatus(ReconnectingStatus(delay))
		m.reconnectTimer = m.sched.AfterFunc(delay, func() {
			m.post(Event{Kind: eventConnect})
		})
		m.updateStats(func(s *ManagerStats) { s.Attempts = m.attempts })
		return
	}

	m.logger.Error("reconnection attempts exhausted", "max_attempts", m.cfg.MaxAttempts)
	m.setState(StateFailed)
	m.showStatus(StatusFailed)
}

func (m *manager) handleError(err error) {
	m.logger.Warn("websocket error", "conn_id", m.current.id, "error", err)
	m.showStatus(StatusConnectionError)
}

// sendMessage sends the trimmed input text when the connection is open.
func (m *manager) sendMessage() {
	text := strings.TrimSpace(m.view.Input.Value())
	if text == "" {
		return
	}

	if m.current == nil || m.state != StateOpen {
		m.logger.Warn("cannot send message: connection is not open", "state", m.state)
		m.notConnected()
		return
	}

	data, err := model.EncodeOutbound(text)
	if err != nil {
		m.logger.Error("encode message", "error", err)
		return
	}

	if err := m.current.client.Send(data); err != nil {
		m.logger.Warn("send failed", "conn_id", m.current.id, "error", err)
		m.notConnected()
		return
	}

	m.view.Input.Clear()
	m.updateStats(func(s *ManagerStats) { s.Sent++ })
}

// notConnected shows a transient status that later reverts to Disconnected.
func (m *manager) notConnected() {
	m.showStatus(StatusNotConnected)

	stopTimer(m.revertTimer)
	m.revertToken++
	token := m.revertToken
	m.revertTimer = m.sched.AfterFunc(m.cfg.StatusRevertDelay, func() {
		m.post(Event{Kind: eventRevertStatus, token: token})
	})
}

func (m *manager) revertStatus(token uint64) {
	if token != m.revertToken || m.shown != StatusNotConnected {
		return
	}
	m.revertTimer = nil
	m.showStatus(StatusDisconnected)
}

func (m *manager) setState(s State) {
	m.state = s
	m.updateStats(func(st *ManagerStats) {
		st.State = s
		st.Attempts = m.attempts
		if s == StateClosed || s == StateFailed {
			st.ConnID = uuid.Nil
		}
	})
}

func (m *manager) showStatus(s ui.Status) {
	m.shown = s
	if m.view.Status != nil {
		m.view.Status.ShowStatus(s)
	}
}
