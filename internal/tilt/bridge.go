package tilt

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/roadrush/internal/core"
)

//go:embed static
var staticFiles embed.FS

const (
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	maxFrameSize = 4 << 10
	actionQueue  = 16
	clientQueue  = 8
)

// BridgeConfig configures the phone bridge.
type BridgeConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Platform is the sign convention assumed until a phone says hello.
	Platform Platform

	// StaleAfter drops samples that were not polled in time.
	StaleAfter time.Duration

	// SampleHz is the sampling rate suggested to phones.
	SampleHz int
}

// Bridge receives tilt samples and taps from phones over WebSocket and
// hands them to the game loop. Connections run on their own goroutines;
// the loop reads through Poll and writes through Publish.
type Bridge struct {
	cfg      BridgeConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu         sync.Mutex
	reading    float64
	readAt     time.Time
	hasReading bool
	clients    map[*client]struct{}
	last       StateUpdate
	published  bool

	actions chan core.Action
	srv     *http.Server
}

type client struct {
	conn     *websocket.Conn
	send     chan []byte
	platform Platform
	done     chan struct{}
}

// NewBridge creates a bridge. It does not listen until ListenAndServe.
func NewBridge(cfg BridgeConfig, logger *log.Logger) *Bridge {
	if cfg.Platform == "" {
		cfg.Platform = Android
	}
	if cfg.SampleHz <= 0 {
		cfg.SampleHz = 60
	}
	return &Bridge{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Phones on the LAN load the page from this same server.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		now:     time.Now,
		clients: make(map[*client]struct{}),
		actions: make(chan core.Action, actionQueue),
	}
}

// Handler serves the controller page at / and the socket at /ws.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	page, err := fs.Sub(staticFiles, "static")
	if err == nil {
		mux.Handle("/", http.FileServerFS(page))
	}
	mux.HandleFunc("/ws", b.serveWS)
	return mux
}

// ListenAndServe listens on the configured address until ctx is cancelled.
func (b *Bridge) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", b.cfg.Address)
	if err != nil {
		return fmt.Errorf("tilt bridge: listen on %s: %w", b.cfg.Address, err)
	}
	return b.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (b *Bridge) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	b.mu.Lock()
	b.srv = srv
	b.mu.Unlock()

	b.logger.Info("tilt bridge listening", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tilt bridge: %w", err)
	case <-ctx.Done():
		return b.Close()
	}
}

// Close stops the server and disconnects every phone.
func (b *Bridge) Close() error {
	b.mu.Lock()
	srv := b.srv
	clients := make([]*client, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.Unlock()

	for _, c := range clients {
		c.conn.Close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Poll moves pending taps and the latest fresh tilt sample into frame.
// Each sample is delivered at most once; samples older than StaleAfter
// are dropped as missing.
func (b *Bridge) Poll(frame *core.InputFrame) {
	for {
		select {
		case a := <-b.actions:
			frame.Set(a)
			continue
		default:
		}
		break
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.hasReading {
		return
	}
	b.hasReading = false
	if b.cfg.StaleAfter > 0 && b.now().Sub(b.readAt) > b.cfg.StaleAfter {
		return
	}
	frame.SetTilt(b.reading)
}

// Publish sends the game status to every phone when it changes.
func (b *Bridge) Publish(st core.GameState) {
	update := StateUpdate{Score: st.Score, GameOver: st.GameOver, Paused: st.Paused}

	b.mu.Lock()
	if b.published && b.last == update {
		b.mu.Unlock()
		return
	}
	b.last = update
	b.published = true
	clients := make([]*client, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.Unlock()

	msg, err := Encode(MsgState, update)
	if err != nil {
		b.logger.Error("encode state", "error", err)
		return
	}
	for _, c := range clients {
		c.trySend(msg)
	}
}

// Clients returns the number of connected phones.
func (b *Bridge) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// serveWS upgrades the request and runs the connection until it closes.
func (b *Bridge) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		conn:     conn,
		send:     make(chan []byte, clientQueue),
		platform: b.cfg.Platform,
		done:     make(chan struct{}),
	}

	b.mu.Lock()
	b.clients[c] = struct{}{}
	state, published := b.last, b.published
	b.mu.Unlock()

	b.logger.Info("phone connected", "remote", r.RemoteAddr)
	go c.writeLoop()

	if published {
		if msg, err := Encode(MsgState, state); err == nil {
			c.trySend(msg)
		}
	}

	b.readLoop(c)

	b.mu.Lock()
	delete(b.clients, c)
	b.mu.Unlock()
	close(c.done)
	conn.Close()
	b.logger.Info("phone disconnected", "remote", r.RemoteAddr)
}

// readLoop handles inbound messages until the connection fails.
func (b *Bridge) readLoop(c *client) {
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.Debug("websocket read", "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := b.handle(c, data); err != nil {
			b.logger.Warn("bad message from phone", "error", err)
		}
	}
}

// handle applies one inbound message.
func (b *Bridge) handle(c *client, data []byte) error {
	env, err := DecodeEnvelope(data)
	if err != nil {
		return err
	}

	switch env.T {
	case MsgHello:
		hello, err := DecodePayload[Hello](env)
		if err != nil {
			return err
		}
		platform, err := ParsePlatform(hello.Platform)
		if err != nil {
			return err
		}
		c.platform = platform
		b.logger.Info("phone hello", "platform", platform)
		msg, err := Encode(MsgWelcome, Welcome{SampleHz: b.cfg.SampleHz})
		if err != nil {
			return err
		}
		c.trySend(msg)

	case MsgTilt:
		reading, err := DecodePayload[Reading](env)
		if err != nil {
			return err
		}
		b.store(Normalize(reading.X, c.platform))

	case MsgFire:
		b.enqueue(core.ActionFire)

	case MsgRestart:
		b.enqueue(core.ActionRestart)

	default:
		return fmt.Errorf("tilt: unknown message type %q", env.T)
	}
	return nil
}

func (b *Bridge) store(reading float64) {
	b.mu.Lock()
	b.reading = reading
	b.readAt = b.now()
	b.hasReading = true
	b.mu.Unlock()
}

func (b *Bridge) enqueue(a core.Action) {
	select {
	case b.actions <- a:
	default:
		b.logger.Debug("action queue full, dropping", "action", a)
	}
}

// trySend queues msg without blocking; slow phones miss updates.
func (c *client) trySend(msg []byte) {
	select {
	case c.send <- msg:
	case <-c.done:
	default:
	}
}

// writeLoop is the connection's only writer.
func (c *client) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
