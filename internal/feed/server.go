package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/commotion/internal/config"
)

// StepRecorder stores step batches received from phones.
type StepRecorder interface {
	RecordSteps(ctx context.Context, at time.Time, steps float64, source string) error
}

// Server accepts phone connections and publishes their samples to a Hub.
type Server struct {
	cfg      config.FeedConfig
	hub      *Hub
	steps    StepRecorder
	logger   *log.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a feed server. steps may be nil to discard step
// batches; logger may be nil to use the default logger.
func NewServer(cfg config.FeedConfig, hub *Hub, steps StepRecorder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    withDefaults(cfg),
		hub:    hub,
		steps:  steps,
		logger: logger.WithPrefix("feed"),
		upgrader: websocket.Upgrader{
			// Phones on the local network have no meaningful origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		now: time.Now,
	}
}

// withDefaults fills unset timing and limit fields so a partial config
// cannot produce zero deadlines.
func withDefaults(cfg config.FeedConfig) config.FeedConfig {
	def := config.DefaultFeedConfig()
	if cfg.Path == "" {
		cfg.Path = def.Path
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = def.PongWait
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = def.WriteWait
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = def.RatePerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.TickHz <= 0 {
		cfg.TickHz = def.TickHz
	}
	return cfg
}

// Hub returns the hub samples are published to.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP handler serving the WebSocket endpoint and a
// health check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		st := s.hub.Stats()
		fmt.Fprintf(w, "ok sessions=%d motion=%d activities=%d\n", st.Sessions, st.Motion, st.Activities)
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("feed: listen %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("listening", "address", ln.Addr().String(), "path", s.cfg.Path)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("feed: serve: %w", err)
	}
}

// Addr returns the bound address once serving, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Address
}

// conn serializes writes from the read loop and the ping loop.
type conn struct {
	ws        *websocket.Conn
	writeWait time.Duration
	mu        sync.Mutex
}

func (c *conn) write(t string, payload any) error {
	b, err := Encode(t, payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeWait))
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer ws.Close()

	sessionID := uuid.NewString()
	logger := s.logger.With("session", sessionID, "remote", r.RemoteAddr)
	s.hub.sessions.Add(1)
	defer s.hub.sessions.Add(-1)
	logger.Info("phone connected")
	defer logger.Info("phone disconnected")

	c := &conn{ws: ws, writeWait: s.cfg.WriteWait}
	if s.cfg.ReadLimit > 0 {
		ws.SetReadLimit(s.cfg.ReadLimit)
	}
	_ = ws.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.pingLoop(ctx, c, logger)

	if err := c.write(MsgWelcome, Welcome{SessionID: sessionID, TickHz: s.cfg.TickHz}); err != nil {
		logger.Warn("welcome failed", "error", err)
		return
	}

	limiter := rate.NewLimiter(rate.Limit(s.cfg.RatePerSec), s.cfg.Burst)
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("read ended", "error", err)
			}
			return
		}
		// Any traffic proves the peer is alive.
		_ = ws.SetReadDeadline(time.Now().Add(s.cfg.PongWait))

		if !limiter.Allow() {
			logger.Debug("rate limited")
			continue
		}
		if err := s.handle(ctx, sessionID, msg, logger); err != nil {
			logger.Debug("rejected message", "error", err)
			if werr := c.write(MsgError, Error{Message: err.Error()}); werr != nil {
				return
			}
		}
	}
}

func (s *Server) pingLoop(ctx context.Context, c *conn, logger *log.Logger) {
	interval := s.cfg.PingInterval
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				logger.Debug("ping failed", "error", err)
				return
			}
		}
	}
}

// handle dispatches one inbound message.
func (s *Server) handle(ctx context.Context, sessionID string, msg []byte, logger *log.Logger) error {
	env, err := DecodeEnvelope(msg)
	if err != nil {
		return err
	}
	now := s.now()

	switch env.T {
	case MsgHello:
		h, err := DecodePayload[Hello](env)
		if err != nil {
			return err
		}
		if h.V != ProtocolVersion {
			return fmt.Errorf("feed: unsupported protocol version %d", h.V)
		}
		logger.Info("hello", "name", h.Name, "device", h.Device)

	case MsgMotion:
		m, err := DecodePayload[Motion](env)
		if err != nil {
			return err
		}
		sample, err := m.Sample(now)
		if err != nil {
			return err
		}
		s.hub.PublishMotion(sample)

	case MsgSteps:
		st, err := DecodePayload[Steps](env)
		if err != nil {
			return err
		}
		if err := st.Validate(); err != nil {
			return err
		}
		if s.steps == nil {
			return nil
		}
		if err := s.steps.RecordSteps(ctx, st.Time(now), st.Steps, "feed:"+sessionID); err != nil {
			logger.Error("could not record steps", "error", err)
			return fmt.Errorf("feed: steps not stored")
		}

	case MsgActivity:
		a, err := DecodePayload[Activity](env)
		if err != nil {
			return err
		}
		s.hub.PublishActivity(a.Activity(now))

	default:
		return fmt.Errorf("feed: unknown message type %q", env.T)
	}
	return nil
}
