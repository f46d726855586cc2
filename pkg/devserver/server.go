package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/weft/internal/config"
	"github.com/vango-dev/weft/internal/errors"
	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/host"
	"github.com/vango-dev/weft/pkg/render"
	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/snapshot"
	"github.com/vango-dev/weft/pkg/telemetry"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Config configures the preview server.
type Config struct {
	// Address is the listen address (default: "localhost:3000").
	Address string

	// AppName is shown in the page title and recorded in snapshots.
	AppName string

	// FPS is the frame rate of the render loop (default: 60).
	FPS int

	// YieldThreshold is passed to the root (default: fiber.DefaultYieldThreshold).
	YieldThreshold time.Duration

	// Metrics enables the /metrics endpoint.
	Metrics bool

	// Namespace is the Prometheus namespace (default: "weft").
	Namespace string

	// Tracing records each render cycle as an OpenTelemetry span using the
	// global tracer provider.
	Tracing bool

	// TracerName is the OpenTelemetry tracer name.
	TracerName string

	// Snapshots, when set, receives a snapshot after every commit and is
	// served under /snapshots.
	Snapshots snapshot.Store

	// Logger is the server logger (default: slog.Default()).
	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown (default: 5s).
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:         config.DefaultHost + ":" + strconv.Itoa(config.DefaultPort),
		AppName:         config.DefaultApp,
		FPS:             scheduler.DefaultFPS,
		YieldThreshold:  fiber.DefaultYieldThreshold,
		Namespace:       config.DefaultNamespace,
		TracerName:      telemetry.DefaultTracerName,
		Logger:          slog.Default(),
		ShutdownTimeout: 5 * time.Second,
	}
}

// ConfigFrom maps a project configuration onto server settings. The
// snapshot store is opened separately and left unset.
func ConfigFrom(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Address = cfg.DevAddress()
	c.AppName = cfg.Dev.App
	c.FPS = cfg.Scheduler.FPS
	c.YieldThreshold = cfg.YieldThreshold()
	c.Metrics = cfg.Metrics.Enabled
	c.Namespace = cfg.Metrics.Namespace
	c.Tracing = cfg.Tracing.Enabled
	c.TracerName = cfg.Tracing.TracerName
	return c
}

// Server renders one application on an in-memory host and streams the
// resulting HTML to browsers. All rendering and event dispatch happen on the
// frame loop goroutine.
type Server struct {
	config   *Config
	logger   *slog.Logger
	app      *vdom.Element
	loop     *scheduler.FrameLoop
	host     *host.Memory
	root     *fiber.Root
	hub      *hub
	renderer *render.Renderer
	registry *prometheus.Registry
	recorder *snapshot.Recorder
	upgrader websocket.Upgrader

	container *host.Element

	mu    sync.RWMutex
	html  string
	cycle uint64

	started    atomic.Bool
	httpServer *http.Server
}

// New creates a server for app. A nil config uses DefaultConfig; unset
// fields take their defaults.
func New(app *vdom.Element, cfg *Config) *Server {
	defaults := DefaultConfig()
	if cfg == nil {
		cfg = defaults
	} else {
		c := *cfg
		cfg = &c
		if cfg.Address == "" {
			cfg.Address = defaults.Address
		}
		if cfg.AppName == "" {
			cfg.AppName = defaults.AppName
		}
		if cfg.FPS <= 0 {
			cfg.FPS = defaults.FPS
		}
		if cfg.YieldThreshold <= 0 {
			cfg.YieldThreshold = defaults.YieldThreshold
		}
		if cfg.Namespace == "" {
			cfg.Namespace = defaults.Namespace
		}
		if cfg.TracerName == "" {
			cfg.TracerName = defaults.TracerName
		}
		if cfg.Logger == nil {
			cfg.Logger = defaults.Logger
		}
		if cfg.ShutdownTimeout <= 0 {
			cfg.ShutdownTimeout = defaults.ShutdownTimeout
		}
	}

	logger := cfg.Logger.With("component", "devserver")
	s := &Server{
		config:   cfg,
		logger:   logger,
		app:      app,
		host:     host.NewMemory(),
		hub:      newHub(logger),
		renderer: render.New(render.Config{EventIDs: true}),
		registry: prometheus.NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
	}
	s.container = s.host.NewContainer("div")
	s.loop = scheduler.NewFrameLoop(scheduler.WithFPS(cfg.FPS), scheduler.WithLogger(logger))

	opts := []fiber.Option{
		fiber.WithLogger(cfg.Logger),
		fiber.WithYieldThreshold(cfg.YieldThreshold),
		fiber.WithObserver(fiber.ObserverFuncs{Commit: s.onCommit}),
	}
	if cfg.Metrics {
		s.registry.MustRegister(collectors.NewGoCollector())
		opts = append(opts, fiber.WithObserver(telemetry.NewMetrics(
			telemetry.WithRegistry(s.registry),
			telemetry.WithNamespace(cfg.Namespace),
		)))
	}
	if cfg.Tracing {
		opts = append(opts, fiber.WithObserver(telemetry.NewTracer(
			telemetry.WithTracerName(cfg.TracerName),
			telemetry.WithAttributes(attribute.String("weft.app", cfg.AppName)),
		)))
	}
	if cfg.Snapshots != nil {
		s.recorder = snapshot.NewRecorder(cfg.Snapshots,
			func() string { return render.HTML(s.container) },
			snapshot.WithApp(cfg.AppName),
			snapshot.WithLogger(logger),
		)
		opts = append(opts, fiber.WithObserver(s.recorder))
	}

	s.root = fiber.NewRoot(s.container, s.host, guarded{s.loop, s}, opts...)
	return s
}

// guarded recovers panics raised while the root works, so a faulty
// component does not take the server down.
type guarded struct {
	inner scheduler.IdleScheduler
	s     *Server
}

func (g guarded) RequestIdle(cb scheduler.IdleCallback) {
	g.inner.RequestIdle(func(d scheduler.Deadline) {
		defer g.s.recoverPanic("render")
		cb(d)
	})
}

// recoverPanic logs a recovered panic and reports it to every client.
func (s *Server) recoverPanic(where string) {
	v := recover()
	if v == nil {
		return
	}
	s.logger.Error("panic recovered", "where", where, "panic", v, "stack", string(debug.Stack()))
	s.hub.broadcast(ServerMessage{Type: TypeError, Error: fmt.Sprintf("panic during %s: %v", where, v)})
}

// onCommit runs on the loop goroutine after every commit.
func (s *Server) onCommit(stats fiber.CommitStats) {
	html := s.renderer.InnerHTML(s.container)
	s.mu.Lock()
	s.html, s.cycle = html, stats.Cycle
	s.mu.Unlock()
	s.hub.broadcast(ServerMessage{Type: TypeHTML, Cycle: stats.Cycle, HTML: html})
}

// HTML returns the most recently committed markup and its cycle.
func (s *Server) HTML() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.html, s.cycle
}

// Clients returns the number of connected preview clients.
func (s *Server) Clients() int {
	return s.hub.count()
}

// Registry returns the Prometheus registry served on /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Do runs fn on the render goroutine and waits for it.
func (s *Server) Do(ctx context.Context, fn func()) error {
	return s.loop.Do(ctx, fn)
}

// Start runs the frame loop until ctx is cancelled and mounts the app. It
// does not listen; use Handler with your own http.Server, or Run.
func (s *Server) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}
	go func() {
		if err := s.loop.Run(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("frame loop stopped", "error", err)
		}
		s.hub.closeAll()
		if s.recorder != nil {
			s.recorder.Close()
		}
	}()
	return s.loop.Post(func() {
		defer s.recoverPanic("mount")
		s.root.Render(s.app)
	})
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := s.Start(ctx); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "app", s.config.AppName)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.hub.closeAll()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	if s.config.Metrics {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	if s.config.Snapshots != nil {
		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", s.handleSnapshotList)
			r.Get("/{key}", s.handleSnapshot)
		})
	}
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.App}} · weft</title>
</head>
<body>
<div id="weft-root">{{.HTML}}</div>
<script>{{.Script}}</script>
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	html, _ := s.HTML()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, struct {
		App    string
		HTML   template.HTML
		Script template.JS
	}{s.config.AppName, template.HTML(html), template.JS(clientScript)})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, cycle := s.HTML()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"app":     s.config.AppName,
		"cycle":   cycle,
		"clients": s.Clients(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the request.
		s.logger.Warn("websocket upgrade failed", "error", errors.New("E060").Wrap(err))
		return
	}

	c := s.hub.add(conn)
	defer s.hub.remove(c)

	if html, cycle := s.HTML(); cycle > 0 {
		s.hub.sendTo(c, ServerMessage{Type: TypeHTML, Cycle: cycle, HTML: html})
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "error", err)
			}
			return
		}

		msg, err := DecodeClientMessage(data)
		if err != nil {
			s.logger.Warn("dropping client message", "error", err)
			s.hub.sendTo(c, errorMessage(err))
			continue
		}
		s.dispatch(c, msg)
	}
}

// dispatch delivers a client event to the host on the render goroutine.
func (s *Server) dispatch(c *client, msg ClientMessage) {
	err := s.loop.Post(func() {
		defer s.recoverPanic("event " + msg.Event)
		ev := host.Event{Type: msg.Event, Value: msg.Value}
		if err := s.host.Dispatch(msg.Target, ev); err != nil {
			s.logger.Warn("event not delivered", "target", msg.Target, "event", msg.Event, "error", err)
			s.hub.sendTo(c, errorMessage(err))
		}
	})
	if err != nil {
		s.hub.sendTo(c, errorMessage(err))
	}
}

func (s *Server) handleSnapshotList(w http.ResponseWriter, r *http.Request) {
	keys, err := s.config.Snapshots.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorMessage(err))
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, keys)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	snap, err := s.config.Snapshots.Get(r.Context(), key)
	switch {
	case errors.HasCode(err, "E102"):
		writeJSON(w, http.StatusNotFound, errorMessage(err))
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorMessage(err))
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
