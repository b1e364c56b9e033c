// Package overlay serves the on-screen task list and a local endpoint for running commands.
package overlay

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"streamtasks/internal/firebot"
	"streamtasks/internal/host"
	"streamtasks/internal/observability"
	"streamtasks/internal/script"
)

// Logger receives diagnostics. *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

// Options configure the server.
type Options struct {
	// Defaults fill parameters a run request leaves empty.
	Defaults firebot.Params
}

// Server serves the overlay page, the rendered list, and the run endpoint.
type Server struct {
	opts     Options
	poller   *Poller
	script   *script.Script
	executor *host.Executor
	metrics  *observability.Metrics
	logger   Logger
	upgrader websocket.Upgrader
	static   http.Handler

	// The host runs one command at a time.
	runMu sync.Mutex
}

// New creates a Server. The poller must watch opts.Defaults.Filepath.
func New(opts Options, poller *Poller, s *script.Script, executor *host.Executor, metrics *observability.Metrics, logger Logger) *Server {
	return &Server{
		opts:     opts,
		poller:   poller,
		script:   s,
		executor: executor,
		metrics:  metrics,
		logger:   logger,
		static:   newStaticHandler(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     sameOrigin,
		},
	}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		s.metrics.Handler().ServeHTTP(w, r)
	})

	r.Get("/tasklist.json", s.handleTasksJSON)
	r.Get("/tasklist.html", s.handleTasksHTML)
	r.Get("/ws", s.handleWS)
	r.Post("/v1/run", s.handleRun)

	r.Handle("/*", s.static)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"filepath": s.opts.Defaults.Filepath,
	})
}

func (s *Server) handleTasksJSON(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.poller.Current().Tasks)
}

func (s *Server) handleTasksHTML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(s.poller.Current().HTML))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !sameOrigin(r) {
		respondError(w, http.StatusForbidden, "forbidden_origin", "cross-origin requests are not allowed")
		return
	}
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		respondError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
		return
	}

	var req firebot.RunRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Parameters.Command) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "parameters.command is required")
		return
	}
	// Only the overlay's own task list may be written through this endpoint.
	if req.Parameters.Filepath != "" && req.Parameters.Filepath != s.opts.Defaults.Filepath {
		respondError(w, http.StatusForbidden, "forbidden_filepath", "parameters.filepath must be empty or "+s.opts.Defaults.Filepath)
		return
	}
	s.applyDefaults(&req.Parameters)

	s.runMu.Lock()
	result := s.script.Run(&req)
	err := s.executor.Execute(result.Effects)
	s.runMu.Unlock()

	if err != nil {
		s.logger.Warn("failed to execute effects", "command", req.Parameters.Command, "err", err)
		respondError(w, http.StatusInternalServerError, "execute_failed", err.Error())
		return
	}

	// Push the change to overlays without waiting for the next poll.
	s.poller.Refresh()
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) applyDefaults(p *firebot.Params) {
	d := s.opts.Defaults
	if p.Filepath == "" {
		p.Filepath = d.Filepath
	}
	if p.SendMessagesAs == "" {
		p.SendMessagesAs = d.SendMessagesAs
	}
	if p.CommandHelpText == "" {
		p.CommandHelpText = d.CommandHelpText
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.metrics.OverlayClients.Inc()
	defer s.metrics.OverlayClients.Dec()

	updates, unsubscribe := s.poller.Subscribe()
	defer unsubscribe()

	// Reader: only needed to notice the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(4096)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(snap Snapshot) error {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteJSON(snap)
	}

	if err := send(s.poller.Current()); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case snap := <-updates:
			if err := send(snap); err != nil {
				return
			}
		}
	}
}

// sameOrigin allows requests without an Origin header (non-browser clients) and
// browser requests whose origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
