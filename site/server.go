// Package site serves the HTTP surface of the Atom 5 site: the contact
// relay, navigation state, the animated scene as JSON and as a websocket
// frame stream, health and metrics.
package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/A5-Website/atom-5-nexus/contact"
	"github.com/A5-Website/atom-5-nexus/logging"
	"github.com/A5-Website/atom-5-nexus/metrics"
	"github.com/A5-Website/atom-5-nexus/render"
	"github.com/A5-Website/atom-5-nexus/scene"
)

// MsgDeliveryFailed is shown to visitors when the mail provider fails.
const MsgDeliveryFailed = "Failed to send message. Please try again later."

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

var validate = validator.New()

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// ContactResponse is the body of an accepted contact submission.
type ContactResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// TriggerRequest asks for a cascade at Node.
type TriggerRequest struct {
	Node *int `json:"node" validate:"required,gte=0"`
}

// TriggerResponse acknowledges a queued trigger.
type TriggerResponse struct {
	Queued bool `json:"queued"`
	Node   int  `json:"node"`
}

// ReachResponse lists the nodes a cascade from Node could reach.
type ReachResponse struct {
	Node       int   `json:"node"`
	Undirected bool  `json:"undirected"`
	Nodes      []int `json:"nodes"`
}

// NavResponse is the navigation state for one path.
type NavResponse struct {
	Path  string `json:"path"`
	Links []Link `json:"links"`
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = logging.OrNop(l) }
}

// WithMetrics records HTTP, contact and stream metrics in r and serves it
// on /metrics.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Server) { s.metrics = r }
}

// WithAllowOrigin sets Access-Control-Allow-Origin.
func WithAllowOrigin(origin string) Option {
	return func(s *Server) {
		if origin != "" {
			s.allowOrigin = origin
		}
	}
}

// WithStreamBuffer sets the per-client frame buffer of /ws/frames.
func WithStreamBuffer(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.streamBuffer = n
		}
	}
}

// Server routes requests to the driver and the contact relay.
type Server struct {
	driver       *scene.Driver
	relay        *contact.Relay
	log          logging.Logger
	metrics      *metrics.Registry
	allowOrigin  string
	streamBuffer int
	upgrader     websocket.Upgrader
	handler      http.Handler
}

// NewServer builds the router. relay may be nil, in which case contact
// submissions fail with the delivery message.
func NewServer(d *scene.Driver, relay *contact.Relay, opts ...Option) *Server {
	s := &Server{
		driver:       d,
		relay:        relay,
		log:          logging.Nop(),
		allowOrigin:  "*",
		streamBuffer: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logging.Component("site"))
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 16 << 10,
		CheckOrigin:     s.checkOrigin,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("GET /api/nav", s.handleNav)
	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/scene/frame", s.handleFrame)
	mux.HandleFunc("POST /api/scene/trigger", s.handleTrigger)
	mux.HandleFunc("GET /api/scene/reach/{node}", s.handleReach)
	mux.HandleFunc("GET /ws/frames", s.handleFrames)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	var h http.Handler = mux
	h = s.corsMiddleware(h)
	if s.metrics != nil {
		h = s.metricsMiddleware(h)
	}
	s.handler = s.panicRecoveryMiddleware(h)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.allowOrigin == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.allowOrigin
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("encode response", logging.Err(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message, Code: status})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contact.Request
	if !s.decode(w, r, &req) {
		s.recordContact("invalid")
		return
	}
	if s.relay == nil {
		s.recordContact("failed")
		s.respondError(w, http.StatusInternalServerError, MsgDeliveryFailed)
		return
	}

	id, err := s.relay.Submit(r.Context(), req)
	var verr *contact.ValidationError
	switch {
	case err == nil:
		s.recordContact("sent")
		s.respondJSON(w, http.StatusOK, ContactResponse{Success: true, ID: id})
	case errors.As(err, &verr):
		s.recordContact("invalid")
		s.respondError(w, http.StatusBadRequest, verr.Reason)
	default:
		s.recordContact("failed")
		s.respondError(w, http.StatusInternalServerError, MsgDeliveryFailed)
	}
}

func (s *Server) recordContact(status string) {
	if s.metrics != nil {
		s.metrics.RecordContact(status)
	}
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	s.respondJSON(w, http.StatusOK, NavResponse{Path: path, Links: Links(path)})
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.driver.Scene().Snapshot())
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.driver.Latest())
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	var req TriggerRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "node is required and must be ≥ 0")
		return
	}

	switch err := s.driver.Trigger(*req.Node, scene.SourceAPI); {
	case err == nil:
		s.respondJSON(w, http.StatusAccepted, TriggerResponse{Queued: true, Node: *req.Node})
	case errors.Is(err, scene.ErrNodeNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, scene.ErrClosed):
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleReach(w http.ResponseWriter, r *http.Request) {
	node, err := strconv.Atoi(r.PathValue("node"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "node must be an integer")
		return
	}
	undirected := false
	if v := r.URL.Query().Get("undirected"); v != "" {
		if undirected, err = strconv.ParseBool(v); err != nil {
			s.respondError(w, http.StatusBadRequest, "undirected must be a boolean")
			return
		}
	}

	nodes, err := s.driver.Scene().Reachable(node, undirected)
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, ReachResponse{Node: node, Undirected: undirected, Nodes: nodes})
	case errors.Is(err, scene.ErrNodeNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"scene":  s.driver.Scene().ID.String(),
		"nodes":  s.driver.NodeCount(),
	})
}

// handleFrames streams every published frame to a websocket client until
// the client leaves or the driver stops.
func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		s.log.Debug("websocket upgrade", logging.Err(err))
		return
	}

	frames, cancel := s.driver.Subscribe(s.streamBuffer)
	defer cancel()

	// The read loop only watches for the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	guard := render.NewGuard(func() (render.Renderer, error) {
		return render.NewStream(conn, render.DefaultWriteTimeout), nil
	}, render.WithGuardLogger(s.log), render.WithGuardMetrics(s.metrics))
	defer func() {
		_ = guard.Close()
		_ = conn.Close()
	}()

	s.log.Debug("frame stream opened", logging.String("remote", r.RemoteAddr))
	for f := range frames {
		if err := guard.Render(f); err != nil {
			s.log.Warn("frame stream", logging.Err(err))
			return
		}
		if guard.FellBack() {
			return
		}
	}
}

// Middlewares.

func (s *Server) panicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				s.log.Error("panic in handler",
					logging.String("method", r.Method),
					logging.Path(r.URL.Path),
					logging.Any("panic", p))
				s.respondError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.HTTPRequestsInFlight.Inc()
		defer s.metrics.HTTPRequestsInFlight.Dec()

		wrapper := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		// label by route pattern to keep cardinality bounded
		path := r.Pattern
		switch {
		case r.Method == http.MethodOptions:
			path = "preflight"
		case path == "":
			path = "unmatched"
		}
		s.metrics.RecordHTTPRequest(r.Method, path, strconv.Itoa(wrapper.statusCode), time.Since(start))
	})
}
