// Package fakebackend is an in-memory implementation of the TaskFlow REST contract.
// It backs the client tests and the local development server.
package fakebackend

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/domain"
	"taskflow/internal/logging"
)

// DefaultTokenTTL is how long issued tokens stay valid
const DefaultTokenTTL = 24 * time.Hour

type account struct {
	user         domain.User
	passwordHash []byte
}

type failure struct {
	method string
	path   string
	status int
}

// Server holds users and their tasks in memory.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account
	tasks    map[string][]domain.Task
	failures []failure

	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
	newID      func() string
	logger     *logging.Logger
}

// Option configures a Server
type Option func(*Server)

// WithSecret sets the HMAC key used to sign tokens
func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

// WithTokenTTL sets the lifetime of issued tokens
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

// WithBcryptCost sets the password hashing cost; tests use bcrypt.MinCost
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.bcryptCost = cost }
}

// WithClock overrides the time source used for createdAt and token expiry
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithIDs overrides the identifier generator
func WithIDs(gen func() string) Option {
	return func(s *Server) { s.newID = gen }
}

// WithLogger logs every request at info level
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates an empty backend
func New(opts ...Option) *Server {
	s := &Server{
		accounts:   make(map[string]*account),
		tasks:      make(map[string][]domain.Task),
		secret:     []byte("taskflow-dev-secret"),
		tokenTTL:   DefaultTokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the chi router serving the REST contract
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.injectFailures)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/auth/me", s.handleMe)
		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks", s.handleCreateTask)
		r.Put("/tasks/{id}", s.handleUpdateTask)
		r.Delete("/tasks/{id}", s.handleDeleteTask)
	})

	return r
}

// FailNext makes the next request matching method and path answer with status.
// Each registered failure fires once.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status})
}

// TaskCount returns how many tasks a user owns
func (s *Server) TaskCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks[userID])
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request", logging.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"request_id": r.Header.Get("X-Request-ID"),
			"elapsed":    s.now().Sub(start),
		})
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := s.takeFailure(r.Method, r.URL.Path); ok {
			writeMessage(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) takeFailure(method, path string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.failures {
		if f.method == method && f.path == path {
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			return f.status, true
		}
	}
	return 0, false
}
