// Package web serves the public pages of the app: the legal documents and
// the account deletion form.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/ajg/form"
	"github.com/amora/amoractl/internal/backend/client"
	"github.com/amora/amoractl/internal/backend/helpers"
	"github.com/amora/amoractl/internal/legal"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	cfg       Config
	deletions helpers.AccountDeletionAPI
	logger    *slog.Logger
	pages     map[string]*template.Template
}

type page struct {
	SiteName string
	Title    string
	Path     string
	Body     template.HTML
	Form     client.AccountDeletionRequest
	Outcome  *client.Outcome
}

// NewServer parses the page templates. deletions receives the submitted
// account deletion requests.
func NewServer(cfg Config, deletions helpers.AccountDeletionAPI, logger *slog.Logger) (*Server, error) {
	if deletions == nil {
		return nil, errors.New("web: an account deletion backend is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"document", "delete", "notfound"} {
		t, err := template.New(name).
			Funcs(sprig.FuncMap()).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("web: parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	return &Server{cfg: cfg, deletions: deletions, logger: logger, pages: pages}, nil
}

// Handler returns the router of the public pages.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/privacy", http.StatusFound)
	})
	for _, slug := range legal.Slugs() {
		r.Get("/"+slug, s.document(slug))
	}
	r.Get("/delete-account", s.deleteForm)
	r.Post("/delete-account", s.deleteSubmit)
	r.NotFound(s.notFound)

	return r
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("web: listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("web server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) document(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := legal.Get(slug)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		body, err := doc.HTML()
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "document", page{Title: doc.Title, Body: body})
	}
}

func (s *Server) deleteForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "delete", page{Title: "Delete your account"})
}

func (s *Server) deleteSubmit(w http.ResponseWriter, r *http.Request) {
	var req client.AccountDeletionRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.maxFormBytes())
	dec := form.NewDecoder(body)
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&req); err != nil {
		out := client.Failure(fmt.Errorf("%w: the form could not be read", client.ErrInvalidInput))
		s.render(w, r, http.StatusBadRequest, "delete", page{Title: "Delete your account", Outcome: &out})
		return
	}

	out := s.deletions.RequestAccountDeletion(r.Context(), req)
	status := http.StatusOK
	switch {
	case out.Succeeded:
		// the email is not logged
		s.logger.Info("account deletion requested", slog.String("request_id", middleware.GetReqID(r.Context())))
	case errors.Is(out.Err, client.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadGateway
		s.logger.Error("account deletion request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("error", out.Err))
	}
	s.render(w, r, status, "delete", page{Title: "Delete your account", Form: req, Outcome: &out})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", page{Title: "Page not found", Path: r.URL.Path})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	p.SiteName = s.cfg.SiteName
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("web request failed",
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("web request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (c Config) maxFormBytes() int64 {
	if c.MaxFormBytes <= 0 {
		return 16 << 10
	}
	return c.MaxFormBytes
}
