// Package server exposes the scanner over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/esglens/esglens/internal/legacy"
	"github.com/esglens/esglens/internal/logging"
	"github.com/esglens/esglens/internal/rules"
	"github.com/esglens/esglens/internal/scanner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

type Options struct {
	// Table is the rule table served; nil selects the built-in rules.
	Table          *rules.Table
	Logger         *slog.Logger
	AllowedOrigins []string
	MaxBodyBytes   int64
}

type Router struct {
	scanner *scanner.Scanner
	log     *slog.Logger
	maxBody int64
}

var errBadRequest = errors.New("bad request")

func NewRouter(opts Options) http.Handler {
	r := &Router{
		scanner: scanner.New(opts.Table),
		log:     opts.Logger,
		maxBody: opts.MaxBodyBytes,
	}
	if r.log == nil {
		r.log = logging.Discard()
	}
	if r.maxBody <= 0 {
		r.maxBody = DefaultMaxBodyBytes
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(r.requestLog)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/rules", r.wrap(r.handleRules))
		rt.Post("/scan", r.wrap(r.handleScan))
		rt.Post("/score", r.wrap(r.handleScore))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			if errors.Is(err, errBadRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			r.log.Error("handler error", "path", req.URL.Path, "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func (r *Router) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, req)
		r.log.Info("request",
			"request_id", id,
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

// decode reads a JSON body into v, bounded by the configured limit.
func (r *Router) decode(w http.ResponseWriter, req *http.Request, v any) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxBody)
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

type ruleView struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Trigger  string `json:"trigger"`
	Unless   string `json:"unless,omitempty"`
}

// GET /v1/rules
func (r *Router) handleRules(w http.ResponseWriter, _ *http.Request) error {
	t := r.scanner.Table()
	out := struct {
		Rules       []ruleView `json:"rules"`
		ThirdParty  string     `json:"third_party"`
		Fingerprint string     `json:"fingerprint"`
	}{
		Rules:       make([]ruleView, 0, t.Len()),
		ThirdParty:  t.ThirdPartySource(),
		Fingerprint: t.Fingerprint(),
	}
	for _, rl := range t.Rules() {
		out.Rules = append(out.Rules, ruleView{ID: rl.ID, Category: string(rl.Category), Trigger: rl.Trigger, Unless: rl.Unless})
	}
	return writeJSON(w, out)
}

// POST /v1/scan
// Body: {"text": "...", "company": "..."}
func (r *Router) handleScan(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text    string `json:"text"`
		Company string `json:"company"`
	}
	if err := r.decode(w, req, &body); err != nil {
		return err
	}
	return writeJSON(w, r.scanner.Scan(body.Text, body.Company))
}

// POST /v1/score
// Body: {"text": "..."}
func (r *Router) handleScore(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := r.decode(w, req, &body); err != nil {
		return err
	}
	return writeJSON(w, legacy.Score(body.Text))
}
