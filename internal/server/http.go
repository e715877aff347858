// Package server exposes rendered notes over HTTP so a browser can show the
// receipt preview and fetch or submit print jobs.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/mithrel/slipnote/internal/db"
	"github.com/mithrel/slipnote/internal/logging"
	"github.com/mithrel/slipnote/internal/markup"
	"github.com/mithrel/slipnote/internal/printer"
	"github.com/mithrel/slipnote/internal/render"
	"github.com/mithrel/slipnote/internal/wire"
	"github.com/mithrel/slipnote/pkg/api"
)

const maxRenderBody = 1 << 20

// Server serves note previews and print jobs backed by a Store.
type Server struct {
	app    *wire.App
	policy *bluemonday.Policy
	log    zerolog.Logger
	// now is overridden in tests.
	now func() time.Time
}

// New returns a Server. A nil app.Spooler disables the print endpoint.
func New(app *wire.App) *Server {
	return &Server{
		app:    app,
		policy: previewPolicy(),
		log:    logging.GetLogger("server"),
		now:    time.Now,
	}
}

// previewPolicy admits exactly the elements and style properties the preview
// translator emits. Anything else a note smuggles in is dropped.
func previewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span")
	p.AllowAttrs("style").OnElements("div", "span")
	p.AllowStyles(
		"font-family", "color", "background-color",
		"font-size", "font-weight", "text-align",
		"border-top", "margin", "height",
	).OnElements("div", "span")
	return p
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /v1/notes", s.auth(s.handleList))
	mux.HandleFunc("GET /v1/notes/{id}/preview", s.auth(s.handlePreview))
	mux.HandleFunc("GET /v1/notes/{id}/escpos", s.auth(s.handleESCPOS))
	mux.HandleFunc("POST /v1/notes/{id}/print", s.auth(s.handlePrint))
	mux.HandleFunc("POST /v1/render", s.auth(s.handleRender))
	return s.logRequests(mux)
}

// auth enforces a bearer token when server.token is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(s.app.Cfg.GetString("server.token"))
		if tok == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := r.Header.Get("Authorization")
		if !strings.HasPrefix(got, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(got, "Bearer ")) != tok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	field, ok := api.ParseSortField(q.Get("sort"))
	if !ok {
		http.Error(w, "bad sort", http.StatusBadRequest)
		return
	}
	order, ok := api.ParseSortOrder(q.Get("order"))
	if !ok {
		http.Error(w, "bad order", http.StatusBadRequest)
		return
	}
	limit := 0
	if ls := strings.TrimSpace(q.Get("limit")); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil || n < 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	notes, err := s.app.Store.Notes.ListNotes(r.Context(), api.ListQuery{
		Search: q.Get("search"),
		Sort:   field,
		Order:  order,
		Limit:  limit,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	if notes == nil {
		notes = []api.Note{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(notes)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookup(w, r)
	if !ok {
		return
	}
	width, ok := s.width(w, r)
	if !ok {
		return
	}
	fragment, err := render.PreviewNote(n, width, s.now())
	if err != nil {
		s.fail(w, err)
		return
	}
	page := previewPage(n.Title, s.policy.Sanitize(fragment))
	etag := `"` + api.HashBytes([]byte(page))[:32] + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, page)
}

func (s *Server) handleESCPOS(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lookup(w, r)
	if !ok {
		return
	}
	opts, ok := s.printerOptions(w, r)
	if !ok {
		return
	}
	job, err := render.PrintNote(n, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+n.ID+`.bin"`)
	_, _ = w.Write(job)
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	if s.app.Spooler == nil {
		http.Error(w, "printing disabled", http.StatusServiceUnavailable)
		return
	}
	n, ok := s.lookup(w, r)
	if !ok {
		return
	}
	opts, ok := s.printerOptions(w, r)
	if !ok {
		return
	}
	name, err := s.app.PrinterName(r.Context(), strings.TrimSpace(r.URL.Query().Get("printer")))
	if err != nil {
		s.fail(w, err)
		return
	}
	job, err := render.PrintNote(n, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.app.Spooler.Print(r.Context(), printer.Job{Printer: name, Data: job}); err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info().Str("id", n.ID).Str("printer", name).Int("bytes", len(job)).Msg("printed note")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"id": n.ID, "printer": name, "bytes": len(job)})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := render.TargetPreview
	if t := q.Get("target"); t != "" {
		var ok bool
		if target, ok = render.ParseTarget(t); !ok {
			http.Error(w, "bad target", http.StatusBadRequest)
			return
		}
	}
	opts, ok := s.printerOptions(w, r)
	if !ok {
		return
	}
	opts.Title = q.Get("title")
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRenderBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	out, err := render.Render(target, string(body), opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	if target == render.TargetPreview {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, s.policy.Sanitize(string(out)))
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(out)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (api.Note, bool) {
	id, err := db.ResolveNoteID(r.Context(), s.app.Store.Notes, r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return api.Note{}, false
	}
	n, err := s.app.Store.Notes.GetNote(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return api.Note{}, false
	}
	return n, true
}

// width reads ?width=, falling back to the app's configured width. Range
// checks belong to the core, which rejects only width <= 0.
func (s *Server) width(w http.ResponseWriter, r *http.Request) (int, bool) {
	if ws := strings.TrimSpace(r.URL.Query().Get("width")); ws != "" {
		n, err := strconv.Atoi(ws)
		if err != nil || n <= 0 {
			http.Error(w, "bad width", http.StatusBadRequest)
			return 0, false
		}
		return n, true
	}
	return s.app.PaperWidth(r.Context(), 0), true
}

func (s *Server) printerOptions(w http.ResponseWriter, r *http.Request) (render.PrinterOptions, bool) {
	width, ok := s.width(w, r)
	if !ok {
		return render.PrinterOptions{}, false
	}
	opts, err := s.app.PrinterOptions(width, r.URL.Query().Get("codepage"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return render.PrinterOptions{}, false
	}
	opts.Now = s.now
	return opts, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, markup.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, db.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, printer.ErrNoPrinter):
		http.Error(w, "no printer selected", http.StatusConflict)
	default:
		s.log.Error().Err(err).Msg("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func previewPage(title, fragment string) string {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(bluemonday.StrictPolicy().Sanitize(title))
	b.WriteString("</title></head>\n<body style=\"background-color:#eee;\">\n")
	b.WriteString("<div style=\"white-space:pre-wrap; width:max-content; margin:24px auto; padding:16px; background-color:#fff;\">")
	b.WriteString(fragment)
	b.WriteString("</div>\n</body></html>\n")
	return b.String()
}
