package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/metrics"
	"github.com/desertthunder/mvx/internal/server"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/views"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// RequestTimeout bounds a single request, including the OMDb calls a search makes.
const RequestTimeout = 30 * time.Second

type pageData struct {
	Snapshot views.Snapshot
	Results  template.HTML
	OOB      bool
}

// App holds the handlers for the web front end.
type App struct {
	ctrl   *views.Controller
	logger *log.Logger
}

// NewApp creates the web front end for ctrl.
func NewApp(ctrl *views.Controller, logger *log.Logger) *App {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &App{ctrl: ctrl, logger: shared.WithLogger(logger, "component", "web")}
}

// NewRouter builds a router with the default middleware stack and every route registered.
func NewRouter(ctrl *views.Controller, logger *log.Logger) *server.BasicRouter {
	app := NewApp(ctrl, logger)

	r := server.NewBasicRouter()
	r.Use(server.DefaultMiddleware(app.logger, RequestTimeout)...)
	app.Register(r)
	return r
}

// Register adds the app's routes to r.
func (a *App) Register(r server.Router) {
	r.Handle(http.MethodGet, "/", http.HandlerFunc(a.Index))
	r.Handle(http.MethodPost, "/search", http.HandlerFunc(a.Search))
	r.Handle(http.MethodPost, "/watchlist/{id}", http.HandlerFunc(a.Add))
	r.Handle(http.MethodDelete, "/watchlist/{id}", http.HandlerFunc(a.Remove))
	r.Handle(http.MethodPost, "/toggle", http.HandlerFunc(a.Toggle))
	r.Handle(http.MethodGet, "/images/missing.gif", http.HandlerFunc(MissingPoster))
	r.Handle(http.MethodGet, "/static/*", staticHandler())
	r.Handle(http.MethodGet, "/health", http.HandlerFunc(Health))
	r.Handle(http.MethodGet, "/metrics", metrics.Handler())
}

// Index renders the full page for the current state.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	a.render(w, "page", a.ctrl.Snapshot(), false, http.StatusOK)
}

// Search runs the search in the "title" form field.
//
// A blank title answers 400 and a failed search 502; htmx does not swap error responses,
// so the results on screen stay as they were. A search overtaken by a newer one answers 204.
func (a *App) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	snap, err := a.ctrl.Search(r.Context(), r.FormValue("title"))
	switch {
	case errors.Is(err, shared.ErrSuperseded):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, shared.ErrInvalidInput):
		a.render(w, "fragment", snap, true, http.StatusBadRequest)
	case err != nil:
		http.Error(w, "search failed", http.StatusBadGateway)
	default:
		a.render(w, "fragment", snap, true, http.StatusOK)
	}
}

// Add puts the movie named in the path into the watchlist.
func (a *App) Add(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, added, err := a.ctrl.Add(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	a.logger.Debug("watchlist add", "id", id, "added", added)
	w.WriteHeader(http.StatusNoContent)
}

// Remove drops the movie named in the path and re-renders the results.
func (a *App) Remove(w http.ResponseWriter, r *http.Request) {
	snap, _, err := a.ctrl.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	a.render(w, "fragment", snap, true, http.StatusOK)
}

// Toggle switches between the search and watchlist views.
func (a *App) Toggle(w http.ResponseWriter, r *http.Request) {
	a.render(w, "fragment", a.ctrl.Toggle(), true, http.StatusOK)
}

// MissingPoster serves the placeholder image used when a movie has no poster.
func MissingPoster(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/missing.gif")
	if err != nil {
		http.Error(w, "missing poster", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (a *App) render(w http.ResponseWriter, name string, snap views.Snapshot, oob bool, status int) {
	results, err := snap.HTML()
	if err != nil {
		a.logger.Error("failed to render results", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	data := pageData{Snapshot: snap, Results: template.HTML(results), OOB: oob}
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrMovieNotFound), errors.Is(err, shared.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrStorage):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
