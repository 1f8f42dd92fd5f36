package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mvx/internal/shared"
	"github.com/go-chi/chi/v5"
)

type routesHandler struct {
	routes []string
}

func (h routesHandler) Routes() []string { return h.routes }

func (h routesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "handled "+r.URL.Path)
}

func tagging(tag string, order *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBasicRouter(t *testing.T) {
	t.Run("Handle", func(t *testing.T) {
		t.Run("matches method and path", func(t *testing.T) {
			r := NewBasicRouter()
			r.Handle("get", "/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, "pong")
			}))

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
			if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
				t.Errorf("expected 200 pong, got %d %q", rec.Code, rec.Body.String())
			}
		})

		t.Run("rejects other methods", func(t *testing.T) {
			r := NewBasicRouter()
			r.Handle(http.MethodGet, "/ping", http.NotFoundHandler())

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected 405, got %d", rec.Code)
			}
		})

		t.Run("exposes url params", func(t *testing.T) {
			r := NewBasicRouter()
			r.Handle(http.MethodDelete, "/watchlist/{id}", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				io.WriteString(w, chi.URLParam(req, "id"))
			}))

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/watchlist/tt0078748", nil))
			if rec.Body.String() != "tt0078748" {
				t.Errorf("expected id param, got %q", rec.Body.String())
			}
		})

		t.Run("unknown path is 404", func(t *testing.T) {
			r := NewBasicRouter()
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
		})
	})

	t.Run("Handler registers every route", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handler(routesHandler{routes: []string{"/a", "/b"}})

		for _, path := range []string{"/a", "/b"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Body.String() != "handled "+path {
				t.Errorf("%s: unexpected body %q", path, rec.Body.String())
			}
		}
	})

	t.Run("Middleware runs in registration order", func(t *testing.T) {
		var order []string
		r := NewBasicRouter()
		r.Use(tagging("first", &order), tagging("second", &order))
		r.Handle(http.MethodGet, "/", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			order = append(order, "handler")
		}))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if got := strings.Join(order, ","); got != "first,second,handler" {
			t.Errorf("unexpected order %s", got)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)

	r := NewBasicRouter()
	r.Use(DefaultMiddleware(logger, time.Second)...)
	r.Handle(http.MethodGet, "/teapot", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	r.Handle(http.MethodGet, "/panic", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	t.Run("logs status and path", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

		out := buf.String()
		if !strings.Contains(out, "/teapot") || !strings.Contains(out, "418") {
			t.Errorf("expected path and status in log, got %q", out)
		}
		if !strings.Contains(out, "request_id") {
			t.Errorf("expected request id in log, got %q", out)
		}
	})

	t.Run("recovers panics", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestServe(t *testing.T) {
	t.Run("serves until canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		ready := make(chan string, 1)
		done := make(chan error, 1)

		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "ok")
		})
		go func() {
			done <- Serve(ctx, "127.0.0.1:0", handler, shared.NewLogger(io.Discard), ready)
		}()

		addr := <-ready
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(body) != "ok" {
			t.Errorf("unexpected body %q", body)
		}

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected clean shutdown, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("bad address", func(t *testing.T) {
		err := Serve(context.Background(), "256.0.0.1:bad", http.NotFoundHandler(), shared.NewLogger(io.Discard), nil)
		if err == nil {
			t.Error("expected listen error")
		}
	})
}
