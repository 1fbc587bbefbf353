package sidebar

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mchmarny/docnav/pkg/metric"
)

// Handler serves the sidebar of a Source over HTTP as JSON.
type Handler struct {
	src      Source
	resolver Resolver
	requests metric.IncrementalCounter
}

// NewHandler creates a handler reading from src. The counter receives the
// endpoint and status code of every request; nil disables counting.
func NewHandler(src Source, r Resolver, requests metric.IncrementalCounter) *Handler {
	if requests == nil {
		requests = metric.Discard
	}

	return &Handler{
		src:      src,
		resolver: r,
		requests: requests,
	}
}

// Register walks through the handler's endpoints and registers them with the server.
func (h *Handler) Register(register func(pattern string, handler http.Handler)) {
	register("GET /{$}", h.Sidebar())
	register("GET /sidebar", h.Sidebar())
	register("GET /sidebar/{group}", h.Group())
	register("GET /routes", h.Routes())
}

// Sidebar returns an HTTP handler that responds with the whole sidebar structure.
func (h *Handler) Sidebar() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, r, "sidebar", http.StatusOK, h.src.Current())
	})
}

// Group returns an HTTP handler that responds with the resolved items of the
// group named by the {group} path value.
func (h *Handler) Group() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("group")

		items, ok := h.src.Current().Group(name)
		if !ok {
			h.writeError(w, r, "group", http.StatusNotFound, "group not found: "+name)
			return
		}

		h.writeJSON(w, r, "group", http.StatusOK, h.resolver.Resolve(items))
	})
}

// Routes returns an HTTP handler that responds with the route table of every leaf.
func (h *Handler) Routes() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routes := h.resolver.Routes(h.src.Current())
		if routes == nil {
			routes = []Route{}
		}

		h.writeJSON(w, r, "routes", http.StatusOK, routes)
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, endpoint string, status int, message string) {
	slog.Warn("sidebar request failed",
		"method", r.Method,
		"url", r.URL.Path,
		"status", status,
		"message", message,
	)

	h.writeJSON(w, r, endpoint, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, endpoint string, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode sidebar response", "error", err)
		h.requests.Increment(endpoint, strconv.Itoa(http.StatusInternalServerError))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write sidebar response", "error", err)
	}

	h.requests.Increment(endpoint, strconv.Itoa(status))

	slog.Debug("sidebar response sent",
		"method", r.Method,
		"url", r.URL.Path,
		"status", status,
	)
}
