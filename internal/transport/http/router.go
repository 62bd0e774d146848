package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"logo-guess-service/internal/app"
	"logo-guess-service/internal/domain"
)

// Handler exposes the catalog over REST and the game loop over a websocket.
type Handler struct {
	catalog *app.CatalogService
	games   *app.GameService
	ws      *WSHandler
	logger  *slog.Logger
}

func NewHandler(catalog *app.CatalogService, games *app.GameService, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		games:   games,
		ws:      NewWSHandler(games, logger),
		logger:  logger,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// Router builds the chi router with every route mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/healthz", h.Health)
	r.Get("/ws", h.ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/brands", h.ListBrands)
		r.Post("/brands", h.CreateBrand)
		r.Get("/scores", h.ListScores)
		r.Post("/scores", h.CreateScore)
	})
	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps err to a status code; unexpected errors are logged and hidden.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, errorResponse{Message: publicMessage(err)})
}

func statusFor(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateSlug),
		errors.Is(err, domain.ErrSessionEnded),
		errors.Is(err, domain.ErrSessionActive),
		errors.Is(err, domain.ErrAnswerRevealed),
		errors.Is(err, domain.ErrNotRevealed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrNoBrands):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
