package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/hececiz/internal/api/shared"
)

// healthTimeout bounds the store ping of a health check.
const healthTimeout = 2 * time.Second

// Pinger is implemented by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// HealthHandler reports whether the service can reach its profile store.
type HealthHandler struct {
	db     Pinger
	store  string
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler. A nil db means the profile
// store is in memory and always healthy.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	store := "memory"
	if db != nil {
		store = "postgres"
	}
	return &HealthHandler{
		db:     db,
		store:  store,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Profile store unavailable", err)
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Store: h.store})
}
