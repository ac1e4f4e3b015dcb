package handler

import (
	"net/http"

	"github.com/forgo/directory/api/internal/database"
)

// HealthHandler reports service liveness and engine reachability
type HealthHandler struct {
	db database.Database
}

// NewHealthHandler creates a health handler
func NewHealthHandler(db database.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, map[string]string{"status": status})
}
