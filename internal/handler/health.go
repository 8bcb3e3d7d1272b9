package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"scankey-catalog/internal/model"
	"scankey-catalog/internal/service"
)

type HealthHandler struct {
	svc *service.CatalogService
	db  *pgxpool.Pool
}

// NewHealthHandler creates the handler; db may be nil when Postgres is not used
func NewHealthHandler(svc *service.CatalogService, db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{svc: svc, db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response := model.HealthResponse{
		Status:    "ok",
		Catalog:   h.svc.CatalogSize(),
		Timestamp: time.Now(),
	}

	if response.Catalog == 0 {
		response.Status = "degraded"
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		response.Database = "connected"
		if err := h.db.Ping(ctx); err != nil {
			response.Database = "disconnected"
			response.Status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, response)
}
