package controllers

import (
	"context"
	"net/http"

	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController checks DB connectivity.
type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.db.Ping(r.Context()); err != nil {
		utils.RespondErrorWithCode(w, r, http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, r, http.StatusOK, "OK", map[string]string{"status": "OK"})
}
