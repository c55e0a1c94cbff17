package controllers

import (
	"database/sql"
	"net/http"

	"invitepage/internal/delivery/http/helpers"
)

type HealthController struct {
	DB *sql.DB
}

func NewHealthController(db *sql.DB) *HealthController {
	return &HealthController{DB: db}
}

// Health godoc
// @Summary Liveness and store reachability
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if c.DB != nil {
		if err := c.DB.PingContext(r.Context()); err != nil {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "store unreachable")
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
