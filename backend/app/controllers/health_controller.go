package controllers

import (
	"context"
	"net/http"
	"time"

	"jewel-lending/backend/global"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct{ DB Pinger }

func NewHealthController(db Pinger) *HealthController { return &HealthController{DB: db} }

func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := c.DB.Ping(ctx); err != nil {
		global.Logger.Error().Err(err).Msg("health check")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
