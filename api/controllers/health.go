package controllers

import (
	"context"
	"net/http"

	"github.com/bazario/marketplace-backend/api/responses"
	"github.com/bazario/marketplace-backend/pkg/config"
	"github.com/bazario/marketplace-backend/pkg/db"
	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
	"github.com/bazario/marketplace-backend/pkg/logger"
	"github.com/bazario/marketplace-backend/pkg/redis"
)

const envHeader = "X-Bazario-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies and reports per-dependency state.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		checks["db"] = pingState(r.Context(), dbP)
		checks["redis"] = pingState(r.Context(), redisP)
		for name, state := range checks {
			if state != "ok" {
				healthy = false
				if logg != nil {
					logg.Warn(logg.WithFields(r.Context(), map[string]any{"dependency": name}), "readiness check failed")
				}
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

type pinger interface {
	Ping(context.Context) error
}

func pingState(ctx context.Context, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}
