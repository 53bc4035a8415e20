package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bazario/marketplace-backend/api/controllers"
	ordercontrollers "github.com/bazario/marketplace-backend/api/controllers/orders"
	webhookcontrollers "github.com/bazario/marketplace-backend/api/controllers/webhooks"
	"github.com/bazario/marketplace-backend/api/middleware"
	"github.com/bazario/marketplace-backend/internal/orders"
	"github.com/bazario/marketplace-backend/internal/payments"
	"github.com/bazario/marketplace-backend/pkg/config"
	"github.com/bazario/marketplace-backend/pkg/db"
	"github.com/bazario/marketplace-backend/pkg/logger"
	"github.com/bazario/marketplace-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	ordersSvc orders.Service,
	paymentGuard *payments.IdempotencyGuard,
	metricsGatherer prometheus.Gatherer,
) http.Handler {
	var idemStore redis.IdempotencyStore
	var redisPinger redis.Pinger
	if redisClient != nil {
		idemStore = redisClient
		redisPinger = redisClient
	}

	trackPolicy := middleware.NewPublicRateLimitPolicy(
		"order_track",
		cfg.Public.TrackWindow,
		cfg.Public.TrackIPLimit,
	)
	trackLimiter := middleware.PublicRateLimit(trackPolicy, nil, logg)
	if redisClient != nil {
		trackLimiter = middleware.PublicRateLimit(trackPolicy, redisClient, logg)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if metricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public/orders", func(r chi.Router) {
		r.With(trackLimiter).Get("/{orderNumber}/track", ordercontrollers.Track(ordersSvc, logg))
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/payments", webhookcontrollers.PaymentWebhook(ordersSvc, cfg.Webhook.PaymentSecret, paymentGuard, logg))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Post("/", ordercontrollers.Create(ordersSvc, logg))
		r.Get("/", ordercontrollers.List(ordersSvc, logg))
		r.Get("/{orderID}", ordercontrollers.Detail(ordersSvc, logg))
		r.Post("/{orderID}/cancel", ordercontrollers.Cancel(ordersSvc, logg))
	})

	r.Route("/api/admin/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/{orderID}", controllers.AdminOrderDetail(ordersSvc, logg))
		r.Post("/{orderID}/status", controllers.AdminUpdateOrderStatus(ordersSvc, logg))
	})

	return r
}
