package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plasma-social/plasma-backend/api/controllers"
	"github.com/plasma-social/plasma-backend/api/middleware"
	"github.com/plasma-social/plasma-backend/internal/comments"
	"github.com/plasma-social/plasma-backend/internal/content"
	"github.com/plasma-social/plasma-backend/internal/earnings"
	"github.com/plasma-social/plasma-backend/internal/interactions"
	"github.com/plasma-social/plasma-backend/internal/subscriptions"
	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/config"
	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/logger"
	"github.com/plasma-social/plasma-backend/pkg/metrics"
	"github.com/plasma-social/plasma-backend/pkg/redis"
)

// RouterParams groups everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DBPinger db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry

	UserService         users.Service
	ContentService      content.Service
	InteractionService  interactions.Service
	EarningService      earnings.Service
	CommentService      comments.Service
	SubscriptionService subscriptions.Service
}

// NewRouter wires the chi router with middleware, health/metrics endpoints
// and the versioned API surface.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	// Typed nils must not reach the interface params below.
	var reg prometheus.Registerer
	var redisHealth redis.Pinger
	var limiterStore middleware.RateLimiterStore
	if p.Registry != nil {
		reg = p.Registry
	}
	if p.Redis != nil {
		redisHealth = p.Redis
		limiterStore = p.Redis
	}

	httpMetrics := metrics.NewHTTPMetrics(reg)

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger, httpMetrics),
		middleware.CORS(),
	)

	interactionPolicy := middleware.NewRateLimitPolicy(
		"interactions",
		p.Config.RateLimit.InteractionWindow,
		p.Config.RateLimit.InteractionIPLimit,
		p.Config.RateLimit.InteractionActorLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DBPinger, redisHealth))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.UserCreate(p.UserService, p.Logger))
			r.Get("/", controllers.UserList(p.UserService, p.Logger))
			r.Get("/username/{username}", controllers.UserGetByUsername(p.UserService, p.Logger))
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", controllers.UserGet(p.UserService, p.Logger))
				r.Get("/content", controllers.ContentListByUser(p.ContentService, p.Logger))
				r.Route("/earnings", func(r chi.Router) {
					r.Post("/", controllers.EarningRecord(p.EarningService, p.Logger))
					r.Get("/", controllers.EarningsList(p.EarningService, p.Logger))
					r.Get("/summary", controllers.EarningsSummary(p.EarningService, p.Logger))
				})
				r.Get("/subscriptions", controllers.SubscriptionListForSubscriber(p.SubscriptionService, p.Logger))
				r.Get("/subscribers", controllers.SubscriptionListForCreator(p.SubscriptionService, p.Logger))
			})
		})

		r.Route("/content", func(r chi.Router) {
			r.Post("/", controllers.ContentCreate(p.ContentService, p.Logger))
			r.Get("/feed", controllers.ContentFeed(p.ContentService, p.Logger))
			r.Route("/{contentID}", func(r chi.Router) {
				r.Get("/", controllers.ContentGet(p.ContentService, p.Logger))
				r.Delete("/", controllers.ContentDelete(p.ContentService, p.Logger))
				r.Get("/interactions", controllers.InteractionListByContent(p.InteractionService, p.Logger))
				r.Get("/interactions/state", controllers.InteractionState(p.InteractionService, p.Logger))
				r.Post("/comments", controllers.CommentCreate(p.CommentService, p.Logger))
				r.Get("/comments", controllers.CommentList(p.CommentService, p.Logger))
			})
		})

		r.With(middleware.RateLimit(interactionPolicy, limiterStore, p.Logger)).
			Post("/interactions", controllers.InteractionRecord(p.InteractionService, p.Logger))

		r.Delete("/comments/{commentID}", controllers.CommentDelete(p.CommentService, p.Logger))

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/", controllers.SubscriptionCreate(p.SubscriptionService, p.Logger))
			r.Delete("/{subscriptionID}", controllers.SubscriptionCancel(p.SubscriptionService, p.Logger))
		})
	})

	return r
}
