package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopfloor/api/controllers"
	"github.com/angelmondragon/shopfloor/api/middleware"
	"github.com/angelmondragon/shopfloor/internal/auth"
	"github.com/angelmondragon/shopfloor/internal/dashboard"
	"github.com/angelmondragon/shopfloor/internal/inventory"
	"github.com/angelmondragon/shopfloor/internal/sales"
	"github.com/angelmondragon/shopfloor/internal/users"
	"github.com/angelmondragon/shopfloor/pkg/auth/session"
	"github.com/angelmondragon/shopfloor/pkg/config"
	"github.com/angelmondragon/shopfloor/pkg/db"
	"github.com/angelmondragon/shopfloor/pkg/logger"
	"github.com/angelmondragon/shopfloor/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	gatherer prometheus.Gatherer,
	authService auth.Service,
	inventoryService inventory.Service,
	salesService sales.Service,
	dashboardService dashboard.Service,
	usersService users.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	// A nil *redis.Client must not reach the interfaces below as a typed nil.
	var (
		limiter     middleware.RateLimiterStore
		redisPinger db.Pinger
		accounts    middleware.AccountChecker
	)
	if redisClient != nil {
		limiter = redisClient
		redisPinger = redisClient
	}
	if usersService != nil {
		accounts = usersService
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(authService, logg))
			r.Post("/logout", controllers.AuthLogout(authService, logg))
			r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, accounts, logg))

			r.Get("/dashboard", controllers.DashboardSummary(dashboardService, logg))

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", controllers.InventoryList(inventoryService, logg))
				r.Post("/", controllers.InventoryCreate(inventoryService, logg))
				r.Get("/{itemId}", controllers.InventoryGet(inventoryService, logg))
				r.Put("/{itemId}", controllers.InventoryUpdate(inventoryService, logg))
				r.Delete("/{itemId}", controllers.InventoryDelete(inventoryService, logg))
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", controllers.SalesList(salesService, logg))
				r.Post("/", controllers.SalesRecord(salesService, logg))
				r.Get("/options", controllers.SaleOptions(inventoryService, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.UsersList(usersService, logg))
				r.Post("/", controllers.UsersCreate(usersService, logg))
				r.Delete("/{userId}", controllers.UsersDelete(usersService, logg))
			})
		})
	})

	return r
}
