package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// The legacy plan path survives one release cycle with sunset headers.
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{
			Path:        "/v1/routes/plan-legacy",
			SunsetDate:  time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC),
			Alternative: "/v1/routes/plan",
		},
	}))

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 — 15s per-request timeout (upstream providers are slow)
	v1 := app.Group("/v1")
	v1.Post("/routes/plan", timeout.NewWithContext(PlanRouteHandler(deps), 15*time.Second))
	v1.Post("/routes/plan-legacy", timeout.NewWithContext(PlanRouteHandler(deps), 15*time.Second))
	v1.Get("/routes/latest", LatestPlanHandler(deps))
	v1.Get("/locations/search", timeout.NewWithContext(SearchLocationsHandler(deps), 15*time.Second))
	v1.Get("/locations/transit", timeout.NewWithContext(TransitLocationsHandler(deps), 15*time.Second))
	v1.Get("/locations/reverse", timeout.NewWithContext(ReverseGeocodeHandler(deps), 15*time.Second))
	v1.Get("/tolls", ListTollsHandler(deps))
	v1.Get("/widgets/aqi", timeout.NewWithContext(AQIWidgetHandler(deps), 15*time.Second))
	v1.Get("/widgets/weather", timeout.NewWithContext(WeatherWidgetHandler(deps), 15*time.Second))
	v1.Post("/issues", timeout.NewWithContext(ReportIssueHandler(deps), 15*time.Second))
	v1.Get("/issues", timeout.NewWithContext(ListIssuesHandler(deps), 15*time.Second))
	v1.Get("/issues/:id", timeout.NewWithContext(GetIssueHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
