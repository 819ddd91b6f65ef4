package handler

import (
	"time"

	"payzoll-audit/internal/adapter/http/middleware"
	"payzoll-audit/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuditSvc         ports.AuditIndexService
	PointerSvc       ports.PointerService // nil = pointer endpoint not served
	TokenSvc         ports.TokenService   // nil = authentication disabled
	RateLimitStore   middleware.Limiter   // nil = rate limiting disabled
	RateLimitRules   map[string]middleware.RateLimitRule
	IdempotencyCache ports.IdempotencyCache // nil = Idempotency-Key ignored
	IdempotencyTTL   time.Duration
	HealthCheckers   []ports.HealthChecker
	Logger           zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(PrometheusMiddleware())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", MetricsHandler())

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := deps.RateLimitRules
	if rules == nil {
		rules = middleware.DefaultRateLimitRules(30, 120)
	}

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	var auth gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.TokenSvc != nil {
		auth = middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	} else {
		deps.Logger.Warn().Msg("no token service configured, API is unauthenticated")
	}

	v1 := r.Group("/api/v1", auth)

	auditHandler := NewAuditHandler(deps.AuditSvc, deps.IdempotencyCache, deps.IdempotencyTTL, deps.Logger)
	audit := v1.Group("/audit")
	{
		audit.POST("/records", rl(middleware.GroupAuditWrite), auditHandler.StoreRecord)
		audit.GET("/records", rl(middleware.GroupAuditRead), auditHandler.ListRecords)
		audit.GET("/records/:blobId", rl(middleware.GroupAuditRead), auditHandler.GetRecord)
		audit.GET("/index", rl(middleware.GroupAuditRead), auditHandler.ListIndex)
		audit.POST("/payments", rl(middleware.GroupAuditWrite), auditHandler.StorePayment)
		audit.PUT("/payments/:paymentId/object", rl(middleware.GroupAuditWrite), auditHandler.UpdatePaymentObject)
		audit.POST("/recover", rl(middleware.GroupAuditRecover), auditHandler.Recover)
	}

	if deps.PointerSvc != nil {
		pointerHandler := NewPointerHandler(deps.PointerSvc, deps.Logger)
		pointer := v1.Group("/blobs/audit-index")
		{
			pointer.GET("", rl(middleware.GroupPointerRead), pointerHandler.Get)
			pointer.POST("", rl(middleware.GroupPointerWrite), pointerHandler.Update)
			pointer.GET("/history", rl(middleware.GroupPointerRead), pointerHandler.History)
		}
	}

	return r
}
