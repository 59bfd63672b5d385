package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/handler"
	"github.com/careerpath/admin-backend/internal/logger"
	"github.com/careerpath/admin-backend/internal/middleware"
	"github.com/careerpath/admin-backend/internal/response"
	"github.com/careerpath/admin-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Institution *handler.InstitutionHandler
	Faculty     *handler.FacultyHandler
	Company     *handler.CompanyHandler
	User        *handler.UserHandler
	Admission   *handler.AdmissionHandler
	Report      *handler.ReportHandler
	Events      *handler.EventsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background work owned by the router, such as rate limiter sweeps.
// rdb may be nil, which disables idempotency keys.
func SetupRouter(
	ctx context.Context,
	authService *service.AuthService,
	rdb *redis.Client,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// Company names may contain an escaped '/', so match on the raw path.
	router.UseRawPath = true
	router.UnescapePathValues = true

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.HeaderIdempotencyKey}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", middleware.HeaderIdempotentReplayed}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(
		response.RequestIDMiddleware(),
		logger.Middleware(log, response.ContextKeyRequestID),
		gin.Recovery(),
		middleware.Brotli(),
	)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/admin")
	api.Use(middleware.NoStore(), middleware.Timeout(cfg.RequestTimeout))

	// ─── 1. Public (Rate Limited) ──────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(ctx, cfg.LoginRatePerMinute, time.Minute)
	api.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)

	// ─── 2. Admin (Token + Admin Role) ─────────────────────────────────
	admin := api.Group("")
	admin.Use(
		middleware.Authenticate(authService),
		middleware.RequireAdmin(authService),
	)
	idempotent := middleware.Idempotency(rdb, cfg.IdempotencyTTL)
	{
		admin.GET("/me", handlers.Auth.Me)

		// Institutions
		admin.GET("/institutions", handlers.Institution.ListInstitutions)
		admin.POST("/institutions", idempotent, handlers.Institution.CreateInstitution)
		admin.GET("/institutions/:id", handlers.Institution.GetInstitution)
		admin.PUT("/institutions/:id", handlers.Institution.UpdateInstitution)
		admin.DELETE("/institutions/:id", handlers.Institution.DeleteInstitution)

		// Faculties
		admin.GET("/institutions/:id/faculties", handlers.Faculty.ListFaculties)
		admin.POST("/institutions/:id/faculties", idempotent, handlers.Faculty.CreateFaculty)
		admin.GET("/faculties/:id", handlers.Faculty.GetFaculty)
		admin.PUT("/faculties/:id", handlers.Faculty.UpdateFaculty)
		admin.DELETE("/faculties/:id", handlers.Faculty.DeleteFaculty)
		admin.POST("/faculties/:id/reconcile", handlers.Faculty.ReconcileFaculty)

		// Courses
		admin.POST("/faculties/:id/courses", idempotent, handlers.Faculty.AddCourse)
		admin.DELETE("/faculties/:id/courses/:courseId", handlers.Faculty.DeleteCourse)

		// Companies
		admin.GET("/companies", handlers.Company.ListCompanies)
		admin.PATCH("/companies/:id/approve", handlers.Company.ApproveCompany)
		admin.PATCH("/companies/:id/suspend", handlers.Company.SuspendCompany)

		// Users
		admin.GET("/users", handlers.User.ListUsers)
		admin.GET("/users/:id", handlers.User.GetUser)
		admin.DELETE("/users/:id", handlers.User.DeleteUser)

		// Admissions
		admin.GET("/admissions", handlers.Admission.ListAdmissions)
		admin.POST("/admissions/publish", handlers.Admission.PublishAdmissions)

		// Reports
		admin.GET("/reports/summary", handlers.Report.GetSummary)

		// Activity feed
		admin.GET("/events/ws", handlers.Events.Stream)
	}

	return router
}
