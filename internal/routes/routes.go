package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/careflow-api/internal/ai"
	"github.com/BruksfildServices01/careflow-api/internal/audit"
	"github.com/BruksfildServices01/careflow-api/internal/auth"
	"github.com/BruksfildServices01/careflow-api/internal/config"
	"github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/handlers"
	"github.com/BruksfildServices01/careflow-api/internal/middleware"
	"github.com/BruksfildServices01/careflow-api/internal/storage"
	ucUser "github.com/BruksfildServices01/careflow-api/internal/usecase/user"
)

// Deps are the process-scoped singletons the routes need. AuditDB, Audit
// and Limiter may be nil.
type Deps struct {
	Config *config.Config
	Logger zerolog.Logger

	Users        user.Repository
	Appointments appointment.Repository
	DB           handlers.Pinger

	Tokens  *auth.TokenIssuer
	Gateway *ai.Gateway
	Store   storage.Store

	AuditDB *gorm.DB
	Audit   *audit.Dispatcher
	Limiter *middleware.RateLimiter
}

// NewRouter builds the engine with the global middleware chain.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// USE CASES
	// ======================================================
	signupUC := ucUser.NewSignup(d.Users, d.Tokens, d.Audit)
	loginUC := ucUser.NewLogin(d.Users, d.Tokens, d.Audit, d.Config.AuthAutoProvision)
	manageUC := ucUser.NewManage(d.Users, d.Appointments, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(signupUC, loginUC, d.Tokens)
	userHandler := handlers.NewUserHandler(manageUC)
	appointmentHandler := handlers.NewAppointmentHandler(d.Appointments, d.Audit)
	aiHandler := handlers.NewAIHandler(d.Gateway, d.Store, d.Config.MaxUploadSize)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditDB)

	requireAuth := middleware.AuthMiddleware(d.Tokens, d.Users)
	rateLimit := middleware.RateLimit(d.Limiter)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// ======================================================
	// AUTH
	// ======================================================
	authGroup := api.Group("/auth", rateLimit)
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)

		authed := authGroup.Group("", requireAuth)
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/me", authHandler.Me)

		staff := authed.Group("", middleware.RequireRole(user.Staff...))
		staff.GET("/users", userHandler.List)
		staff.GET("/users/:id", userHandler.Get)

		admin := authed.Group("", middleware.RequireRole(user.RoleAdmin))
		admin.POST("/users", userHandler.Create)
		admin.PUT("/users/:id/role", userHandler.UpdateRole)
		admin.DELETE("/users/:id", userHandler.Delete)
		admin.GET("/audit-logs", auditLogsHandler.List)
	}

	// ======================================================
	// APPOINTMENTS
	// ======================================================
	appointments := api.Group("/appointments", requireAuth)
	{
		appointments.GET("", appointmentHandler.List)
		appointments.POST("/:id/comments", appointmentHandler.AddComment)

		staff := appointments.Group("", middleware.RequireRole(user.Staff...))
		staff.POST("", appointmentHandler.Create)
		staff.PUT("/:id", appointmentHandler.Update)
		staff.DELETE("/:id", appointmentHandler.Delete)
	}

	// ======================================================
	// AI
	// ======================================================
	aiGroup := api.Group("/ai", rateLimit, requireAuth)
	{
		aiGroup.POST("/nurse/analyze-report", aiHandler.AnalyzeReport)
		aiGroup.POST("/nurse/chat", aiHandler.Chat)
		aiGroup.POST("/tutor/search", aiHandler.SearchTerm)
		aiGroup.GET("/tutor/popular-terms", aiHandler.PopularTerms)
	}
}
