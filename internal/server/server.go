package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/auth"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/billing"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/config"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/email"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/gym"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/journal"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/plan"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service

	limiter *RateLimiter
}

func New(database *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
	)

	s := &Server{
		router:  router,
		db:      database,
		config:  cfg,
		email:   emailService,
		limiter: NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, bucketTTL),
	}

	gymRepo := gym.NewRepository(database)
	userRepo := user.NewRepository(database)
	planRepo := plan.NewRepository(database)
	memberRepo := member.NewRepository(database)
	journalRepo := journal.NewRepository(database)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret, cfg.JWTRefresh))
	gymHandler := gym.NewHandler(gym.NewService(gymRepo))
	planHandler := plan.NewHandler(plan.NewService(planRepo))
	memberHandler := member.NewHandler(member.NewService(memberRepo))
	journalHandler := journal.NewHandler(journal.NewService(journalRepo))
	var notifier billing.Notifier
	if emailService != nil {
		notifier = emailService
	}
	billingHandler := billing.NewHandler(billing.NewService(
		db.NewTxManager(database),
		planRepo,
		memberRepo,
		journalRepo,
		notifier,
	))

	open := router.Group("/", s.limiter.Middleware(ClientKey))
	open.GET("/health", s.Health)
	open.GET("/metrics", Metrics())
	SetupSwagger(open)

	public := open.Group("/auth")
	{
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(cfg.JWTSecret), s.limiter.Middleware(TenantKey))
	{
		protected.GET("/me", userHandler.Me)
		protected.GET("/gym", gymHandler.Current)

		protected.GET("/plans", planHandler.List)
		protected.GET("/plans/:id", planHandler.Get)

		protected.POST("/signup", billingHandler.Signup)
		protected.POST("/renew", billingHandler.Renew)
		protected.POST("/pay-due", billingHandler.PayDue)
		protected.POST("/transfer", billingHandler.Transfer)
		protected.POST("/complimentary-days", billingHandler.AddComplimentaryDays)

		protected.GET("/members", memberHandler.List)
		protected.GET("/members/:number", memberHandler.Get)
		protected.PUT("/members/:number", billingHandler.UpdateMember)

		protected.GET("/renewals", journalHandler.List)
		protected.GET("/renewals/:number", journalHandler.ListByMember)
	}

	admin := protected.Group("")
	admin.Use(auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/plans", planHandler.Create)
		admin.PUT("/plans/:id", planHandler.Update)
		admin.DELETE("/plans/:id", planHandler.Delete)

		admin.DELETE("/members/:number", memberHandler.Delete)

		admin.PUT("/renewals/:id", journalHandler.Update)
		admin.DELETE("/renewals/:id", journalHandler.Delete)

		admin.POST("/admin/staff", userHandler.CreateStaff)
		admin.POST("/admin/test-email", TestEmail(emailService))
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
