package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jusbook/handlers"
	"jusbook/middleware"
	"jusbook/utils"
)

// Options carries the settings the middleware chain needs.
type Options struct {
	AdminSecret       string
	MaxRequestsPerMin int
	Logger            *zap.Logger
}

// RegisterChatRoutes registers the conversational endpoint.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/chat", hb.ChatHandler)
}

// RegisterCatalogRoutes registers the public catalog and direct booking endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.ListServicesHandler)
		api.GET("/slots", hb.ListSlotsHandler)
		api.GET("/events", hb.ListEventsHandler)
		api.GET("/contact", hb.ContactInfoHandler)
		api.POST("/book", hb.BookSlotHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterAdminRoutes sets up endpoints for staff operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, secret string) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware(secret))
		adminGroup.GET("/bookings", hb.AdminHandler.CustomerBookingsHandler)
		adminGroup.GET("/schedule/:date", hb.AdminHandler.DailyScheduleHandler)
		adminGroup.GET("/stats", hb.AdminHandler.StatisticsHandler)
		adminGroup.DELETE("/bookings/:id", hb.AdminHandler.CancelBookingHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = utils.GetLogger()
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAdminRoutes(r, hb, opts.AdminSecret)
}
