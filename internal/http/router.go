// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/http/handlers"
	"speedyrider/internal/http/middleware"
	"speedyrider/internal/modules/analytics"
	"speedyrider/internal/modules/location"
	"speedyrider/internal/modules/notification"
	"speedyrider/internal/modules/order"
	"speedyrider/internal/modules/payment"
	"speedyrider/internal/modules/rider"
)

type RouterDeps struct {
	Orders        *order.Service
	Payments      *payment.Service
	Notifications *notification.Service
	Riders        *rider.Service
	Locations     *location.Service
	Analytics     *analytics.Service
	HubID         string
}

func NewRouter(deps RouterDeps) http.Handler {
	engine := gin.New()
	engine.Use(middleware.Recovery(), middleware.Logging())

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	authHandler := handlers.NewAuthHandler(deps.Riders)
	engine.POST("/api/login", authHandler.Login)

	api := engine.Group("/api", middleware.Auth(deps.Riders))
	api.POST("/logout", authHandler.Logout)

	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.HubID)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders/:id/accept", orderHandler.Accept)
	api.POST("/orders/:id/advance", orderHandler.Advance)
	api.POST("/orders/:id/scan", orderHandler.Scan)
	api.POST("/orders/:id/verify", orderHandler.Verify)
	api.POST("/orders/:id/complete", orderHandler.Complete)
	api.GET("/orders/:id/events", orderHandler.Events)
	api.GET("/orders/:id/qr", orderHandler.QR)

	paymentHandler := handlers.NewPaymentHandler(deps.Payments)
	api.POST("/orders/:id/payment", paymentHandler.Collect)

	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)
	api.GET("/notifications", notificationHandler.List)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead)

	locationHandler := handlers.NewLocationHandler(deps.Locations)
	api.PUT("/riders/:id/location", locationHandler.Update)
	api.GET("/riders/:id/location", locationHandler.Position)

	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics)
	api.GET("/analytics/summary", analyticsHandler.Summary)
	api.GET("/analytics/briefing", analyticsHandler.Briefing)

	return engine
}
