package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/handlers"
	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, parser middleware.TokenParser, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	api := engine.Group("/api/v1")

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(parser))
	orders.POST("", orderHandler.Create)
	orders.GET("", middleware.AdminRequired(), orderHandler.ListAll)
	orders.GET("/currentUserOrders", orderHandler.ListMine)
	orders.POST("/clientsSecret", orderHandler.ClientSecret)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id", orderHandler.Update)

	payments := api.Group("/payments")
	payments.POST("/webhook", paymentHandler.Webhook)

	return engine
}
