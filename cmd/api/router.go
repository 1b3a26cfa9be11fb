package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupReviewRoutes(v1, c)
		setupCartRoutes(v1, c)
		setupOrderRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	limiter := middleware.NewIPRateLimiter(c.Config.Auth.RateLimitRPS, c.Config.Auth.RateLimitBurst)

	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(limiter))
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.Me)
	}
}

// ========================================
// CATEGORY ROUTES (public reads)
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	category := v1.Group("/categories")
	{
		category.GET("", c.CategoryHandler.List)
		category.GET("/:id", c.CategoryHandler.GetByID)
		category.GET("/by-slug/:slug", c.CategoryHandler.GetBySlug)
	}
}

// ========================================
// PRODUCT ROUTES (public reads)
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	product := v1.Group("/products")
	{
		product.GET("", c.ProductHandler.List)
		product.GET("/:id", c.ProductHandler.GetByID)
		product.GET("/by-slug/:slug", c.ProductHandler.GetBySlug)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/products/:id/reviews", c.ReviewHandler.ListByProduct)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authed.POST("/products/:id/reviews", c.ReviewHandler.Create)
		authed.DELETE("/reviews/:id", c.ReviewHandler.Delete)
	}
}

// ========================================
// CART ROUTES (session-backed, no login needed)
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cart := v1.Group("/cart")
	cart.Use(middleware.SessionMiddleware(c.SessionStore, c.Config.Session))
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.DELETE("/items/:product_id", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.Clear)
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	orders := v1.Group("/orders")
	{
		// guest checkout: identity is optional, the cart comes from the session
		orders.POST("",
			middleware.OptionalAuthMiddleware(c.JWTManager),
			middleware.SessionMiddleware(c.SessionStore, c.Config.Session),
			c.OrderHandler.Checkout,
		)

		mine := orders.Group("")
		mine.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			mine.GET("", c.OrderHandler.ListMine)
			mine.GET("/:id", c.OrderHandler.GetByID)
		}
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		categories := admin.Group("/categories")
		{
			categories.POST("", c.CategoryHandler.Create)
			categories.PUT("/:id", c.CategoryHandler.Update)
			categories.DELETE("/:id", c.CategoryHandler.Delete)
			categories.POST("/:id/image", c.CategoryHandler.UploadImage)
		}

		products := admin.Group("/products")
		{
			products.POST("", c.ProductHandler.Create)
			products.GET("/export", c.ProductHandler.ExportExcel)
			products.PUT("/:id", c.ProductHandler.Update)
			products.DELETE("/:id", c.ProductHandler.Delete)
			products.POST("/:id/image", c.ProductHandler.UploadImage)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", c.OrderHandler.ListAll)
			orders.PATCH("/:id/status", c.OrderHandler.UpdateStatus)
		}
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		} else if stats, err := appCtx.DB.Stats(); err == nil {
			health["database_pool"] = stats
		}

		redisStatus := "ok"
		if err := appCtx.Redis.HealthCheck(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" || redisStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
