package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"strmly.backend/internal/interfaces/http/handlers"
	"strmly.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	walletHandler   *handlers.WalletHandler
	giftHandler     *handlers.GiftHandler
	purchaseHandler *handlers.PurchaseHandler
	authMiddleware  gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Wallet routes (protected, read only)
		wallet := v1.Group("/wallet")
		wallet.Use(d.authMiddleware)
		{
			wallet.GET("", d.walletHandler.GetWallet)
			wallet.GET("/transactions", d.walletHandler.GetTransactions)
			wallet.GET("/transfers", d.walletHandler.GetTransfers)
		}

		// Gifting routes (protected)
		interactions := v1.Group("/interactions")
		interactions.Use(d.authMiddleware, middleware.IdempotencyMiddleware())
		{
			interactions.POST("/gift-video", d.giftHandler.GiftVideo)
			interactions.POST("/gift-comment", d.giftHandler.GiftComment)
		}

		// Video access and purchase routes (protected)
		videos := v1.Group("/videos")
		videos.Use(d.authMiddleware)
		{
			videos.GET("/:id/access", d.purchaseHandler.CheckVideoAccess)
			videos.POST("/:id/purchase", middleware.IdempotencyMiddleware(), d.purchaseHandler.PurchaseVideo)
		}

		series := v1.Group("/series")
		series.Use(d.authMiddleware)
		{
			series.POST("/:id/purchase", middleware.IdempotencyMiddleware(), d.purchaseHandler.PurchaseSeries)
		}

		creators := v1.Group("/creators")
		creators.Use(d.authMiddleware)
		{
			creators.POST("/:id/pass", middleware.IdempotencyMiddleware(), d.purchaseHandler.PurchaseCreatorPass)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "strmly-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
