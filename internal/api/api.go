package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/api/handlers"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/api/middleware"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/service"
)

type Services struct {
	Inventory *service.InventoryService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.Inventory != nil {
		productHandler := handlers.NewProductHandler(services.Inventory)
		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", productHandler.List)
			productGroup.POST("", productHandler.Create)
			productGroup.GET("/:id", productHandler.Get)
			productGroup.PUT("/:id", productHandler.Update)
			productGroup.DELETE("/:id", productHandler.Delete)
			productGroup.GET("/:id/sales", productHandler.Sales)
			productGroup.GET("/:id/forecast", productHandler.Forecast)
			productGroup.GET("/:id/sentiment", productHandler.Sentiment)
			productGroup.GET("/:id/recommendation", productHandler.Recommendation)
		}

		insightHandler := handlers.NewInsightHandler(services.Inventory)
		apiGroup.GET("/recommendations", insightHandler.Recommendations)
		apiGroup.GET("/alerts", insightHandler.Alerts)
		apiGroup.POST("/alerts/:id/read", insightHandler.MarkAlertRead)
		apiGroup.GET("/dashboard/summary", insightHandler.DashboardSummary)
		apiGroup.GET("/inventory/status", insightHandler.InventoryStatus)
		apiGroup.GET("/sentiment/trending", insightHandler.TrendingProducts)
		apiGroup.GET("/weather", insightHandler.Weather)
		apiGroup.GET("/locations", insightHandler.Locations)
		apiGroup.POST("/reports/inventory", insightHandler.ExportInventoryReport)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
