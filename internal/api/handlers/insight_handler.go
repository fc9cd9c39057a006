package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/service"
)

// InsightHandler serves the derived views: alerts, recommendations,
// dashboard KPIs, trends, weather and reports.
type InsightHandler struct {
	service *service.InventoryService
}

func NewInsightHandler(service *service.InventoryService) *InsightHandler {
	return &InsightHandler{service: service}
}

func (h *InsightHandler) Recommendations(c *gin.Context) {
	buckets, err := h.service.ReorderBuckets(c.Request.Context())
	if err != nil {
		respondError(c, "failed to compute recommendations", err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (h *InsightHandler) Alerts(c *gin.Context) {
	alerts, err := h.service.Alerts(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch alerts", err)
		return
	}

	if strings.EqualFold(c.Query("unread"), "true") {
		alerts = domain.UnreadAlerts(alerts)
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *InsightHandler) MarkAlertRead(c *gin.Context) {
	alert, err := h.service.MarkAlertRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to mark alert as read", err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *InsightHandler) DashboardSummary(c *gin.Context) {
	summary, err := h.service.DashboardSummary(c.Request.Context(), strings.TrimSpace(c.Query("location_id")))
	if err != nil {
		respondError(c, "failed to fetch dashboard summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *InsightHandler) InventoryStatus(c *gin.Context) {
	counts, err := h.service.StockStatusCounts(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch inventory status", err)
		return
	}

	labels := make(map[string]string, len(counts))
	for status := range counts {
		labels[string(status)] = domain.StockStatusLabel(status)
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts, "labels": labels})
}

func (h *InsightHandler) TrendingProducts(c *gin.Context) {
	trending, err := h.service.TrendingProducts(c.Request.Context())
	if err != nil {
		respondError(c, "failed to rank trending products", err)
		return
	}
	c.JSON(http.StatusOK, trending)
}

func (h *InsightHandler) Weather(c *gin.Context) {
	locationID := strings.TrimSpace(c.Query("location_id"))
	productID := strings.TrimSpace(c.Query("product_id"))

	if productID == "" {
		c.JSON(http.StatusOK, h.service.Weather(c.Request.Context(), locationID))
		return
	}

	if locationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location_id is required with product_id"})
		return
	}
	joined, err := h.service.WeatherDemand(c.Request.Context(), locationID, productID)
	if err != nil {
		respondError(c, "failed to join weather with demand", err)
		return
	}
	c.JSON(http.StatusOK, joined)
}

func (h *InsightHandler) Locations(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Locations(c.Request.Context()))
}

func (h *InsightHandler) ExportInventoryReport(c *gin.Context) {
	res, err := h.service.ExportInventoryReport(c.Request.Context())
	if err != nil {
		respondError(c, "failed to export inventory report", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
