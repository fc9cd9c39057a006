package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/domain"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/service"
)

type ProductHandler struct {
	service *service.InventoryService
}

func NewProductHandler(service *service.InventoryService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) parseFilter(c *gin.Context) (domain.ProductFilter, error) {
	filter := domain.ProductFilter{
		Query:      strings.TrimSpace(c.Query("q")),
		Category:   strings.TrimSpace(c.Query("category")),
		Supplier:   strings.TrimSpace(c.Query("supplier")),
		LocationID: strings.TrimSpace(c.Query("location_id")),
	}

	parseDecimal := func(param string) (*decimal.Decimal, error) {
		value := strings.TrimSpace(c.Query(param))
		if value == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, domain.NewValidationError(param, "must be a number")
		}
		return &d, nil
	}

	var err error
	if filter.MinPrice, err = parseDecimal("min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parseDecimal("max_price"); err != nil {
		return filter, err
	}

	if raw := strings.TrimSpace(c.Query("stock_status")); raw != "" && raw != "all" {
		status, ok := domain.ParseStockStatus(raw)
		if !ok {
			return filter, domain.NewValidationError("stock_status", "must be low, optimal or overstock")
		}
		filter.StockStatus = status
	}

	if sortField := strings.TrimSpace(c.Query("sort_field")); sortField != "" {
		filter.SortField = strings.ToLower(sortField)
	}

	sortDir := strings.ToLower(strings.TrimSpace(c.Query("sort_direction")))
	if sortDir != "desc" {
		sortDir = "asc"
	}
	filter.SortDir = sortDir

	return filter, nil
}

func (h *ProductHandler) List(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		respondError(c, "invalid filter", err)
		return
	}

	products, err := h.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "failed to fetch products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": products,
		"total": len(products),
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload", "details": err.Error()})
		return
	}

	created, err := h.service.CreateProduct(c.Request.Context(), p)
	if err != nil {
		respondError(c, "failed to create product", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload", "details": err.Error()})
		return
	}
	p.ID = c.Param("id")

	updated, err := h.service.UpdateProduct(c.Request.Context(), p)
	if err != nil {
		respondError(c, "failed to update product", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) Sales(c *gin.Context) {
	sales, err := h.service.ProductSales(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch sales history", err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *ProductHandler) Forecast(c *gin.Context) {
	bands, err := h.service.ProductForecast(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch forecast", err)
		return
	}
	c.JSON(http.StatusOK, bands)
}

func (h *ProductHandler) Sentiment(c *gin.Context) {
	records, err := h.service.ProductSentiment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch sentiment", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ProductHandler) Recommendation(c *gin.Context) {
	rec, err := h.service.Recommendation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to compute recommendation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendation":   rec,
		"lead_time_demand": rec.Reasoning.LeadTimeDemand(),
	})
}
