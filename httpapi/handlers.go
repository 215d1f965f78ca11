// Package httpapi exposes the inventory over JSON HTTP using gin.
package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inventory_manager/domain"
)

// Inventory is the subset of *inventory.Inventory the handlers need.
type Inventory interface {
	CreateProduct(ctx context.Context, in domain.NewProduct) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, u domain.ProductUpdate) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Product(id string) (domain.Product, error)
	ListProducts(filter domain.ListFilter) []domain.Product

	CreateCategory(ctx context.Context, in domain.NewCategory) (domain.Category, error)
	UpdateCategory(ctx context.Context, id string, u domain.CategoryUpdate) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	Category(id string) (domain.Category, error)
	Categories() []domain.Category

	AddStock(ctx context.Context, productID string, quantity int, purchasePrice float64) (domain.StockEntry, error)
	ListStockEntries(productID string) []domain.StockEntry
	RecordSale(ctx context.Context, productID string, quantity int, sellingPrice float64) (domain.Sale, error)
	ListSales(filter domain.SaleFilter) []domain.Sale
	RecentSales(n int) []domain.Sale

	Summary() domain.Summary
}

// Handler adapts Inventory operations to gin handlers.
type Handler struct {
	inv    Inventory
	logger *zap.Logger
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(inv Inventory, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{inv: inv, logger: logger}
}

type stockRequest struct {
	ProductID     string  `json:"productId" binding:"required"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
}

type saleRequest struct {
	ProductID    string  `json:"productId" binding:"required"`
	Quantity     int     `json:"quantity"`
	SellingPrice float64 `json:"sellingPrice"`
}

// ---- Products ----

func (h *Handler) ListProducts(c *gin.Context) {
	filter := domain.ListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		SortBy:   c.Query("sort"),
		Order:    c.Query("order"),
		InStock:  c.Query("available") == "true",
	}
	c.JSON(http.StatusOK, h.inv.ListProducts(filter))
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.inv.Product(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req domain.NewProduct
	if !h.bind(c, &req) {
		return
	}
	p, err := h.inv.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req domain.ProductUpdate
	if !h.bind(c, &req) {
		return
	}
	p, err := h.inv.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.inv.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- Categories ----

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.inv.Categories())
}

func (h *Handler) GetCategory(c *gin.Context) {
	cat, err := h.inv.Category(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req domain.NewCategory
	if !h.bind(c, &req) {
		return
	}
	cat, err := h.inv.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req domain.CategoryUpdate
	if !h.bind(c, &req) {
		return
	}
	cat, err := h.inv.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.inv.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- Stock and sales ----

func (h *Handler) ListStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.inv.ListStockEntries(c.Query("productId")))
}

func (h *Handler) AddStock(c *gin.Context) {
	var req stockRequest
	if !h.bind(c, &req) {
		return
	}
	entry, err := h.inv.AddStock(c.Request.Context(), req.ProductID, req.Quantity, req.PurchasePrice)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListSales returns sales filtered by search and category, or the newest
// sales when limit is given.
func (h *Handler) ListSales(c *gin.Context) {
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		c.JSON(http.StatusOK, h.inv.RecentSales(n))
		return
	}
	c.JSON(http.StatusOK, h.inv.ListSales(domain.SaleFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}))
}

func (h *Handler) RecordSale(c *gin.Context) {
	var req saleRequest
	if !h.bind(c, &req) {
		return
	}
	sale, err := h.inv.RecordSale(c.Request.Context(), req.ProductID, req.Quantity, req.SellingPrice)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.inv.Summary())
}

func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsInvalidFieldError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsInsufficientStockError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
