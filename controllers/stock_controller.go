package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/viewmodels"
)

// StockRequest is the body of stock create and update
type StockRequest struct {
	ProductName string `json:"productName"`
	Category    string `json:"category" binding:"required"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
	SupplierID  string `json:"supplierId" binding:"required"`
}

func (r StockRequest) toInput() models.StockInput {
	return models.StockInput{
		ProductName: r.ProductName,
		Category:    r.Category,
		Quantity:    r.Quantity,
		SupplierID:  r.SupplierID,
	}
}

func bindStock(c *gin.Context) (StockRequest, bool) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Category and supplierId are required and quantity cannot be negative")
		return req, false
	}
	return req, true
}

// CreateStock handles POST /api/stocks (admins only)
func (a *App) CreateStock(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}
	req, ok := bindStock(c)
	if !ok {
		return
	}

	stock, err := a.catalog.Stocks().Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondFailure(c, err)
		return
	}

	a.log.Info("Stock created", "stock_id", stock.ID)
	a.reloadStocks(c.Request.Context(), w.Catalog())
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    stock,
	})
}

// UpdateStock handles PUT /api/stocks/:id (admins only)
func (a *App) UpdateStock(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}
	req, ok := bindStock(c)
	if !ok {
		return
	}

	stock, err := a.catalog.Stocks().Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondFailure(c, err)
		return
	}

	a.reloadStocks(c.Request.Context(), w.Catalog())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stock,
	})
}

// DeleteStock handles DELETE /api/stocks/:id?confirm=true (admins only)
func (a *App) DeleteStock(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}
	if c.Query("confirm") != "true" {
		respondFailure(c, viewmodels.ErrConfirmationDeclined)
		return
	}

	if err := a.catalog.Stocks().Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondFailure(c, err)
		return
	}

	a.log.Info("Stock deleted", "stock_id", c.Param("id"))
	a.reloadStocks(c.Request.Context(), w.Catalog())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Stock deleted",
	})
}

// reloadStocks refreshes stock records after an accepted mutation, and the
// catalog too since its availability is read from stock quantities
func (a *App) reloadStocks(ctx context.Context, catalog *viewmodels.CatalogView) {
	if err := catalog.LoadStocks(ctx); err != nil {
		a.log.Warn("Failed to reload stocks", "error", err)
	}
	a.reloadCatalog(ctx, catalog)
}
