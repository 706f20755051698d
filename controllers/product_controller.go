package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/viewmodels"
	"github.com/shopspring/decimal"
)

// ProductRequest is the body of product create and update
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StockID     string          `json:"stockId" binding:"required"`
}

func (r ProductRequest) toInput() models.ProductInput {
	return models.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		StockID:     r.StockID,
	}
}

func bindProduct(c *gin.Context) (ProductRequest, bool) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Product name and stockId are required")
		return req, false
	}
	if req.Price.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price cannot be negative")
		return req, false
	}
	return req, true
}

// CreateProduct handles POST /api/products (admins only)
func (a *App) CreateProduct(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}
	req, ok := bindProduct(c)
	if !ok {
		return
	}

	product, err := a.catalog.Products().Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondFailure(c, err)
		return
	}

	a.log.Info("Product created", "product_id", product.ID)
	a.reloadCatalog(c.Request.Context(), w.Catalog())
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    a.productResponse(*product),
	})
}

// UpdateProduct handles PUT /api/products/:id (admins only)
func (a *App) UpdateProduct(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}
	req, ok := bindProduct(c)
	if !ok {
		return
	}

	product, err := a.catalog.Products().Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondFailure(c, err)
		return
	}

	a.reloadCatalog(c.Request.Context(), w.Catalog())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.productResponse(*product),
	})
}

// DeleteProduct handles DELETE /api/products/:id?confirm=true (admins only)
func (a *App) DeleteProduct(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}
	if c.Query("confirm") != "true" {
		respondFailure(c, viewmodels.ErrConfirmationDeclined)
		return
	}

	if err := a.catalog.Products().Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondFailure(c, err)
		return
	}

	a.log.Info("Product deleted", "product_id", c.Param("id"))
	a.reloadCatalog(c.Request.Context(), w.Catalog())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted",
	})
}

// reloadCatalog refreshes products after an accepted mutation. A failed reload
// stays in the catalog's LastError; the mutation itself already succeeded.
func (a *App) reloadCatalog(ctx context.Context, catalog *viewmodels.CatalogView) {
	if err := catalog.LoadCatalog(ctx); err != nil {
		a.log.Warn("Failed to reload catalog", "error", err)
	}
}
