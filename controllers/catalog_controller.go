package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/utils"
	"github.com/kendall-kelly/inventory-dashboard/viewmodels"
)

// ProductResponse is a product as offered for ordering
type ProductResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
	Category     string `json:"category,omitempty"`
	Available    int    `json:"available"`
}

func (a *App) productResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.StringFixed(2),
		PriceDisplay: utils.FormatMoney(a.currency, p.Price),
		Available:    p.AvailableQuantity(),
	}
	if p.Stock != nil {
		resp.Category = p.Stock.Category
	}
	return resp
}

func (a *App) catalogBody(catalog *viewmodels.CatalogView) gin.H {
	available := catalog.Available()
	products := make([]ProductResponse, 0, len(available))
	for _, p := range available {
		products = append(products, a.productResponse(p))
	}
	return gin.H{
		"products":  products,
		"loading":   catalog.Loading(),
		"lastError": errorBody(catalog.LastError()),
	}
}

// GetCatalog handles GET /api/catalog - products that can be ordered
func (a *App) GetCatalog(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.catalogBody(w.Catalog()),
	})
}

// RefreshCatalog handles POST /api/catalog/refresh
func (a *App) RefreshCatalog(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}

	if err := w.Catalog().LoadCatalog(c.Request.Context()); err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.catalogBody(w.Catalog()),
	})
}

// ListStocks handles GET /api/stocks (admins only)
func (a *App) ListStocks(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}

	if err := w.Catalog().LoadStocks(c.Request.Context()); err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    w.Catalog().Stocks(),
	})
}

// GetProductForm handles GET /api/stocks/:id/product-form (admins only).
// Stocks are reloaded once when the id is not in the loaded list.
func (a *App) GetProductForm(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}
	catalog := w.Catalog()
	stockID := c.Param("id")

	form, err := catalog.ProductFormFill(stockID)
	var unknown *viewmodels.UnknownStockError
	if errors.As(err, &unknown) {
		if loadErr := catalog.LoadStocks(c.Request.Context()); loadErr != nil {
			respondFailure(c, loadErr)
			return
		}
		form, err = catalog.ProductFormFill(stockID)
	}
	if err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    form,
	})
}
