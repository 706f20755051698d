package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/models"
)

// SupplierRequest is the body of supplier create and update
type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

func (r SupplierRequest) toSupplier() models.Supplier {
	return models.Supplier{
		Name:    r.Name,
		Company: r.Company,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
}

// ListSuppliers handles GET /api/suppliers (admins only)
func (a *App) ListSuppliers(c *gin.Context) {
	suppliers, err := a.catalog.ListSuppliers(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    suppliers,
	})
}

// CreateSupplier handles POST /api/suppliers (admins only)
func (a *App) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Supplier name is required and email must be valid")
		return
	}

	supplier, err := a.catalog.Suppliers().Create(c.Request.Context(), req.toSupplier())
	if err != nil {
		respondFailure(c, err)
		return
	}

	a.log.Info("Supplier created", "supplier_id", supplier.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// UpdateSupplier handles PUT /api/suppliers/:id (admins only)
func (a *App) UpdateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Supplier name is required and email must be valid")
		return
	}

	supplier, err := a.catalog.Suppliers().Update(c.Request.Context(), c.Param("id"), req.toSupplier())
	if err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// DeleteSupplier handles DELETE /api/suppliers/:id (admins only)
func (a *App) DeleteSupplier(c *gin.Context) {
	if err := a.catalog.Suppliers().Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondFailure(c, err)
		return
	}

	a.log.Info("Supplier deleted", "supplier_id", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Supplier deleted",
	})
}
