package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/utils"
	"github.com/kendall-kelly/inventory-dashboard/viewmodels"
)

// PlaceOrderRequest is the body of POST /api/orders
type PlaceOrderRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse is an order with its display fields resolved
type OrderResponse struct {
	ID            string             `json:"id"`
	ShortID       string             `json:"shortId"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail,omitempty"`
	Items         []models.OrderItem `json:"items"`
	TotalAmount   string             `json:"totalAmount"`
	TotalDisplay  string             `json:"totalDisplay"`
	Status        models.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func (a *App) orderResponse(o models.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return OrderResponse{
		ID:            o.ID,
		ShortID:       o.ShortID(),
		CustomerName:  o.CustomerDisplayName(),
		CustomerEmail: o.CustomerEmail(),
		Items:         items,
		TotalAmount:   o.TotalAmount.StringFixed(2),
		TotalDisplay:  utils.FormatMoney(a.currency, o.TotalAmount),
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

func (a *App) orderList(view viewmodels.OrderView) gin.H {
	orders := view.Orders()
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, a.orderResponse(o))
	}
	return gin.H{
		"role":      view.Role(),
		"orders":    out,
		"loading":   view.Loading(),
		"lastError": errorBody(view.LastError()),
	}
}

// requireWorkspace returns the mounted workspace or writes a 403
func (a *App) requireWorkspace(c *gin.Context) (*viewmodels.Workspace, bool) {
	w, ok := a.Workspace()
	if !ok {
		respondFailure(c, viewmodels.ErrRoleUnresolved)
		return nil, false
	}
	return w, true
}

// ListOrders handles GET /api/orders - the current order list of the session's role
func (a *App) ListOrders(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.orderList(w.Orders()),
	})
}

// RefreshOrders handles POST /api/orders/refresh
func (a *App) RefreshOrders(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}

	if err := w.Orders().LoadOrders(c.Request.Context()); err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.orderList(w.Orders()),
	})
}

// PlaceOrder handles POST /api/orders (customers only)
func (a *App) PlaceOrder(c *gin.Context) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return
	}
	view, ok := w.Customer()
	if !ok {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only customers can place orders")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "productId is required")
		return
	}

	order, err := view.PlaceOrder(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    a.orderResponse(*order),
	})
}

// UpdateOrderStatus handles PUT /api/orders/:id/status (admins only)
func (a *App) UpdateOrderStatus(c *gin.Context) {
	view, ok := a.requireAdminView(c)
	if !ok {
		return
	}

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status is required")
		return
	}

	if err := view.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.orderList(view),
	})
}

// DeleteOrder handles DELETE /api/orders/:id?confirm=true (admins only)
func (a *App) DeleteOrder(c *gin.Context) {
	view, ok := a.requireAdminView(c)
	if !ok {
		return
	}

	confirmed := c.Query("confirm") == "true"
	err := view.DeleteOrder(c.Request.Context(), c.Param("id"), func(ctx context.Context, orderID string) bool {
		return confirmed
	})
	if err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.orderList(view),
	})
}

func (a *App) requireAdminView(c *gin.Context) (*viewmodels.AdminOrderView, bool) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return nil, false
	}
	view, ok := w.Admin()
	if !ok {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only admins can manage orders")
		return nil, false
	}
	return view, true
}
