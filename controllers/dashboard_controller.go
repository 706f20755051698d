package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/utils"
	"github.com/kendall-kelly/inventory-dashboard/viewmodels"
)

func (a *App) summaryBody(s viewmodels.Summary) gin.H {
	recent := make([]OrderResponse, 0, len(s.RecentOrders))
	for _, o := range s.RecentOrders {
		recent = append(recent, a.orderResponse(o))
	}
	lowStock := make([]ProductResponse, 0, len(s.LowStockProducts))
	for _, p := range s.LowStockProducts {
		lowStock = append(lowStock, a.productResponse(p))
	}

	return gin.H{
		"productCount":     s.ProductCount,
		"orderCount":       s.OrderCount,
		"supplierCount":    s.SupplierCount,
		"revenue":          s.Revenue.StringFixed(2),
		"revenueDisplay":   utils.FormatMoney(a.currency, s.Revenue),
		"pendingCount":     s.PendingCount,
		"shippedCount":     s.ShippedCount,
		"deliveredCount":   s.DeliveredCount,
		"lowStockProducts": lowStock,
		"recentOrders":     recent,
		"generatedAt":      s.GeneratedAt,
	}
}

func (a *App) requireDashboard(c *gin.Context) (*viewmodels.DashboardView, bool) {
	w, ok := a.requireWorkspace(c)
	if !ok {
		return nil, false
	}
	if w.Dashboard() == nil {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only admins can view the dashboard")
		return nil, false
	}
	return w.Dashboard(), true
}

// GetDashboard handles GET /api/dashboard (admins only)
func (a *App) GetDashboard(c *gin.Context) {
	dashboard, ok := a.requireDashboard(c)
	if !ok {
		return
	}

	summary, err := dashboard.Load(c.Request.Context())
	if err != nil {
		respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.summaryBody(summary),
	})
}

// ExportDashboard handles POST /api/dashboard/export (admins only) - archives the
// latest summary and returns a link to it
func (a *App) ExportDashboard(c *gin.Context) {
	if a.archive == nil {
		respondError(c, http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "Snapshot export is not configured")
		return
	}
	dashboard, ok := a.requireDashboard(c)
	if !ok {
		return
	}

	summary, ok := dashboard.Latest()
	if !ok {
		var err error
		if summary, err = dashboard.Load(c.Request.Context()); err != nil {
			respondFailure(c, err)
			return
		}
	}

	body, err := json.Marshal(a.summaryBody(summary))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to encode dashboard snapshot")
		return
	}

	key, err := a.archive.Archive(c.Request.Context(), "dashboard", body)
	if err != nil {
		a.log.Error("Failed to archive dashboard snapshot", "error", err)
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to archive dashboard snapshot")
		return
	}

	url, err := a.archive.PresignedURL(c.Request.Context(), key)
	if err != nil {
		a.log.Error("Failed to presign dashboard snapshot", "key", key, "error", err)
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to create a link to the snapshot")
		return
	}

	a.log.Info("Dashboard snapshot exported", "key", key)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"key": key,
			"url": url,
		},
	})
}
