package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.api.AddOrder(models.Order{TotalAmount: env.product.Price, Status: models.StatusPending})
	env.api.AddOrder(models.Order{TotalAmount: env.product.Price, Status: models.StatusDelivered})
	env.login(t, "admin@example.com")

	status, response := env.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, status)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["productCount"])
	assert.Equal(t, float64(2), data["orderCount"])
	assert.Equal(t, float64(1), data["supplierCount"])
	assert.Equal(t, "241.00", data["revenue"])
	assert.Equal(t, "₹241.00", data["revenueDisplay"])
	assert.Equal(t, float64(1), data["pendingCount"])
	assert.Equal(t, float64(1), data["deliveredCount"])
	assert.Len(t, data["lowStockProducts"], 2)
	assert.Len(t, data["recentOrders"], 2)
}

func TestGetDashboardWithFailedCollection(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.login(t, "admin@example.com")
	env.api.FailNext(http.MethodGet, "/api/products", http.StatusInternalServerError, "boom")

	status, response := env.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["productCount"])
	assert.Equal(t, float64(1), data["supplierCount"])
}

func TestExportDashboard(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.login(t, "admin@example.com")

	status, response := env.do(t, http.MethodPost, "/api/dashboard/export", nil)
	require.Equal(t, http.StatusCreated, status)

	data := response["data"].(map[string]interface{})
	key := data["key"].(string)
	assert.True(t, strings.HasPrefix(key, "snapshots/"))
	assert.Contains(t, data["url"], key)

	objects := env.archive.Objects()
	require.Contains(t, objects, key)
	assert.Contains(t, string(objects[key]), `"supplierCount":1`)
}

func TestExportDashboardNotConfigured(t *testing.T) {
	env := setupTestEnv(t, func(o *Options) { o.Archive = nil })
	env.login(t, "admin@example.com")

	status, response := env.do(t, http.MethodPost, "/api/dashboard/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "EXPORT_UNAVAILABLE", errorCode(response))
}
