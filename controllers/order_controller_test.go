package controllers

import (
	"net/http"
	"testing"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerOrderFlow(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.login(t, "asha@example.com")

	// Catalog only offers products in stock
	status, response := env.do(t, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, status)
	products := response["data"].(map[string]interface{})["products"].([]interface{})
	require.Len(t, products, 1)
	product := products[0].(map[string]interface{})
	assert.Equal(t, env.product.ID, product["id"])
	assert.Equal(t, "₹120.50", product["priceDisplay"])
	assert.Equal(t, float64(3), product["available"])

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:           "place order",
			body:           map[string]interface{}{"productId": env.product.ID, "quantity": 2},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "241.00", data["totalAmount"])
				assert.Equal(t, "₹241.00", data["totalDisplay"])
				assert.Equal(t, "Asha", data["customerName"])
				assert.Equal(t, "pending", data["status"])
				assert.Len(t, data["shortId"], 6)
			},
		},
		{
			name:           "more than remaining stock",
			body:           map[string]interface{}{"productId": env.product.ID, "quantity": 2},
			expectedStatus: http.StatusConflict,
			expectedError:  "INSUFFICIENT_STOCK",
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				errObj := response["error"].(map[string]interface{})
				assert.Equal(t, "Only 1 items available in stock.", errObj["message"])
			},
		},
		{
			name:           "unknown product",
			body:           map[string]interface{}{"productId": "missing", "quantity": 1},
			expectedStatus: http.StatusNotFound,
			expectedError:  "UNKNOWN_PRODUCT",
		},
		{
			name:           "zero quantity",
			body:           map[string]interface{}{"productId": env.product.ID, "quantity": 0},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_QUANTITY",
		},
		{
			name:           "missing product id",
			body:           map[string]interface{}{"quantity": 1},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, response := env.do(t, http.MethodPost, "/api/orders", tt.body)

			assert.Equal(t, tt.expectedStatus, status)
			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				assert.Equal(t, tt.expectedError, errorCode(response))
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}

	// Only the first placement reached the upstream API
	assert.Equal(t, 1, env.api.CallCount(http.MethodPost, "/api/orders"))

	status, response = env.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "customer", data["role"])
	assert.Equal(t, false, data["loading"])
	assert.Nil(t, data["lastError"])
	assert.Len(t, data["orders"], 1)
}

func TestPlaceOrderRejectedUpstream(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.login(t, "asha@example.com")
	env.api.SetStockQuantity(env.stock.ID, 1)

	status, response := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"productId": env.product.ID,
		"quantity":  2,
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "REQUEST_FAILED", errorCode(response))
	assert.Equal(t, "Insufficient stock for Basmati Rice", response["error"].(map[string]interface{})["message"])
}

func TestCustomerCannotManageOrders(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.login(t, "asha@example.com")

	status, response := env.do(t, http.MethodPut, "/api/orders/abc/status", map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(response))

	status, _ = env.do(t, http.MethodDelete, "/api/orders/abc?confirm=true", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminCannotPlaceOrders(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.login(t, "admin@example.com")

	status, response := env.do(t, http.MethodPost, "/api/orders", map[string]interface{}{"productId": env.product.ID, "quantity": 1})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(response))
}

func TestAdminOrderManagement(t *testing.T) {
	env := setupTestEnv(t, nil)
	order := env.api.AddOrder(models.Order{
		Customer: &models.CustomerRef{ID: "cust-1", Name: "Asha", Email: "asha@example.com"},
		Items:    []models.OrderItem{{ProductID: env.product.ID, ProductName: "Basmati Rice", Quantity: 1, UnitPrice: env.product.Price}},
	})
	env.login(t, "admin@example.com")

	status, response := env.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, status)
	orders := response["data"].(map[string]interface{})["orders"].([]interface{})
	require.Len(t, orders, 1)
	assert.Equal(t, "asha@example.com", orders[0].(map[string]interface{})["customerEmail"])

	t.Run("update status", func(t *testing.T) {
		status, response := env.do(t, http.MethodPut, "/api/orders/"+order.ID+"/status", map[string]string{"status": "delivered"})
		require.Equal(t, http.StatusOK, status)
		orders := response["data"].(map[string]interface{})["orders"].([]interface{})
		assert.Equal(t, "delivered", orders[0].(map[string]interface{})["status"])
	})

	t.Run("invalid status", func(t *testing.T) {
		status, response := env.do(t, http.MethodPut, "/api/orders/"+order.ID+"/status", map[string]string{"status": "lost"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_STATUS", errorCode(response))
	})

	t.Run("unknown order", func(t *testing.T) {
		status, response := env.do(t, http.MethodPut, "/api/orders/nope/status", map[string]string{"status": "shipped"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Order not found", response["error"].(map[string]interface{})["message"])
	})

	t.Run("delete without confirmation", func(t *testing.T) {
		status, response := env.do(t, http.MethodDelete, "/api/orders/"+order.ID, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "CONFIRMATION_REQUIRED", errorCode(response))
		assert.Equal(t, 0, env.api.CallCount(http.MethodDelete, "/api/orders/"+order.ID))
	})

	t.Run("delete with confirmation", func(t *testing.T) {
		status, response := env.do(t, http.MethodDelete, "/api/orders/"+order.ID+"?confirm=true", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, response["data"].(map[string]interface{})["orders"])
		assert.Equal(t, 1, env.api.CallCount(http.MethodDelete, "/api/orders/"+order.ID))
	})
}

func TestRefreshOrdersReportsUpstreamFailure(t *testing.T) {
	env := setupTestEnv(t, nil)
	env.login(t, "admin@example.com")
	env.api.FailNext(http.MethodGet, "/api/orders", http.StatusInternalServerError, "database offline")

	status, response := env.do(t, http.MethodPost, "/api/orders/refresh", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "database offline", response["error"].(map[string]interface{})["message"])

	status, response = env.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, status)
	lastError := response["data"].(map[string]interface{})["lastError"].(map[string]interface{})
	assert.Equal(t, "REQUEST_FAILED", lastError["code"])
}
