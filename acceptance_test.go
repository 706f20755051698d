package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DashboardAcceptanceTestSuite drives the running server over real HTTP the way
// the browser front end does: one session at a time, customer first, then admin
type DashboardAcceptanceTestSuite struct {
	suite.Suite
	app    *testServer
	server *httptest.Server
}

func (suite *DashboardAcceptanceTestSuite) SetupTest() {
	suite.app = setupTestServer(suite.T())
	suite.server = httptest.NewServer(suite.app.router)
}

func (suite *DashboardAcceptanceTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *DashboardAcceptanceTestSuite) call(method, path string, body interface{}) (int, map[string]interface{}) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		suite.Require().NoError(err)
	}

	req, err := http.NewRequest(method, suite.server.URL+path, bytes.NewReader(payload))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var response map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	return resp.StatusCode, response
}

func (suite *DashboardAcceptanceTestSuite) login(email string) {
	status, response := suite.call(http.MethodPost, "/api/session/login", map[string]string{
		"email":    email,
		"password": "password",
	})
	suite.Require().Equal(http.StatusOK, status, "login failed: %v", response)
}

func (suite *DashboardAcceptanceTestSuite) catalog() []interface{} {
	status, response := suite.call(http.MethodGet, "/api/catalog", nil)
	suite.Require().Equal(http.StatusOK, status)
	return response["data"].(map[string]interface{})["products"].([]interface{})
}

// TestCustomerOrdersAndAdminFulfils walks an order from placement to delivery
func (suite *DashboardAcceptanceTestSuite) TestCustomerOrdersAndAdminFulfils() {
	suite.login("asha@example.com")

	products := suite.catalog()
	suite.Require().Len(products, 2)
	var oilID string
	for _, p := range products {
		product := p.(map[string]interface{})
		if product["name"] == "Mustard Oil" {
			oilID = product["id"].(string)
		}
	}
	suite.Require().NotEmpty(oilID)

	status, response := suite.call(http.MethodPost, "/api/orders", map[string]interface{}{"productId": oilID, "quantity": 4})
	suite.Require().Equal(http.StatusCreated, status, response)
	order := response["data"].(map[string]interface{})
	suite.Equal("₹380.00", order["totalDisplay"])
	orderID := order["id"].(string)

	// The oil is sold out now and leaves the catalog
	suite.Len(suite.catalog(), 1)
	suite.Equal(0, suite.app.api.StockQuantity(suite.app.oilStockID))

	status, response = suite.call(http.MethodPost, "/api/session/logout", nil)
	suite.Require().Equal(http.StatusOK, status, response)

	suite.login("admin@example.com")

	status, response = suite.call(http.MethodGet, "/api/orders", nil)
	suite.Require().Equal(http.StatusOK, status)
	orders := response["data"].(map[string]interface{})["orders"].([]interface{})
	suite.Require().Len(orders, 1)
	suite.Equal("Asha", orders[0].(map[string]interface{})["customerName"])

	status, _ = suite.call(http.MethodPut, "/api/orders/"+orderID+"/status", map[string]string{"status": "shipped"})
	suite.Equal(http.StatusOK, status)
	status, _ = suite.call(http.MethodPut, "/api/orders/"+orderID+"/status", map[string]string{"status": "delivered"})
	suite.Equal(http.StatusOK, status)

	status, response = suite.call(http.MethodGet, "/api/dashboard", nil)
	suite.Require().Equal(http.StatusOK, status)
	summary := response["data"].(map[string]interface{})
	suite.Equal(float64(1), summary["deliveredCount"])
	suite.Equal("380.00", summary["revenue"])
	suite.Len(summary["lowStockProducts"], 1)
}

// TestOverOrderingIsStoppedLocally tests that a quantity above the catalog's
// stock never reaches the inventory API
func (suite *DashboardAcceptanceTestSuite) TestOverOrderingIsStoppedLocally() {
	suite.login("asha@example.com")

	products := suite.catalog()
	productID := products[0].(map[string]interface{})["id"].(string)
	available := products[0].(map[string]interface{})["available"].(float64)

	status, response := suite.call(http.MethodPost, "/api/orders", map[string]interface{}{
		"productId": productID,
		"quantity":  int(available) + 1,
	})

	suite.Equal(http.StatusConflict, status)
	suite.Equal("INSUFFICIENT_STOCK", response["error"].(map[string]interface{})["code"])
	suite.Equal(0, suite.app.api.CallCount(http.MethodPost, "/api/orders"))
}

// TestLogoutEndsSession tests that protected routes are closed after logout
func (suite *DashboardAcceptanceTestSuite) TestLogoutEndsSession() {
	suite.login("admin@example.com")

	status, _ := suite.call(http.MethodGet, "/api/dashboard", nil)
	suite.Equal(http.StatusOK, status)

	status, _ = suite.call(http.MethodPost, "/api/session/logout", nil)
	suite.Equal(http.StatusOK, status)

	status, response := suite.call(http.MethodGet, "/api/dashboard", nil)
	suite.Equal(http.StatusUnauthorized, status)
	suite.Equal(false, response["success"])

	status, response = suite.call(http.MethodGet, "/api/session", nil)
	suite.Equal(http.StatusOK, status)
	suite.Equal(false, response["data"].(map[string]interface{})["authenticated"])
}

func TestDashboardAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardAcceptanceTestSuite))
}
