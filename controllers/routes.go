package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/inventory-dashboard/middleware"
	"github.com/kendall-kelly/inventory-dashboard/models"
)

// RegisterRoutes mounts the dashboard API on group
func RegisterRoutes(group *gin.RouterGroup, app *App) {
	sess := app.Session()
	requireSession := middleware.RequireSession(sess, app.Inspector(), app.log)
	adminOnly := middleware.RequireRole(sess, models.RoleAdmin)
	customerOnly := middleware.RequireRole(sess, models.RoleCustomer)

	sessionRoutes := group.Group("/session")
	{
		sessionRoutes.GET("", app.GetSession)
		sessionRoutes.POST("/login", app.Login)
		sessionRoutes.POST("/register", app.Register)
		sessionRoutes.POST("/logout", app.LogoutHandler)
	}

	authed := group.Group("", requireSession)
	{
		authed.GET("/orders", app.ListOrders)
		authed.POST("/orders/refresh", app.RefreshOrders)
		authed.POST("/orders", customerOnly, app.PlaceOrder)
		authed.PUT("/orders/:id/status", adminOnly, app.UpdateOrderStatus)
		authed.DELETE("/orders/:id", adminOnly, app.DeleteOrder)

		authed.GET("/catalog", app.GetCatalog)
		authed.POST("/catalog/refresh", app.RefreshCatalog)

		authed.POST("/products", adminOnly, app.CreateProduct)
		authed.PUT("/products/:id", adminOnly, app.UpdateProduct)
		authed.DELETE("/products/:id", adminOnly, app.DeleteProduct)

		authed.GET("/stocks", adminOnly, app.ListStocks)
		authed.POST("/stocks", adminOnly, app.CreateStock)
		authed.PUT("/stocks/:id", adminOnly, app.UpdateStock)
		authed.DELETE("/stocks/:id", adminOnly, app.DeleteStock)
		authed.GET("/stocks/:id/product-form", adminOnly, app.GetProductForm)

		authed.GET("/suppliers", adminOnly, app.ListSuppliers)
		authed.POST("/suppliers", adminOnly, app.CreateSupplier)
		authed.PUT("/suppliers/:id", adminOnly, app.UpdateSupplier)
		authed.DELETE("/suppliers/:id", adminOnly, app.DeleteSupplier)

		authed.GET("/dashboard", adminOnly, app.GetDashboard)
		authed.POST("/dashboard/export", adminOnly, app.ExportDashboard)
	}
}
