package services

import (
	"context"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// CatalogClient groups the catalog collections
type CatalogClient struct {
	products  *Resource[models.Product]
	stocks    *Resource[models.Stock]
	suppliers *Resource[models.Supplier]
}

// NewCatalogClient creates catalog accessors on client
func NewCatalogClient(client *Client) *CatalogClient {
	return &CatalogClient{
		products:  NewResource[models.Product](client, KindProducts),
		stocks:    NewResource[models.Stock](client, KindStocks),
		suppliers: NewResource[models.Supplier](client, KindSuppliers),
	}
}

// ListProducts fetches products with their stock and supplier embedded
func (c *CatalogClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	return c.products.List(ctx)
}

// ListStocks fetches stock records with their supplier embedded
func (c *CatalogClient) ListStocks(ctx context.Context) ([]models.Stock, error) {
	return c.stocks.List(ctx)
}

// ListSuppliers fetches all suppliers
func (c *CatalogClient) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return c.suppliers.List(ctx)
}

// Suppliers exposes the full supplier resource for create/update/delete
func (c *CatalogClient) Suppliers() *Resource[models.Supplier] {
	return c.suppliers
}

// Products exposes the full product resource for create/update/delete
func (c *CatalogClient) Products() *Resource[models.Product] {
	return c.products
}

// Stocks exposes the full stock resource for create/update/delete
func (c *CatalogClient) Stocks() *Resource[models.Stock] {
	return c.stocks
}
