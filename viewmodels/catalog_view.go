package viewmodels

import (
	"context"
	"log/slog"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// CatalogSource lists the catalog collections. services.CatalogClient implements it.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListStocks(ctx context.Context) ([]models.Stock, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
}

// ProductForm is what selecting a stock record fills in on the product form
type ProductForm struct {
	StockID      string `json:"stockId"`
	ProductName  string `json:"productName,omitempty"`
	Category     string `json:"category"`
	Quantity     int    `json:"quantity"`
	SupplierName string `json:"supplierName"`
	Company      string `json:"company"`
	Contact      string `json:"contact"`
}

// CatalogView holds the most recently loaded products and stock records
type CatalogView struct {
	source   CatalogSource
	log      *slog.Logger
	products snapshot[models.Product]
	stocks   snapshot[models.Stock]
}

// NewCatalogView creates an empty catalog view on source
func NewCatalogView(source CatalogSource, log *slog.Logger) *CatalogView {
	return &CatalogView{
		source: source,
		log:    log.With("view", "catalog"),
	}
}

// LoadCatalog fetches the products and replaces the loaded set
func (v *CatalogView) LoadCatalog(ctx context.Context) error {
	seq := v.products.begin()
	products, err := v.source.ListProducts(ctx)
	v.products.finish(seq, products, err)
	if err != nil {
		v.log.Warn("Failed to load products", "error", err)
	}
	return err
}

// Products returns every loaded product, including out-of-stock ones
func (v *CatalogView) Products() []models.Product {
	return v.products.get()
}

// Available returns the products that can be ordered (stock quantity > 0)
func (v *CatalogView) Available() []models.Product {
	all := v.products.get()
	available := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Orderable() {
			available = append(available, p)
		}
	}
	return available
}

// AvailableQuantity looks productID up in the latest loaded catalog.
// ok is false when the product is not loaded.
func (v *CatalogView) AvailableQuantity(productID string) (quantity int, ok bool) {
	p, ok := v.products.find(func(p models.Product) bool { return p.ID == productID })
	if !ok {
		return 0, false
	}
	return p.AvailableQuantity(), true
}

// LoadStocks fetches the stock records used by the product form
func (v *CatalogView) LoadStocks(ctx context.Context) error {
	seq := v.stocks.begin()
	stocks, err := v.source.ListStocks(ctx)
	v.stocks.finish(seq, stocks, err)
	if err != nil {
		v.log.Warn("Failed to load stocks", "error", err)
	}
	return err
}

// Stocks returns the loaded stock records
func (v *CatalogView) Stocks() []models.Stock {
	return v.stocks.get()
}

// ProductFormFill returns the fields a product form takes from stockID
func (v *CatalogView) ProductFormFill(stockID string) (ProductForm, error) {
	s, ok := v.stocks.find(func(s models.Stock) bool { return s.ID == stockID })
	if !ok {
		return ProductForm{}, &UnknownStockError{StockID: stockID}
	}

	form := ProductForm{
		StockID:     s.ID,
		ProductName: s.ProductName,
		Category:    s.Category,
		Quantity:    s.Quantity,
	}
	if s.Supplier != nil {
		form.SupplierName = s.Supplier.Name
		form.Company = s.Supplier.Company
		form.Contact = s.Supplier.Phone
	}
	return form, nil
}

// Loading reports whether products or stocks are being loaded
func (v *CatalogView) Loading() bool {
	return v.products.loading() || v.stocks.loading()
}

// LastError returns the latest product load failure
func (v *CatalogView) LastError() error {
	return v.products.err()
}
