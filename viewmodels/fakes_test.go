package viewmodels

import (
	"context"
	"sync"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/shopspring/decimal"
)

// fakeOrderRepo records calls and serves canned lists
type fakeOrderRepo struct {
	mu        sync.Mutex
	all       []models.Order
	mine      []models.Order
	calls     map[string]int
	listAllFn func(ctx context.Context) ([]models.Order, error)
	placeErr  error
	updateErr error
	deleteErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{calls: make(map[string]int)}
}

func (r *fakeOrderRepo) record(name string) {
	r.mu.Lock()
	r.calls[name]++
	r.mu.Unlock()
}

func (r *fakeOrderRepo) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	r.record("ListAll")
	if r.listAllFn != nil {
		return r.listAllFn(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Order(nil), r.all...), nil
}

func (r *fakeOrderRepo) ListMine(ctx context.Context) ([]models.Order, error) {
	r.record("ListMine")
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Order(nil), r.mine...), nil
}

func (r *fakeOrderRepo) Place(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	r.record("Place")
	if r.placeErr != nil {
		return nil, r.placeErr
	}
	return &models.Order{ID: "new-order", Status: models.StatusPending}, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	r.record("UpdateStatus")
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return &models.Order{ID: id, Status: status}, nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	r.record("Delete")
	return r.deleteErr
}

// fakeCatalog serves canned catalog collections
type fakeCatalog struct {
	products    []models.Product
	stocks      []models.Stock
	suppliers   []models.Supplier
	productsErr error
}

func (c *fakeCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return c.products, c.productsErr
}

func (c *fakeCatalog) ListStocks(ctx context.Context) ([]models.Stock, error) {
	return c.stocks, nil
}

func (c *fakeCatalog) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return c.suppliers, nil
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func orderAt(id string, minutes int, status models.OrderStatus, total string) models.Order {
	return models.Order{
		ID:          id,
		CreatedAt:   baseTime.Add(time.Duration(minutes) * time.Minute),
		Status:      status,
		TotalAmount: decimal.RequireFromString(total),
	}
}

func productWithStock(id string, quantity int) models.Product {
	return models.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: decimal.NewFromInt(10),
		Stock: &models.Stock{ID: "stock-" + id, Quantity: quantity},
	}
}
