package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Supplier represents a vendor that stock is sourced from
type Supplier struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// UnmarshalJSON accepts either a populated supplier object or a bare supplier id
func (s *Supplier) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*s = Supplier{ID: id}
		return nil
	}

	type plain Supplier
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Supplier(p)
	return nil
}

// Stock represents an inventory record; Quantity is the authoritative availability signal
type Stock struct {
	ID          string    `json:"_id,omitempty"`
	ProductName string    `json:"productName,omitempty"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Supplier    *Supplier `json:"supplierId,omitempty"`
}

// UnmarshalJSON accepts either a populated stock object or a bare stock id
func (s *Stock) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*s = Stock{ID: id}
		return nil
	}

	type plain Stock
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Stock(p)
	return nil
}

// Product represents a sellable item; Stock is nil when the product has no stock record
type Product struct {
	ID          string          `json:"_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       *Stock          `json:"stockId,omitempty"`
}

// AvailableQuantity returns the stock quantity backing the product, or 0 without stock
func (p Product) AvailableQuantity() int {
	if p.Stock == nil {
		return 0
	}
	return p.Stock.Quantity
}

// Orderable reports whether the product can currently be ordered
func (p Product) Orderable() bool {
	return p.AvailableQuantity() > 0
}

// ProductInput is the body of POST and PUT /api/products. The product is linked
// to its stock record by id.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StockID     string          `json:"stockId"`
}

// StockInput is the body of POST and PUT /api/stocks
type StockInput struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	SupplierID  string `json:"supplierId"`
}
