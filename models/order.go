package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every status an admin may set, in display order.
// Any status may be chosen at any time; transition rules belong to the server.
var OrderStatuses = []OrderStatus{StatusPending, StatusShipped, StatusDelivered}

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrderItem is a line of an order. ProductName and UnitPrice are snapshots taken by the
// server when the order was placed and are never refreshed from the live product.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// Subtotal returns UnitPrice * Quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CustomerRef is the owner of an order. The server sends either a populated
// user object or just the user id.
type CustomerRef struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts a bare id string or a user object
func (c *CustomerRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*c = CustomerRef{ID: id}
		return nil
	}

	type plain CustomerRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = CustomerRef(p)
	return nil
}

// MarshalJSON writes a bare id when nothing but the id is known
func (c CustomerRef) MarshalJSON() ([]byte, error) {
	if c.Name == "" && c.Email == "" {
		return json.Marshal(c.ID)
	}
	type plain CustomerRef
	return json.Marshal(plain(c))
}

// Order represents a customer order as returned by the inventory API
type Order struct {
	ID           string          `json:"_id,omitempty"`
	Customer     *CustomerRef    `json:"userId,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	Items        []OrderItem     `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ItemsTotal sums the item subtotals. At creation time it equals TotalAmount.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CustomerDisplayName resolves the customer's name from whatever the server sent
func (o Order) CustomerDisplayName() string {
	if o.Customer != nil {
		if o.Customer.Name != "" {
			return o.Customer.Name
		}
		if o.Customer.ID != "" && o.Customer.Email == "" {
			return o.Customer.ID
		}
	}
	if o.CustomerName != "" {
		return o.CustomerName
	}
	return "N/A"
}

// CustomerEmail returns the populated customer email or "N/A"
func (o Order) CustomerEmail() string {
	if o.Customer != nil && o.Customer.Email != "" {
		return o.Customer.Email
	}
	return "N/A"
}

// ShortID returns the last six characters of the id, upper-cased
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// PlaceOrderItem is one requested line of a new order
type PlaceOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the body of POST /api/orders. The server fills in
// names, prices and the total.
type PlaceOrderRequest struct {
	Items []PlaceOrderItem `json:"items"`
}

// StatusUpdateRequest is the body of PUT /api/orders/:id/status
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
