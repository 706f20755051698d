package viewmodels

import (
	"errors"
	"fmt"
)

var (
	// ErrConfirmationDeclined is returned when a delete was not confirmed; no request is sent
	ErrConfirmationDeclined = errors.New("deletion was not confirmed")

	// ErrRoleUnresolved is returned when the session has no usable role
	ErrRoleUnresolved = errors.New("session role is unresolved")
)

// InsufficientStockError means more items were requested than the loaded catalog shows available
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Only %d items available in stock.", e.Available)
}

// Code returns the error code reported to the presentation layer
func (e *InsufficientStockError) Code() string {
	return "INSUFFICIENT_STOCK"
}

// UnknownProductError means the product is not in the loaded catalog
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %s is not in the catalog", e.ProductID)
}

// Code returns the error code reported to the presentation layer
func (e *UnknownProductError) Code() string {
	return "UNKNOWN_PRODUCT"
}

// UnknownStockError means the stock record is not in the loaded stock list
type UnknownStockError struct {
	StockID string
}

func (e *UnknownStockError) Error() string {
	return fmt.Sprintf("stock %s is not loaded", e.StockID)
}

// Code returns the error code reported to the presentation layer
func (e *UnknownStockError) Code() string {
	return "UNKNOWN_STOCK"
}

// InvalidQuantityError means a non-positive quantity was requested
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be at least 1, got %d", e.Quantity)
}

// Code returns the error code reported to the presentation layer
func (e *InvalidQuantityError) Code() string {
	return "INVALID_QUANTITY"
}

// InvalidStatusError means the status is not one of pending, shipped, delivered
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}

// Code returns the error code reported to the presentation layer
func (e *InvalidStatusError) Code() string {
	return "INVALID_STATUS"
}
