package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Kind names a record collection of the inventory API
type Kind string

const (
	KindProducts  Kind = "products"
	KindStocks    Kind = "stocks"
	KindSuppliers Kind = "suppliers"
	KindOrders    Kind = "orders"
)

// Path returns the collection path, e.g. /api/orders
func (k Kind) Path() string {
	return "/api/" + string(k)
}

// Resource is a typed accessor for one record kind
type Resource[T any] struct {
	client *Client
	kind   Kind
}

// NewResource creates a typed accessor for kind
func NewResource[T any](client *Client, kind Kind) *Resource[T] {
	return &Resource[T]{client: client, kind: kind}
}

// Kind returns the record kind this resource serves
func (r *Resource[T]) Kind() Kind {
	return r.kind
}

// List fetches the whole collection
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.listPath(ctx, r.kind.Path())
}

// ListAt fetches a sub-collection such as /api/orders/my-orders
func (r *Resource[T]) ListAt(ctx context.Context, sub string) ([]T, error) {
	return r.listPath(ctx, r.kind.Path()+"/"+sub)
}

func (r *Resource[T]) listPath(ctx context.Context, path string) ([]T, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err == nil {
		if records == nil {
			records = []T{}
		}
		return records, nil
	}

	// Some endpoints wrap the list, e.g. {"stocks": [...]}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if inner, ok := wrapped[string(r.kind)]; ok {
			if err := json.Unmarshal(inner, &records); err == nil {
				if records == nil {
					records = []T{}
				}
				return records, nil
			}
		}
	}

	return nil, &MalformedResponseError{Err: fmt.Errorf("expected a list of %s", r.kind)}
}

// Create posts payload and returns the created record
func (r *Resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	var record T
	if err := r.client.Do(ctx, http.MethodPost, r.kind.Path(), payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update puts payload to the record with id and returns the updated record
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	var record T
	if err := r.client.Do(ctx, http.MethodPut, r.recordPath(id), payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Remove deletes the record with id; only the status is checked
func (r *Resource[T]) Remove(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, r.recordPath(id), nil, nil)
}

func (r *Resource[T]) recordPath(id string) string {
	return r.kind.Path() + "/" + url.PathEscape(id)
}
