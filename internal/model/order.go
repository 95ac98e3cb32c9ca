package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPendingPayment OrderStatus = "pending_payment"
	StatusPaid           OrderStatus = "paid"
	StatusValidated      OrderStatus = "validated"
	StatusCancelled      OrderStatus = "cancelled"
)

// validTransitions maps each status to the statuses it may move to.
// Cancellation is allowed from any non-terminal state.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusPendingPayment, StatusPaid, StatusValidated, StatusCancelled},
	StatusPendingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusValidated, StatusCancelled},
	StatusValidated:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether an order may move from its current status to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CartItem groups photos under one print format (product SKU).
type CartItem struct {
	SKU      string  `json:"sku"`
	Photos   []Photo `json:"photos"`
	Subtotal int     `json:"subtotal"` // cents, computed from the format's pricing rule
}

// Order is the aggregate root for one checkout. Items are stored
// JSON-encoded in the database; FilesCopied guards hot-folder dispatch
// idempotency.
type Order struct {
	ID          string      `json:"id"`
	ClientName  string      `json:"clientName"`
	ClientEmail string      `json:"clientEmail,omitempty"`
	Items       []CartItem  `json:"items"`
	Status      OrderStatus `json:"status"`
	FilesCopied bool        `json:"filesCopied"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PhotoCount returns the total number of photos across all items.
func (o Order) PhotoCount() int {
	n := 0
	for _, item := range o.Items {
		n += len(item.Photos)
	}
	return n
}

// Validate checks order fields and every photo's edit parameters.
func (o Order) Validate() error {
	if o.ClientName == "" {
		return fmt.Errorf("order client name is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order has no items")
	}
	for i, item := range o.Items {
		if item.SKU == "" {
			return fmt.Errorf("item %d: sku is required", i)
		}
		if len(item.Photos) == 0 {
			return fmt.Errorf("item %d (%s): no photos", i, item.SKU)
		}
		for _, photo := range item.Photos {
			if photo.EditParams == nil {
				continue
			}
			if err := photo.EditParams.Validate(); err != nil {
				return fmt.Errorf("item %d (%s) photo %s: %w", i, item.SKU, photo.ID, err)
			}
		}
	}
	return nil
}

// MarshalItems serializes the cart items for storage.
func MarshalItems(items []CartItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshaling order items: %w", err)
	}
	return string(data), nil
}

// UnmarshalItems deserializes cart items from storage.
func UnmarshalItems(data string) ([]CartItem, error) {
	var items []CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshaling order items: %w", err)
	}
	return items, nil
}
