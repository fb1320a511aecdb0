package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderItem is a line item with the price captured at checkout time.
type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int32   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is an immutable record appended by a successful checkout.
// TotalAmount is the final amount after the discount was applied.
type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          int64       `json:"user_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	DiscountPercent float64     `json:"discount_percent"`
	IdempotencyKey  string      `json:"idempotency_key,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Signature is a canonical encoding of the line-item set, used to group
// orders with identical contents. Item order does not affect the result.
func (o *Order) Signature() string {
	parts := make([]string, len(o.Items))
	for i, item := range o.Items {
		parts[i] = fmt.Sprintf("%d:%d", item.ProductID, item.Quantity)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
