package domain

import "time"

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Quantity     int32     `json:"quantity"`
	CostPrice    float64   `json:"cost_price"`
	SellingPrice float64   `json:"selling_price"`
	CreatedAt    time.Time `json:"created_at"`
}
