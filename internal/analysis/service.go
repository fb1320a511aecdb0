package analysis

import "context"

// LedgerStats is the slice of the order ledger the analysis views read.
type LedgerStats interface {
	SumTotalPrice(ctx context.Context) (float64, error)
	GroupBySignature(ctx context.Context) (map[string]int, error)
	ProductTotals(ctx context.Context) (map[int64]int64, error)
}

type ProductCount struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type SignatureCount struct {
	Signature string `json:"signature"`
	Orders    int    `json:"orders"`
}

type Service struct {
	ledger LedgerStats
}

func NewService(ledger LedgerStats) *Service {
	return &Service{ledger: ledger}
}

func (s *Service) TotalRevenue(ctx context.Context) (float64, error) {
	return s.ledger.SumTotalPrice(ctx)
}

// MostPurchasedProduct aggregates quantities per product across all orders
// and returns the top one. Nil result when no orders exist. Ties break
// toward the lower product id so the result is deterministic.
func (s *Service) MostPurchasedProduct(ctx context.Context) (*ProductCount, error) {
	totals, err := s.ledger.ProductTotals(ctx)
	if err != nil {
		return nil, err
	}

	var best *ProductCount
	for id, qty := range totals {
		if best == nil || qty > best.Quantity || (qty == best.Quantity && id < best.ProductID) {
			best = &ProductCount{ProductID: id, Quantity: qty}
		}
	}
	return best, nil
}

// MostFrequentSignature counts orders with identical line-item sets and
// returns the most frequent one. Nil result when no orders exist.
func (s *Service) MostFrequentSignature(ctx context.Context) (*SignatureCount, error) {
	groups, err := s.ledger.GroupBySignature(ctx)
	if err != nil {
		return nil, err
	}

	var best *SignatureCount
	for sig, count := range groups {
		if best == nil || count > best.Orders || (count == best.Orders && sig < best.Signature) {
			best = &SignatureCount{Signature: sig, Orders: count}
		}
	}
	return best, nil
}
