package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/go_inventory/internal/analysis"
)

type AnalysisService interface {
	TotalRevenue(ctx context.Context) (float64, error)
	MostPurchasedProduct(ctx context.Context) (*analysis.ProductCount, error)
	MostFrequentSignature(ctx context.Context) (*analysis.SignatureCount, error)
}

type AnalysisHandler struct {
	analysis AnalysisService
	timeout  time.Duration
}

func NewAnalysisHandler(analysis AnalysisService, timeout time.Duration) *AnalysisHandler {
	return &AnalysisHandler{
		analysis: analysis,
		timeout:  timeout,
	}
}

type AnalysisResponseDTO struct {
	TotalRevenue          float64                  `json:"total_revenue"`
	MostPurchasedProduct  *analysis.ProductCount   `json:"most_purchased_product,omitempty"`
	MostFrequentSignature *analysis.SignatureCount `json:"most_frequent_signature,omitempty"`
}

func (h *AnalysisHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	revenue, err := h.analysis.TotalRevenue(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	top, err := h.analysis.MostPurchasedProduct(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	signature, err := h.analysis.MostFrequentSignature(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AnalysisResponseDTO{
		TotalRevenue:          revenue,
		MostPurchasedProduct:  top,
		MostFrequentSignature: signature,
	})
}
