package services

import (
	"context"
	"strconv"

	"github.com/vishnuvarthan48/biomedical-cms/internal/metrics"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

// LowStockSweepService refreshes the low-stock gauge from the database.
// It is run by the scheduler; the per-store report endpoint does not use it.
type LowStockSweepService struct {
	repo repositories.StoreItemConfigRepository
}

func NewLowStockSweepService(repo repositories.StoreItemConfigRepository) *LowStockSweepService {
	return &LowStockSweepService{repo: repo}
}

// Sweep replaces every low-stock gauge series and returns the number of
// stores with at least one item to reorder.
func (s *LowStockSweepService) Sweep(ctx context.Context) (int, error) {
	counts, err := s.repo.CountLowStock(ctx)
	if err != nil {
		return 0, err
	}

	metrics.LowStockItems.Reset()
	var total int64
	for _, c := range counts {
		metrics.LowStockItems.
			WithLabelValues(strconv.FormatInt(c.TenantID, 10), c.StoreName).
			Set(float64(c.Items))
		total += c.Items
	}

	utils.Logger.
		WithField("stores", len(counts)).
		WithField("items", total).
		Info("Low-stock sweep finished")
	return len(counts), nil
}
