package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	dashboardCacheKey = "gudang:dashboard:counts"
	dashboardCacheTTL = time.Minute
)

// GetDashboard returns the landing-screen counts, served from cache when a
// snapshot less than a minute old exists.
func (s *service) GetDashboard(ctx context.Context) (*DashboardCounts, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, dashboardCacheKey); err == nil {
			var counts DashboardCounts
			if err := json.Unmarshal([]byte(raw), &counts); err == nil {
				return &counts, nil
			}
		}
	}

	counts := &DashboardCounts{}
	var err error
	if counts.Products, err = s.repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if counts.Categories, err = s.repo.CountCategories(ctx); err != nil {
		return nil, err
	}
	if counts.Suppliers, err = s.repo.CountSuppliers(ctx); err != nil {
		return nil, err
	}
	if counts.DeliveryNotes, err = s.repo.CountDeliveryNotes(ctx); err != nil {
		return nil, err
	}
	if counts.LowStockProducts, err = s.repo.CountLowStockProducts(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(counts); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, string(raw), dashboardCacheTTL); err != nil {
				log.Warn().Err(err).Msg("Failed to cache dashboard counts")
			}
		}
	}

	return counts, nil
}
