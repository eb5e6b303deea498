package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BersamaBelajar/gudang-pintar/internal/cache"
)

func TestGetDashboardCachesCounts(t *testing.T) {
	repo := new(MockRepository)
	cacheMock := new(MockCache)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))
	svc.cache = cacheMock

	cacheMock.On("Get", mock.Anything, dashboardCacheKey).Return("", cache.ErrCacheMiss)
	repo.On("CountProducts", mock.Anything).Return(int64(12), nil)
	repo.On("CountCategories", mock.Anything).Return(int64(3), nil)
	repo.On("CountSuppliers", mock.Anything).Return(int64(4), nil)
	repo.On("CountDeliveryNotes", mock.Anything).Return(int64(25), nil)
	repo.On("CountLowStockProducts", mock.Anything).Return(int64(2), nil)
	cacheMock.On("Set", mock.Anything, dashboardCacheKey, mock.Anything, dashboardCacheTTL).Return(nil)

	counts, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(12), counts.Products)
	require.Equal(t, int64(2), counts.LowStockProducts)
	cacheMock.AssertExpectations(t)
}

func TestGetDashboardServesFromCache(t *testing.T) {
	repo := new(MockRepository)
	cacheMock := new(MockCache)
	svc := newTestService(t, repo, new(MockMailer), new(MockBus))
	svc.cache = cacheMock

	cacheMock.On("Get", mock.Anything, dashboardCacheKey).
		Return(`{"products":9,"categories":1,"suppliers":2,"delivery_notes":5,"low_stock_products":0}`, nil)

	counts, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(9), counts.Products)

	repo.AssertNotCalled(t, "CountProducts", mock.Anything)
}
