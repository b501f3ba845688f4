package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ken-eddy/salesApp/models"
)

func sampleSummary() *models.DashboardSummary {
	return &models.DashboardSummary{
		TotalProducts:    3,
		LowStockCount:    1,
		LowStockProducts: []models.Product{},
		TotalOrders:      2,
		TotalRevenue:     decimal.RequireFromString("42.5"),
		TopProducts:      []models.ProductSales{{Name: "tea", Quantity: 7}},
		RecentOrders:     []models.OrderRevenue{},
	}
}

func TestGetMissComputesAndStores(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSummaryCache(db, "dash", time.Minute)
	summary := sampleSummary()
	data, err := json.Marshal(summary)
	require.NoError(t, err)

	mock.ExpectGet("dash").RedisNil()
	mock.ExpectSet("dash", string(data), time.Minute).SetVal("OK")

	calls := 0
	got, err := c.Get(context.Background(), func(ctx context.Context) (*models.DashboardSummary, error) {
		calls++
		return summary, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 3, got.TotalProducts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHitSkipsCompute(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSummaryCache(db, "dash", time.Minute)
	data, err := json.Marshal(sampleSummary())
	require.NoError(t, err)

	mock.ExpectGet("dash").SetVal(string(data))

	got, err := c.Get(context.Background(), func(ctx context.Context) (*models.DashboardSummary, error) {
		t.Error("compute must not run on a cache hit")
		return sampleSummary(), nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalOrders)
	assert.True(t, got.TotalRevenue.Equal(decimal.RequireFromString("42.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetComputeErrorIsNotCached(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSummaryCache(db, "dash", time.Minute)
	mock.ExpectGet("dash").RedisNil()

	boom := errors.New("boom")
	_, err := c.Get(context.Background(), func(ctx context.Context) (*models.DashboardSummary, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWithoutRedis(t *testing.T) {
	c := NewSummaryCache(nil, "", time.Minute)
	calls := 0
	compute := func(ctx context.Context) (*models.DashboardSummary, error) {
		calls++
		return sampleSummary(), nil
	}

	_, err := c.Get(context.Background(), compute)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), compute)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Invalidate(context.Background()))
}

func TestInvalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSummaryCache(db, "dash", time.Minute)
	mock.ExpectDel("dash").SetVal(1)

	require.NoError(t, c.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSurvivesFirstCallerCancel(t *testing.T) {
	c := NewSummaryCache(nil, "", time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	compute := func(ctx context.Context) (*models.DashboardSummary, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return sampleSummary(), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Get(ctx, compute)
		firstErr <- err
	}()
	<-started

	secondErr := make(chan error, 1)
	go func() {
		_, err := c.Get(context.Background(), compute)
		secondErr <- err
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	time.Sleep(20 * time.Millisecond)
	close(release)
	assert.NoError(t, <-secondErr)
}

func TestInvalidateDuringComputeSkipsStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewSummaryCache(db, "dash", time.Minute)
	summary := sampleSummary()
	data, err := json.Marshal(summary)
	require.NoError(t, err)

	mock.ExpectGet("dash").RedisNil()
	mock.ExpectDel("dash").SetVal(1)
	// Left unmatched when the stale result is correctly dropped.
	mock.ExpectSet("dash", string(data), time.Minute).SetVal("OK")

	got, err := c.Get(context.Background(), func(ctx context.Context) (*models.DashboardSummary, error) {
		assert.NoError(t, c.Invalidate(ctx))
		return summary, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalProducts)

	assert.ErrorContains(t, mock.ExpectationsWereMet(), "set")
}
