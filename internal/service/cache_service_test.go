package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/music-school-api/internal/models"
)

func TestCacheServiceDisabled(t *testing.T) {
	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())

	svc := NewCacheService(newMemCache(), nil, 0, nil, false)
	hit, err := svc.Get(context.Background(), "k", &[]models.Class{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, svc.Set(context.Background(), "k", []models.Class{}, 0))
	assert.NoError(t, svc.Invalidate(context.Background(), "*"))
}

func TestCacheServiceRecordsHitRatio(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(newMemCache(), metrics, time.Minute, nil, true)
	ctx := context.Background()

	var dest []models.Class
	hit, err := svc.Get(ctx, rankingKey("classes", 6), &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, rankingKey("classes", 6), []models.Class{{ID: "c1"}}, 0))
	hit, err = svc.Get(ctx, rankingKey("classes", 6), &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "c1", dest[0].ID)

	assert.Equal(t, 0.5, testutil.ToFloat64(metrics.cacheHitRatio))

	require.NoError(t, svc.Invalidate(ctx, classCachePattern))
	hit, err = svc.Get(ctx, rankingKey("classes", 6), &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceGetFailure(t *testing.T) {
	store := newMemCache()
	store.getErr = errors.New("redis down")
	svc := NewCacheService(store, nil, 0, nil, true)

	_, err := svc.Get(context.Background(), "k", &[]models.Class{})
	assert.Error(t, err)
}

func TestMetricsRecordEvent(t *testing.T) {
	metrics := NewMetricsService()
	metrics.RecordEvent(EventClassApproved)
	metrics.RecordEvent(EventClassApproved)
	metrics.ObserveHTTPRequest("GET", "/topClass", 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.domainEvents.WithLabelValues(EventClassApproved)))
	count, err := testutil.GatherAndCount(metrics.Registry(), "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(`
# HELP music_school_events_total Completed enrollment workflow operations
# TYPE music_school_events_total counter
music_school_events_total{event="class_approved"} 2
`), "music_school_events_total")
	assert.NoError(t, err)

	var nilMetrics *MetricsService
	nilMetrics.RecordEvent(EventUserRegistered)
}
