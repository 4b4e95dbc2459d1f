package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/repository/cache"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

const datasetCSV = `osm_id,status,opening_hours,infos
osm:node:123,ouvert,Mo-Fr 09:00-12:00,Drive uniquement
osm:node:456,ferme,,
,ignored,,
`

func TestImportDataset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(datasetCSV))
	}))
	defer server.Close()

	store := newMemoryCache()
	dataset := cache.NewCovidDataset(store, time.Hour)
	w := New(nil, store, dataset, config.WorkerConfig{
		DatasetURL:     server.URL,
		DatasetTimeout: 5 * time.Second,
	}, time.Hour, zap.NewNop())

	count, err := w.importDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	record, err := dataset.GetRecord(context.Background(), "osm:node:123")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "ouvert", record.Status)
	assert.Equal(t, "Mo-Fr 09:00-12:00", record.OpeningHours)
	assert.Equal(t, "Drive uniquement", record.Note)
}

func TestImportDatasetMissingColumns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("foo,bar\n1,2\n"))
	}))
	defer server.Close()

	w := New(nil, newMemoryCache(), cache.NewCovidDataset(newMemoryCache(), time.Hour),
		config.WorkerConfig{DatasetURL: server.URL, DatasetTimeout: 5 * time.Second},
		time.Hour, zap.NewNop())

	_, err := w.importDataset(context.Background())
	assert.Error(t, err)
}

func TestRefreshIfStaleSkipsFreshDataset(t *testing.T) {
	store := newMemoryCache()
	require.NoError(t, store.Set(context.Background(), freshnessMarker, []byte("1"), time.Hour))

	// No dataset URL configured: the import would fail if attempted.
	w := New(nil, store, cache.NewCovidDataset(store, time.Hour),
		config.WorkerConfig{}, time.Hour, zap.NewNop())

	assert.NoError(t, w.refreshIfStale(context.Background()))
}
