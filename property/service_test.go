package property

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/KOMKZ/property-catalog/cache"
	"github.com/KOMKZ/property-catalog/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo in-memory Repository with call counters
type fakeRepo struct {
	mu        sync.Mutex
	records   map[uint64]Property
	nextID    uint64
	listCalls int
	getCalls  int
	listErr   error
	getErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[uint64]Property{}, nextID: 1}
}

func (r *fakeRepo) add(p Property) Property {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.records[p.ID] = p
	return p
}

func (r *fakeRepo) ListAllByNewest(ctx context.Context) ([]Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]Property, 0, len(r.records))
	for _, p := range r.records {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uint64) (*Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.records[id]
	if !ok {
		return nil, ErrPropertyNotFound.WithData("id", id)
	}
	return &p, nil
}

func (r *fakeRepo) Create(ctx context.Context, p *Property) error {
	*p = r.add(*p)
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, p *Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[p.ID] = *p
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

func (r *fakeRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

func newTestService(t *testing.T) (*CacheService, *fakeRepo, *cache.RedisStore, *miniredis.Miniredis, *logger.TestLogger) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := cache.NewRedisStore("test", client, "")
	repo := newFakeRepo()
	log := logger.NewTestLogger()
	svc := NewCacheService(store, repo, DefaultCacheConfig(), log)
	return svc, repo, store, mr, log
}

func seedProperties(repo *fakeRepo, n int) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.add(Property{
			Title:     "listing",
			Price:     decimal.New(int64(100000+i), 0),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
}

func TestGetAllProperties_MissThenHit(t *testing.T) {
	svc, repo, _, _, log := newTestService(t)
	ctx := context.Background()
	seedProperties(repo, 3)

	first, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 3)
	assert.Equal(t, 1, repo.listCalls)
	assert.True(t, log.HasLog("INFO", "cache MISS"))

	second, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 3)
	assert.Equal(t, 1, repo.listCalls, "hit must not touch the store")
	assert.True(t, log.HasLog("INFO", "cache HIT"))
}

func TestGetAllProperties_NewestFirst(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	seedProperties(repo, 3)

	properties, err := svc.GetAllProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, properties, 3)
	for i := 1; i < len(properties); i++ {
		assert.False(t, properties[i].CreatedAt.After(properties[i-1].CreatedAt))
	}
}

func TestGetAllProperties_EmptyCollectionIsCached(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)
	assert.NotNil(t, first)
	assert.Empty(t, first)

	_, err = svc.GetAllProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "empty result must be cached too")
}

func TestGetAllProperties_EntryTTL(t *testing.T) {
	svc, repo, _, mr, _ := newTestService(t)
	ctx := context.Background()
	seedProperties(repo, 1)

	_, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)

	assert.Equal(t, time.Hour, mr.TTL(KeyAllProperties))

	mr.FastForward(2 * time.Hour)

	_, err = svc.GetAllProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "expired entry must trigger a fresh store query")
}

func TestGetAllProperties_StoreErrorPropagates(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	repo.listErr = errors.New("store down")

	_, err := svc.GetAllProperties(context.Background())
	assert.ErrorContains(t, err, "store down")
}

func TestGetPropertyByID_MissThenHit(t *testing.T) {
	svc, repo, _, mr, _ := newTestService(t)
	ctx := context.Background()
	p := repo.add(Property{Title: "loft", Price: decimal.New(500000, 0)})

	got, err := svc.GetPropertyByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "loft", got.Title)
	assert.Equal(t, 1, repo.getCalls)
	assert.Equal(t, 30*time.Minute, mr.TTL(PropertyKey(p.ID)))

	_, err = svc.GetPropertyByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)
}

func TestGetPropertyByID_NotFoundIsNotCached(t *testing.T) {
	svc, repo, _, _, log := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetPropertyByID(ctx, 999)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.True(t, log.HasLog("WARN", "property not found"))

	// no negative caching: the second lookup queries the store again
	_, err = svc.GetPropertyByID(ctx, 999)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Equal(t, 2, repo.getCalls)
}

func TestInvalidateProperties(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	ctx := context.Background()
	seedProperties(repo, 2)

	_, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateProperties(ctx))

	_, err = svc.GetAllProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "invalidation must force a fresh store query")
}

func TestInvalidateProperties_Idempotent(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.InvalidateProperties(ctx))
	require.NoError(t, svc.InvalidateProperties(ctx))
}

func TestWarmCache(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	ctx := context.Background()
	seedProperties(repo, 5)

	count, err := svc.WarmCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.AllPropertiesCached)
	assert.Equal(t, 5, stats.AllPropertiesCount)
}

func TestWarmCache_Repeatable(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	ctx := context.Background()
	seedProperties(repo, 2)

	_, err := svc.WarmCache(ctx)
	require.NoError(t, err)
	count, err := svc.WarmCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, repo.listCalls, "second warm must be served from cache")
}

func TestStats_Empty(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.AllPropertiesCached)
	assert.Equal(t, 0, stats.AllPropertiesCount)
	assert.Equal(t, KeyAllProperties, stats.CacheKey)
	assert.Equal(t, 3600, stats.CacheTimeout)
}

func TestStats_AfterInvalidate(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	ctx := context.Background()
	seedProperties(repo, 3)

	_, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.AllPropertiesCached)

	require.NoError(t, svc.InvalidateProperties(ctx))

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, stats.AllPropertiesCached)
}

func TestPricePrecisionSurvivesCache(t *testing.T) {
	svc, repo, _, _, _ := newTestService(t)
	ctx := context.Background()

	price := decimal.RequireFromString("250000.00")
	p := repo.add(Property{Title: "villa", Price: price})

	// populate the cache, then read back through it
	_, err := svc.GetPropertyByID(ctx, p.ID)
	require.NoError(t, err)
	cached, err := svc.GetPropertyByID(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, "250000.00", cached.Price.String())

	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"price":"250000.00"`)
}

func TestCreateProperty_InvalidatesCollection(t *testing.T) {
	svc, repo, store, _, _ := newTestService(t)
	ctx := context.Background()
	seedProperties(repo, 1)

	_, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)
	require.True(t, store.Exists(ctx, KeyAllProperties))

	require.NoError(t, svc.CreateProperty(ctx, &Property{Title: "new"}))
	assert.False(t, store.Exists(ctx, KeyAllProperties))

	properties, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, properties, 2)
}

func TestUpdateProperty_InvalidatesRecordAndCollection(t *testing.T) {
	svc, repo, store, _, _ := newTestService(t)
	ctx := context.Background()
	p := repo.add(Property{Title: "old title"})

	_, err := svc.GetAllProperties(ctx)
	require.NoError(t, err)
	_, err = svc.GetPropertyByID(ctx, p.ID)
	require.NoError(t, err)

	p.Title = "new title"
	require.NoError(t, svc.UpdateProperty(ctx, &p))

	assert.False(t, store.Exists(ctx, KeyAllProperties))
	assert.False(t, store.Exists(ctx, PropertyKey(p.ID)))

	got, err := svc.GetPropertyByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
}

func TestDeleteProperty_InvalidatesRecordAndCollection(t *testing.T) {
	svc, repo, store, _, _ := newTestService(t)
	ctx := context.Background()
	p := repo.add(Property{Title: "doomed"})

	_, err := svc.GetPropertyByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProperty(ctx, p.ID))
	assert.False(t, store.Exists(ctx, PropertyKey(p.ID)))

	_, err = svc.GetPropertyByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}
