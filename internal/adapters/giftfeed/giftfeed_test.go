package giftfeed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"barkday/internal/domain/gifts"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFeed(t *testing.T) {
	items, err := NewFileFeed("testdata/gift_feed.json").Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "7", items[2].ID)
	assert.Equal(t, []string{"any"}, items[0].Sizes)

	_, err = NewFileFeed("testdata/missing.json").Catalog(context.Background())
	assert.Error(t, err)
}

func TestHTTPFeed(t *testing.T) {
	body, err := os.ReadFile("testdata/gift_feed.json")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gift_feed.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	items, err := NewHTTPFeed(srv.URL+"/gift_feed.json", time.Second).Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = NewHTTPFeed(srv.URL+"/other.json", time.Second).Catalog(context.Background())
	assert.Error(t, err)
}

type countingSource struct {
	calls int
	items []gifts.Gift
	err   error
}

func (s *countingSource) Catalog(ctx context.Context) ([]gifts.Gift, error) {
	s.calls++
	return s.items, s.err
}

func TestRedisCache_MissThenStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	src := &countingSource{items: []gifts.Gift{{ID: "a", Title: "Ball", Sizes: []string{"any"}}}}
	ttl := 10 * time.Minute

	payload, err := json.Marshal(src.items)
	require.NoError(t, err)

	mock.ExpectGet(DefaultCacheKey).RedisNil()
	mock.ExpectSet(DefaultCacheKey, payload, ttl).SetVal("OK")

	items, err := NewRedisCache(src, db, ttl, nil).Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, src.items, items)
	assert.Equal(t, 1, src.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	src := &countingSource{}

	mock.ExpectGet(DefaultCacheKey).SetVal(`[{"id":"a","title":"Ball","sizes":["any"]}]`)

	items, err := NewRedisCache(src, db, time.Minute, nil).Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ball", items[0].Title)
	assert.Equal(t, 0, src.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_RedisDownFallsThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	src := &countingSource{items: []gifts.Gift{{ID: "a"}}}
	payload, _ := json.Marshal(src.items)

	mock.ExpectGet(DefaultCacheKey).SetErr(errors.New("connection refused"))
	mock.ExpectSet(DefaultCacheKey, payload, time.Minute).SetErr(errors.New("connection refused"))

	items, err := NewRedisCache(src, db, time.Minute, nil).Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, src.calls)
}

func TestRedisCache_SourceError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	src := &countingSource{err: errors.New("feed down")}

	mock.ExpectGet(DefaultCacheKey).RedisNil()

	_, err := NewRedisCache(src, db, time.Minute, nil).Catalog(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectDel(DefaultCacheKey).SetVal(1)

	err := NewRedisCache(&countingSource{}, db, time.Minute, nil).Invalidate(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
