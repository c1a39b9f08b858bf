package app_test

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"review_analyzer/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu       sync.Mutex
	items    []domain.Review
	total    int
	counts   map[domain.Sentiment]int
	inserted []domain.Review
	listed   []domain.ListQuery
	err      error
}

func (f *fakeRepo) InsertReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Review{}, f.err
	}
	r.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, r)
	return r, nil
}

func (f *fakeRepo) ListReviews(ctx context.Context, q domain.ListQuery) ([]domain.Review, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed = append(f.listed, q)
	return f.items, f.total, f.err
}

func (f *fakeRepo) CountBySentiment(ctx context.Context) (map[domain.Sentiment]int, error) {
	return f.counts, f.err
}

// fakeCache stores JSON like the redis adapter does, so Get decodes into any dst.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, _ := json.Marshal(v)
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	var n int64
	if b, ok := c.store[key]; ok {
		n, _ = strconv.ParseInt(string(b), 10, 64)
	}
	n++
	c.store[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

type fakeSentiment struct {
	label domain.Sentiment
	score float64
	err   error
}

func (f fakeSentiment) Classify(ctx context.Context, text string) (domain.Sentiment, float64, error) {
	return f.label, f.score, f.err
}

type fakeKeyPoints struct {
	out string
	err error
}

func (f fakeKeyPoints) Generate(ctx context.Context, prompt string) (string, error) {
	return f.out, f.err
}
