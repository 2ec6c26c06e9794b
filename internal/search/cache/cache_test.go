package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zopdev/leadscout/internal/search"
)

// fakeClock advances manually.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestCacheHitWithinTTL(t *testing.T) {
	clock := newFakeClock()
	c := New(30*time.Minute, 200, clock.Now)

	want := []search.Result{{Title: "a", URL: "https://a"}}
	c.Put("k", want)

	clock.Advance(29*time.Minute + 59*time.Second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCacheMissAfterTTL(t *testing.T) {
	clock := newFakeClock()
	c := New(30*time.Minute, 200, clock.Now)

	c.Put("k", []search.Result{{URL: "https://a"}})

	clock.Advance(30*time.Minute + time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be removed on read")
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	c := New(30*time.Minute, 200, newFakeClock().Now)

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestCacheCapacityEvictsOldest(t *testing.T) {
	clock := newFakeClock()
	c := New(30*time.Minute, 200, clock.Now)

	for i := 0; i < 200; i++ {
		c.Put(fmt.Sprintf("key-%d", i), []search.Result{{URL: fmt.Sprintf("https://%d", i)}})
	}
	require.Equal(t, 200, c.Len())

	c.Put("key-200", []search.Result{{URL: "https://200"}})

	assert.Equal(t, 200, c.Len())

	_, ok := c.Get("key-0")
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Get("key-1")
	assert.True(t, ok)
	_, ok = c.Get("key-200")
	assert.True(t, ok)
}

func TestCacheUpdateKeepsInsertionPosition(t *testing.T) {
	clock := newFakeClock()
	c := New(30*time.Minute, 2, clock.Now)

	c.Put("a", []search.Result{{URL: "https://a1"}})
	c.Put("b", []search.Result{{URL: "https://b"}})

	// Updating "a" must not make it the newest entry
	c.Put("a", []search.Result{{URL: "https://a2"}})

	c.Put("c", []search.Result{{URL: "https://c"}})

	_, ok := c.Get("a")
	assert.False(t, ok, "a was oldest-inserted and should be evicted")

	got, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "https://b", got[0].URL)
}

func TestKeyIsDeterministic(t *testing.T) {
	assert.Equal(t, Key("q", 10, "past_week", 1), Key("q", 10, "past_week", 1))
	assert.NotEqual(t, Key("q", 10, "past_week", 1), Key("q", 10, "past_month", 1))
	assert.NotEqual(t, Key("q", 10, "", 1), Key("q", 8, "", 1))
	assert.NotEqual(t, Key("q", 10, "", 1), Key("q", 10, "", 2))
	assert.Equal(t, Key("q", 10, "", 0), Key("q", 10, "", 1), "page zero and page one are the same request")
}

// recordingProvider counts calls and returns canned results.
type recordingProvider struct {
	calls   int
	results []search.Result
	err     error
}

func (p *recordingProvider) Name() string {
	return "fake"
}

func (p *recordingProvider) Search(_ context.Context, _ string, _ search.Options) ([]search.Result, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}

func TestCachingProviderServesFromCache(t *testing.T) {
	clock := newFakeClock()
	inner := &recordingProvider{results: []search.Result{{URL: "https://a"}}}
	p := Wrap(inner, New(30*time.Minute, 200, clock.Now))

	first, err := p.Search(context.Background(), "q", search.Options{})
	require.NoError(t, err)

	second, err := p.Search(context.Background(), "q", search.Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second call should be a cache hit")
}

func TestCachingProviderRefetchesAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	inner := &recordingProvider{results: []search.Result{{URL: "https://a"}}}
	p := Wrap(inner, New(30*time.Minute, 200, clock.Now))

	_, err := p.Search(context.Background(), "q", search.Options{})
	require.NoError(t, err)

	clock.Advance(31 * time.Minute)

	_, err = p.Search(context.Background(), "q", search.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachingProviderDoesNotCacheErrors(t *testing.T) {
	clock := newFakeClock()
	inner := &recordingProvider{err: errors.New("backend down")}
	p := Wrap(inner, New(30*time.Minute, 200, clock.Now))

	_, err := p.Search(context.Background(), "q", search.Options{})
	require.Error(t, err)

	_, err = p.Search(context.Background(), "q", search.Options{})
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachingProviderDistinguishesOptions(t *testing.T) {
	clock := newFakeClock()
	inner := &recordingProvider{results: []search.Result{{URL: "https://a"}}}
	p := Wrap(inner, New(30*time.Minute, 200, clock.Now))

	_, err := p.Search(context.Background(), "q", search.Options{DateRange: "past_week"})
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "q", search.Options{DateRange: "past_month"})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

// pagingProvider encodes the requested page into the result URL so a cached
// cross-page answer is detectable.
type pagingProvider struct {
	calls int
}

func (p *pagingProvider) Name() string {
	return "fake"
}

func (p *pagingProvider) Search(_ context.Context, _ string, opts search.Options) ([]search.Result, error) {
	p.calls++
	return []search.Result{{URL: fmt.Sprintf("https://example.com/page-%d", opts.Page)}}, nil
}

func TestCachingProviderDistinguishesPages(t *testing.T) {
	clock := newFakeClock()
	inner := &pagingProvider{}
	p := Wrap(inner, New(30*time.Minute, 200, clock.Now))

	first, err := p.Search(context.Background(), "q", search.Options{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page-1", first[0].URL)

	second, err := p.Search(context.Background(), "q", search.Options{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page-2", second[0].URL)
	assert.Equal(t, 2, inner.calls)

	// Page one and the implicit first page share an entry
	_, err = p.Search(context.Background(), "q", search.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
