package events_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"city-geo-events/internal/adapters/storage/memory"
	"city-geo-events/internal/domain/events"
)

// -------------------------
// Fake source
// -------------------------

type fakeSource struct {
	mu     sync.Mutex
	calls  map[string]int
	bycity map[string][]events.Event
	err    error

	// si gate no es nil, cada fetch espera a que se cierre
	gate    chan struct{}
	started chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{calls: map[string]int{}, bycity: map[string][]events.Event{}}
}

func (s *fakeSource) FetchCityEvents(ctx context.Context, city string, opts events.FetchOptions) ([]events.Event, error) {
	s.mu.Lock()
	s.calls[city]++
	gate, started := s.gate, s.started
	s.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.bycity[city], nil
}

func (s *fakeSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *fakeSource) count(city string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[city]
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCache(src events.Fetcher, clk *clock) *events.Cache {
	c := events.NewCache(memory.NewEntryStore(), src, events.CacheOptions{TTL: 30 * time.Minute})
	events.SetClock(c, clk.now)
	return c
}

func sampleEvents(ids ...string) []events.Event {
	out := make([]events.Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, events.Event{ID: events.EventID(id), Title: "event " + id})
	}
	return out
}

var errDown = errors.New("backend down")

// -------------------------
// Tests
// -------------------------

func TestCache_TwoCallsWithinTTL_SingleFetch(t *testing.T) {
	src := newFakeSource()
	src.bycity["moscow"] = sampleEvents("1", "2")
	clk := &clock{t: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	c := newTestCache(src, clk)

	r1, err := c.GetEvents(context.Background(), "moscow", false)
	if err != nil {
		t.Fatalf("GetEvents #1: %v", err)
	}
	if r1.FromCache {
		t.Fatalf("expected first call to come from network")
	}

	clk.advance(29 * time.Minute)
	r2, err := c.GetEvents(context.Background(), "moscow", false)
	if err != nil {
		t.Fatalf("GetEvents #2: %v", err)
	}
	if !r2.FromCache || r2.Stale {
		t.Fatalf("expected fresh cache hit, got %#v", r2)
	}
	if len(r2.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(r2.Events))
	}
	if n := src.count("moscow"); n != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", n)
	}
}

func TestCache_ExpiredEntry_Refetches(t *testing.T) {
	src := newFakeSource()
	src.bycity["spb"] = sampleEvents("1")
	clk := &clock{t: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	c := newTestCache(src, clk)

	_, _ = c.GetEvents(context.Background(), "spb", false)
	clk.advance(30 * time.Minute)
	_, _ = c.GetEvents(context.Background(), "spb", false)

	if n := src.count("spb"); n != 2 {
		t.Fatalf("expected 2 fetches after ttl, got %d", n)
	}
}

func TestCache_ForcedRefreshFailure_ServesStale(t *testing.T) {
	src := newFakeSource()
	src.bycity["kazan"] = sampleEvents("1", "2", "3")
	clk := &clock{t: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	c := newTestCache(src, clk)

	if _, err := c.GetEvents(context.Background(), "kazan", false); err != nil {
		t.Fatalf("GetEvents: %v", err)
	}

	src.setErr(errDown)
	r, err := c.GetEvents(context.Background(), "kazan", true)
	if err != nil {
		t.Fatalf("expected stale result, got error %v", err)
	}
	if !r.Stale {
		t.Fatalf("expected Stale=true")
	}
	if !errors.Is(r.FetchErr, errDown) {
		t.Fatalf("expected FetchErr=errDown, got %v", r.FetchErr)
	}
	if len(r.Events) != 3 {
		t.Fatalf("expected stale 3 events, got %d", len(r.Events))
	}
}

func TestCache_NoEntryAndFetchFails_ReturnsError(t *testing.T) {
	src := newFakeSource()
	src.setErr(errDown)
	clk := &clock{t: time.Now()}
	c := newTestCache(src, clk)

	_, err := c.GetEvents(context.Background(), "omsk", false)
	if !errors.Is(err, errDown) {
		t.Fatalf("expected errDown, got %v", err)
	}
}

func TestCache_EmptyCity_InvalidInput(t *testing.T) {
	c := newTestCache(newFakeSource(), &clock{t: time.Now()})
	if _, err := c.GetEvents(context.Background(), "  ", false); !errors.Is(err, events.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCache_Invalidate_ForcesNetwork(t *testing.T) {
	src := newFakeSource()
	src.bycity["moscow"] = sampleEvents("1")
	src.bycity["spb"] = sampleEvents("2")
	clk := &clock{t: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	c := newTestCache(src, clk)
	ctx := context.Background()

	_, _ = c.GetEvents(ctx, "moscow", false)
	_, _ = c.GetEvents(ctx, "spb", false)

	if err := c.Invalidate(ctx, "moscow"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	_, _ = c.GetEvents(ctx, "moscow", false)
	_, _ = c.GetEvents(ctx, "spb", false)

	if n := src.count("moscow"); n != 2 {
		t.Fatalf("expected moscow refetch, got %d fetches", n)
	}
	if n := src.count("spb"); n != 1 {
		t.Fatalf("expected spb to stay cached, got %d fetches", n)
	}

	if err := c.Invalidate(ctx, ""); err != nil {
		t.Fatalf("Invalidate all: %v", err)
	}
	cities, _ := c.ListCachedCities(ctx)
	if len(cities) != 0 {
		t.Fatalf("expected empty cache, got %v", cities)
	}
}

func TestCache_ConcurrentCallers_CoalesceOntoOneFetch(t *testing.T) {
	src := newFakeSource()
	src.bycity["moscow"] = sampleEvents("1")
	src.gate = make(chan struct{})
	src.started = make(chan struct{}, 16)
	c := newTestCache(src, &clock{t: time.Now()})

	const callers = 8
	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetEvents(context.Background(), "moscow", true); err == nil {
				ok.Add(1)
			}
		}()
	}

	<-src.started
	// dar tiempo a que el resto se sume a la fetch en vuelo
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	if ok.Load() != callers {
		t.Fatalf("expected %d successful callers, got %d", callers, ok.Load())
	}
	if n := src.count("moscow"); n != 1 {
		t.Fatalf("expected 1 coalesced fetch, got %d", n)
	}
}

func TestCache_InvalidateDuringFetch_DoesNotStore(t *testing.T) {
	src := newFakeSource()
	src.bycity["moscow"] = sampleEvents("1")
	src.gate = make(chan struct{})
	src.started = make(chan struct{}, 4)
	c := newTestCache(src, &clock{t: time.Now()})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := c.GetEvents(ctx, "moscow", false)
		done <- err
	}()

	<-src.started
	if err := c.Invalidate(ctx, "moscow"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	close(src.gate)
	if err := <-done; err != nil {
		t.Fatalf("GetEvents: %v", err)
	}

	if _, err := c.StatusOf(ctx, "moscow"); !errors.Is(err, events.ErrEntryNotFound) {
		t.Fatalf("expected no entry after invalidation during fetch, got %v", err)
	}
}

func TestCache_InvalidateAll_DetachesFetchOfUncachedCity(t *testing.T) {
	src := newFakeSource()
	src.bycity["kazan"] = sampleEvents("1")
	src.gate = make(chan struct{})
	src.started = make(chan struct{}, 4)
	c := newTestCache(src, &clock{t: time.Now()})
	ctx := context.Background()

	done := make(chan error, 2)
	go func() {
		_, err := c.GetEvents(ctx, "kazan", false)
		done <- err
	}()
	<-src.started

	stats, _ := c.Stats(ctx)
	if len(stats.InFlight) != 1 || stats.InFlight[0] != "kazan" {
		t.Fatalf("expected kazan in flight, got %v", stats.InFlight)
	}

	// kazan nunca llegó al store; igual tiene que soltarse de la fetch vieja
	if err := c.Invalidate(ctx, ""); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	go func() {
		_, err := c.GetEvents(ctx, "kazan", false)
		done <- err
	}()

	select {
	case <-src.started:
	case <-time.After(time.Second):
		t.Fatalf("expected a new fetch after clearing the cache")
	}
	close(src.gate)
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("GetEvents: %v", err)
		}
	}

	if n := src.count("kazan"); n != 2 {
		t.Fatalf("expected 2 fetches, got %d", n)
	}
	if _, err := c.StatusOf(ctx, "kazan"); err != nil {
		t.Fatalf("expected the post-invalidation fetch stored, got %v", err)
	}
	stats, _ = c.Stats(ctx)
	if len(stats.InFlight) != 0 {
		t.Fatalf("expected nothing in flight, got %v", stats.InFlight)
	}
}

func TestCache_ReturnedSliceIsACopy(t *testing.T) {
	src := newFakeSource()
	src.bycity["moscow"] = sampleEvents("1")
	c := newTestCache(src, &clock{t: time.Now()})
	ctx := context.Background()

	r, _ := c.GetEvents(ctx, "moscow", false)
	r.Events[0].Title = "mutated"

	r2, _ := c.GetEvents(ctx, "moscow", false)
	if r2.Events[0].Title != "event 1" {
		t.Fatalf("expected cached entry untouched, got %q", r2.Events[0].Title)
	}
}

func TestCache_StatusAndStats(t *testing.T) {
	src := newFakeSource()
	src.bycity["moscow"] = sampleEvents("1", "2")
	src.bycity["spb"] = sampleEvents("3")
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	clk := &clock{t: start}
	c := newTestCache(src, clk)
	ctx := context.Background()

	_, _ = c.GetEvents(ctx, "spb", false)
	_, _ = c.GetEvents(ctx, "Moscow", false)
	clk.advance(10 * time.Minute)

	st, err := c.StatusOf(ctx, "moscow")
	if err != nil {
		t.Fatalf("StatusOf: %v", err)
	}
	if st.EventCount != 2 || !st.IsValid || !st.LastUpdate.Equal(start) {
		t.Fatalf("unexpected status %#v", st)
	}
	if st.TimeToExpireMs != (20 * time.Minute).Milliseconds() {
		t.Fatalf("expected 20m to expire, got %dms", st.TimeToExpireMs)
	}

	cities, _ := c.ListCachedCities(ctx)
	if len(cities) != 2 || cities[0] != "moscow" || cities[1] != "spb" {
		t.Fatalf("expected sorted [moscow spb], got %v", cities)
	}

	clk.advance(25 * time.Minute)
	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalCities != 2 {
		t.Fatalf("expected 2 cities, got %d", stats.TotalCities)
	}
	if s := stats.Cities["spb"]; s.IsValid || s.TimeToExpireMs != 0 {
		t.Fatalf("expected expired spb with 0 ttl left, got %#v", s)
	}
	if stats.TTLMs != (30*time.Minute).Milliseconds() || stats.Fetches != 2 || len(stats.InFlight) != 0 {
		t.Fatalf("unexpected stats counters %#v", stats)
	}

	if n := src.count("moscow") + src.count("spb"); n != 2 {
		t.Fatalf("introspection must not fetch, got %d fetches", n)
	}
}
