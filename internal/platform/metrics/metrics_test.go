package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCache_ExposesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCache(reg)

	m.Lookup("moscow", "hit")
	m.Lookup("moscow", "hit")
	m.Fetch("moscow", false, 20*time.Millisecond)
	m.Entries(1)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		`citygeo_event_cache_lookups_total{city="moscow",result="hit"} 2`,
		`citygeo_event_cache_fetches_total{city="moscow",status="error"} 1`,
		`citygeo_event_cache_entries 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, out)
		}
	}
}

func TestCache_NilIsNoop(t *testing.T) {
	var m *Cache
	m.Lookup("x", "hit")
	m.Fetch("x", true, time.Second)
	m.Entries(3)
}
