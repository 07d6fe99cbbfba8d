package geocache

import (
	"testing"

	"fuelsmart/internal/station"
)

func rec(id, brand string) station.Record {
	return station.Record{
		ID:     id,
		Brand:  brand,
		Prices: station.PriceMap{station.RegularGas: 55.0},
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	c := New()
	batch := []station.Record{rec("a", "Shell"), rec("b", "Petron")}

	c.Merge(batch)
	first := c.Len()

	c.Merge(batch)
	if c.Len() != first {
		t.Fatalf("expected %d records after re-merge, got %d", first, c.Len())
	}
}

func TestMergeOverwritesById(t *testing.T) {
	c := New()
	c.Merge([]station.Record{rec("a", "Shell")})
	c.Merge([]station.Record{rec("a", "Caltex")})

	got, ok := c.Get("a")
	if !ok {
		t.Fatal("record missing after merge")
	}
	if got.Brand != "Caltex" {
		t.Fatalf("expected last write to win, got brand %q", got.Brand)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", c.Len())
	}
}

func TestCacheGrowsMonotonically(t *testing.T) {
	c := New()
	prev := 0
	batches := [][]station.Record{
		{rec("a", "Shell")},
		{rec("b", "Petron"), rec("a", "Shell")},
		{},
		{rec("c", "Caltex")},
	}

	for i, batch := range batches {
		c.Merge(batch)
		if c.Len() < prev {
			t.Fatalf("cache shrank on merge %d: %d -> %d", i, prev, c.Len())
		}
		prev = c.Len()
	}
}

func TestAllReturnsIndependentSnapshot(t *testing.T) {
	c := New()
	c.Merge([]station.Record{rec("a", "Shell")})

	snap := c.All()
	snap[0].Brand = "mutated"
	snap[0].Prices[station.RegularGas] = 1.0

	got, _ := c.Get("a")
	if got.Brand != "Shell" {
		t.Fatalf("snapshot mutation leaked into cache: brand %q", got.Brand)
	}
	if got.Prices[station.RegularGas] != 55.0 {
		t.Fatalf("snapshot price mutation leaked into cache: %v", got.Prices)
	}
}

func TestMergeSkipsRecordsWithoutId(t *testing.T) {
	c := New()
	c.Merge([]station.Record{{Brand: "NoID"}})
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d records", c.Len())
	}
}

func TestDisposeClears(t *testing.T) {
	c := New()
	c.Merge([]station.Record{rec("a", "Shell")})
	c.Dispose()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after dispose, got %d", c.Len())
	}
}
