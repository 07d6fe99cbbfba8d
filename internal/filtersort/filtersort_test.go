package filtersort

import (
	"reflect"
	"testing"

	"fuelsmart/internal/station"
)

func priced(id string, sub station.FuelSubtype, price float64) station.Record {
	return station.Record{
		ID:     id,
		Brand:  "Shell",
		Prices: station.PriceMap{sub: price},
	}
}

func ids(records []station.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestEmptyCriteriaIsIdentity(t *testing.T) {
	in := []station.Record{
		priced("a", station.RegularGas, 50),
		priced("b", station.RegularGas, 60),
	}

	out := Apply(in, Criteria{})
	if !reflect.DeepEqual(ids(out), []string{"a", "b"}) {
		t.Fatalf("expected identity, got %v", ids(out))
	}
}

func TestApplyNeverMutatesInput(t *testing.T) {
	in := []station.Record{
		priced("b", station.RegularGas, 60),
		priced("a", station.RegularGas, 50),
	}

	Apply(in, Criteria{
		Subtype: ptr(station.RegularGas),
		Order:   SortAsc,
	})

	if !reflect.DeepEqual(ids(in), []string{"b", "a"}) {
		t.Fatalf("input slice was reordered: %v", ids(in))
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	in := []station.Record{
		priced("a", station.RegularGas, 50),
		priced("b", station.RegularGas, 60),
		priced("c", station.RegularGas, 0),
	}
	crit := Criteria{
		Subtype:      ptr(station.RegularGas),
		PriceCeiling: ptr(55.0),
	}

	first := Apply(in, crit)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(Apply(in, crit), first) {
			t.Fatal("same input and criteria produced different output")
		}
	}
}

func TestPriceCeilingDropsUnknownAndAbove(t *testing.T) {
	in := []station.Record{
		priced("1", station.RegularGas, 50),
		priced("2", station.RegularGas, 60),
		priced("3", station.RegularGas, 0),
	}

	out := Apply(in, Criteria{
		Subtype:      ptr(station.RegularGas),
		PriceCeiling: ptr(55.0),
	})

	if !reflect.DeepEqual(ids(out), []string{"1"}) {
		t.Fatalf("expected only station 1, got %v", ids(out))
	}
}

func TestCeilingUsesCategoryDefaultSubtype(t *testing.T) {
	in := []station.Record{
		priced("d1", station.RegularDiesel, 52),
		priced("d2", station.RegularDiesel, 70),
		priced("g1", station.RegularGas, 40), // no diesel price at all
	}

	out := Apply(in, Criteria{
		Category:     ptr(station.CategoryDiesel),
		PriceCeiling: ptr(60.0),
	})

	if !reflect.DeepEqual(ids(out), []string{"d1"}) {
		t.Fatalf("expected d1 only, got %v", ids(out))
	}
}

func TestCeilingWithoutFuelSelectionIsNoop(t *testing.T) {
	in := []station.Record{
		priced("a", station.RegularGas, 99),
		priced("b", station.PremiumGas, 120),
	}

	out := Apply(in, Criteria{PriceCeiling: ptr(55.0)})
	if len(out) != 2 {
		t.Fatalf("ceiling without subtype should pass everything, got %v", ids(out))
	}
}

func TestBrandAllowListIsCaseInsensitive(t *testing.T) {
	in := []station.Record{
		{ID: "a", Brand: "Shell"},
		{ID: "b", Brand: "Petron"},
		{ID: "c", Brand: "Caltex"},
	}

	out := Apply(in, Criteria{Brands: []string{"shell", "CALTEX"}})
	if !reflect.DeepEqual(ids(out), []string{"a", "c"}) {
		t.Fatalf("expected a and c, got %v", ids(out))
	}
}

func TestRadiusRequiresOrigin(t *testing.T) {
	in := []station.Record{
		{ID: "far", Lat: 10.3157, Lon: 123.8854},
	}

	out := Apply(in, Criteria{RadiusKm: ptr(1.0)})
	if len(out) != 1 {
		t.Fatal("radius without origin should be a no-op")
	}
}

func TestRadiusCutoff(t *testing.T) {
	manila := station.Coordinate{Lat: 14.5995, Lon: 120.9842}
	in := []station.Record{
		{ID: "near", Lat: 14.6042, Lon: 120.9822}, // under a kilometer away
		{ID: "cebu", Lat: 10.3157, Lon: 123.8854},
	}

	out := Apply(in, Criteria{RadiusKm: ptr(5.0), Origin: &manila})
	if !reflect.DeepEqual(ids(out), []string{"near"}) {
		t.Fatalf("expected only the nearby station, got %v", ids(out))
	}
}

func TestSortAscendingWithUnpricedLast(t *testing.T) {
	in := []station.Record{
		priced("mid", station.RegularGas, 55),
		priced("none", station.RegularGas, 0),
		priced("low", station.RegularGas, 50),
		priced("high", station.RegularGas, 60),
	}

	out := Apply(in, Criteria{
		Subtype: ptr(station.RegularGas),
		Order:   SortAsc,
	})
	if !reflect.DeepEqual(ids(out), []string{"low", "mid", "high", "none"}) {
		t.Fatalf("unexpected order %v", ids(out))
	}
}

func TestSortDescendingKeepsUnpricedLast(t *testing.T) {
	in := []station.Record{
		priced("none", station.RegularGas, 0),
		priced("low", station.RegularGas, 50),
		priced("high", station.RegularGas, 60),
	}

	out := Apply(in, Criteria{
		Subtype: ptr(station.RegularGas),
		Order:   SortDesc,
	})
	if !reflect.DeepEqual(ids(out), []string{"high", "low", "none"}) {
		t.Fatalf("unexpected order %v", ids(out))
	}
}

func TestSortIsStableOnEqualPrices(t *testing.T) {
	in := []station.Record{
		priced("first", station.RegularGas, 50),
		priced("second", station.RegularGas, 50),
		priced("third", station.RegularGas, 50),
	}

	out := Apply(in, Criteria{
		Subtype: ptr(station.RegularGas),
		Order:   SortAsc,
	})
	if !reflect.DeepEqual(ids(out), []string{"first", "second", "third"}) {
		t.Fatalf("equal-price records reordered: %v", ids(out))
	}
}
