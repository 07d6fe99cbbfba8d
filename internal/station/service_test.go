package station

import (
	"context"
	"errors"
	"testing"

	"fuelsmart/internal/core"
)

func seededService() (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)
	return svc, repo
}

func TestGetStationMasksUpdaterName(t *testing.T) {
	svc, repo := seededService()

	updaterID := "u1"
	repo.Seed(Record{ID: "s1", Brand: "Shell", UpdatedBy: &updaterID})
	repo.SeedUpdater(UpdaterInfo{ID: "u1", DisplayName: "Maria", ShowName: false})

	detail, err := svc.GetStation(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.UpdatedByLabel != "M****" {
		t.Fatalf("expected masked name M****, got %q", detail.UpdatedByLabel)
	}
}

func TestGetStationShowsNameWhenAllowed(t *testing.T) {
	svc, repo := seededService()

	updaterID := "u1"
	repo.Seed(Record{ID: "s1", Brand: "Shell", UpdatedBy: &updaterID})
	repo.SeedUpdater(UpdaterInfo{ID: "u1", DisplayName: "Maria", ShowName: true})

	detail, err := svc.GetStation(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.UpdatedByLabel != "Maria" {
		t.Fatalf("expected Maria, got %q", detail.UpdatedByLabel)
	}
}

func TestGetStationGone(t *testing.T) {
	svc, _ := seededService()

	_, err := svc.GetStation(context.Background(), "missing")
	if !errors.Is(err, core.ErrStationGone) {
		t.Fatalf("expected ErrStationGone, got %v", err)
	}
}

func TestSubmitPriceReportFillsUnreportedSubtypes(t *testing.T) {
	svc, repo := seededService()
	repo.Seed(Record{ID: "s1", Brand: "Shell"})

	err := svc.SubmitPriceReport(context.Background(), "s1", "u1", PriceMap{
		RegularGas: 54.50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, _, err := repo.GetWithContributor(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Prices) != len(AllSubtypes()) {
		t.Fatalf("expected full subtype set, got %d entries", len(rec.Prices))
	}
	if v, ok := rec.Prices.Resolved(RegularGas); !ok || v != 54.50 {
		t.Fatalf("reported price lost: %v %v", v, ok)
	}
	if _, ok := rec.Prices.Resolved(PremiumDiesel); ok {
		t.Fatal("unreported subtype should resolve as unknown")
	}
}

func TestSubmitPriceReportRejectsBadInput(t *testing.T) {
	svc, repo := seededService()
	repo.Seed(Record{ID: "s1", Brand: "Shell"})

	err := svc.SubmitPriceReport(context.Background(), "s1", "u1", PriceMap{
		FuelSubtype("jetfuel"): 100,
	})
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error for unknown subtype, got %v", err)
	}

	err = svc.SubmitPriceReport(context.Background(), "s1", "u1", PriceMap{
		RegularGas: -1,
	})
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}
}

func TestSeedStationValidatesCoordinates(t *testing.T) {
	svc, _ := seededService()

	_, err := svc.SeedStation(context.Background(), "Shell", "Makati", 91, 0, nil)
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSeedStationAssignsID(t *testing.T) {
	svc, _ := seededService()

	rec, err := svc.SeedStation(context.Background(), "Shell", "Makati", 14.55, 121.02, PriceMap{
		RegularGas: 54.50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated station id")
	}
}
