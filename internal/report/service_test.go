package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fuelsmart/internal/catalog"
	"fuelsmart/internal/core"
	"fuelsmart/internal/geocache"
	"fuelsmart/internal/station"
)

type stubProfiles struct {
	counts map[string]int
	err    error
}

func (s *stubProfiles) IncorrectReportCount(_ context.Context, id string) (int, error) {
	return s.counts[id], s.err
}

type stubCatalog struct {
	entries map[string]catalog.BrandEntry
}

func (s *stubCatalog) LookupBrand(name string) (catalog.BrandEntry, bool) {
	entry, ok := s.entries[strings.ToLower(name)]
	return entry, ok
}

func newTestService(repo *InMemoryRepository) (*Service, *geocache.Cache) {
	profiles := &stubProfiles{counts: map[string]int{"banned": 5}}
	brands := &stubCatalog{entries: map[string]catalog.BrandEntry{
		"shell": {
			Name: "Shell",
			Offered: map[station.FuelSubtype]bool{
				station.RegularGas:    true,
				station.RegularDiesel: true,
			},
			Labels: map[station.FuelSubtype]string{
				station.RegularGas:    "FuelSave Unleaded",
				station.RegularDiesel: "FuelSave Diesel",
			},
		},
	}}
	cache := geocache.New()
	return NewService(repo, profiles, brands, cache, 3), cache
}

func validNewBrandDraft() Draft {
	return Draft{
		Lat:          14.6,
		Lon:          121.0,
		Brand:        "Cleanfuel",
		Municipality: "Quezon City",
		Offered: map[station.FuelSubtype]bool{
			station.RegularGas: true,
		},
		Marketing: map[station.FuelSubtype]string{
			station.RegularGas: "Clean 91",
		},
	}
}

func TestSubmitExistingBrandPopulatesFromCatalog(t *testing.T) {
	repo := NewInMemoryRepository(1, 3)
	svc, _ := newTestService(repo)

	rep, err := svc.Submit(context.Background(), "reporter", Draft{
		Lat:          14.6,
		Lon:          121.0,
		Brand:        "SHELL",
		Municipality: "Makati",
		// Marketing names deliberately empty: existing brands must
		// still submit fine.
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Brand != "Shell" {
		t.Fatalf("expected canonical brand name, got %q", rep.Brand)
	}
	if !rep.Offered[station.RegularGas] || !rep.Offered[station.RegularDiesel] {
		t.Fatalf("offered flags not auto-populated: %v", rep.Offered)
	}
	if rep.Marketing != nil {
		t.Fatalf("existing brand must not carry marketing names: %v", rep.Marketing)
	}
}

func TestSubmitNewBrandRequiresMarketingNames(t *testing.T) {
	repo := NewInMemoryRepository(1, 3)
	svc, _ := newTestService(repo)

	draft := validNewBrandDraft()
	draft.Marketing = map[station.FuelSubtype]string{}

	_, err := svc.Submit(context.Background(), "reporter", draft)
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.Count() != 0 {
		t.Fatal("validation failure must not reach the repository")
	}
}

func TestSubmitNewBrandRequiresAnOfferedSubtype(t *testing.T) {
	repo := NewInMemoryRepository(1, 3)
	svc, _ := newTestService(repo)

	draft := validNewBrandDraft()
	draft.Offered = map[station.FuelSubtype]bool{station.RegularGas: false}

	_, err := svc.Submit(context.Background(), "reporter", draft)
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitRejectsSecondPendingReport(t *testing.T) {
	repo := NewInMemoryRepository(5, 5)
	svc, _ := newTestService(repo)

	if _, err := svc.Submit(context.Background(), "reporter", validNewBrandDraft()); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := svc.Submit(context.Background(), "reporter", validNewBrandDraft())
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error for outstanding report, got %v", err)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected 1 pending report, got %d", repo.Count())
	}
}

func TestSubmitRejectsReporterOverIncorrectThreshold(t *testing.T) {
	repo := NewInMemoryRepository(1, 3)
	svc, _ := newTestService(repo)

	_, err := svc.Submit(context.Background(), "banned", validNewBrandDraft())
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.Count() != 0 {
		t.Fatal("gated submission must not reach the repository")
	}
}

func TestVoteRejectsReporter(t *testing.T) {
	repo := NewInMemoryRepository(5, 5)
	repo.Seed(Report{ID: "r1", ReporterID: "reporter"})
	svc, _ := newTestService(repo)

	_, err := svc.Vote(context.Background(), "r1", "reporter", true)
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error for self-vote, got %v", err)
	}

	rep, _ := repo.GetByID(context.Background(), "r1")
	if len(rep.Verifiers) != 0 || len(rep.Deniers) != 0 {
		t.Fatal("reporter leaked into a vote set")
	}
}

func TestVoteRejectsSecondVote(t *testing.T) {
	repo := NewInMemoryRepository(5, 5)
	repo.Seed(Report{ID: "r1", ReporterID: "reporter"})
	svc, _ := newTestService(repo)

	if _, err := svc.Vote(context.Background(), "r1", "voter", true); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	_, err := svc.Vote(context.Background(), "r1", "voter", false)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	// A voter id appears in at most one of the two sets.
	rep, _ := repo.GetByID(context.Background(), "r1")
	if len(rep.Verifiers) != 1 || len(rep.Deniers) != 0 {
		t.Fatalf("vote sets inconsistent: verifiers=%v deniers=%v",
			rep.Verifiers, rep.Deniers)
	}
}

func TestVoteMirrorsPromotionIntoCache(t *testing.T) {
	repo := NewInMemoryRepository(1, 3)
	repo.Seed(Report{
		ID:           "r1",
		ReporterID:   "reporter",
		Brand:        "Cleanfuel",
		Municipality: "Quezon City",
		Lat:          14.6,
		Lon:          121.0,
	})
	svc, cache := newTestService(repo)

	outcome, err := svc.Vote(context.Background(), "r1", "voter", true)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if outcome != OutcomePromoted {
		t.Fatalf("expected promotion at quorum 1, got %s", outcome)
	}

	if cache.Len() != 1 {
		t.Fatalf("promoted station not merged into cache, len=%d", cache.Len())
	}
	if _, err := repo.GetByID(context.Background(), "r1"); !errors.Is(err, ErrReportNotFound) {
		t.Fatal("promoted report should be gone")
	}
}

func TestVoteDenialQuorumDeletes(t *testing.T) {
	repo := NewInMemoryRepository(5, 2)
	repo.Seed(Report{ID: "r1", ReporterID: "reporter"})
	svc, _ := newTestService(repo)

	outcome, err := svc.Vote(context.Background(), "r1", "v1", false)
	if err != nil || outcome != OutcomeDenialAdded {
		t.Fatalf("expected denial_added, got %s err=%v", outcome, err)
	}

	outcome, err = svc.Vote(context.Background(), "r1", "v2", false)
	if err != nil || outcome != OutcomeDeleted {
		t.Fatalf("expected deleted at quorum 2, got %s err=%v", outcome, err)
	}
	if repo.Count() != 0 {
		t.Fatal("denied report should be deleted")
	}
}

func TestVoteRemoteFailureLeavesStateUntouched(t *testing.T) {
	repo := NewInMemoryRepository(1, 1)
	repo.Seed(Report{ID: "r1", ReporterID: "reporter"})
	svc, cache := newTestService(repo)

	repo.FailNext = errors.New("network down")
	if _, err := svc.Vote(context.Background(), "r1", "voter", true); err == nil {
		t.Fatal("expected remote error to surface")
	}

	if cache.Len() != 0 {
		t.Fatal("failed vote must not touch the cache")
	}
	rep, _ := repo.GetByID(context.Background(), "r1")
	if len(rep.Verifiers) != 0 || len(rep.Deniers) != 0 {
		t.Fatal("failed vote must not mutate vote sets")
	}
}

func TestWithdrawOnlyByReporter(t *testing.T) {
	repo := NewInMemoryRepository(5, 5)
	repo.Seed(Report{ID: "r1", ReporterID: "reporter"})
	svc, _ := newTestService(repo)

	err := svc.Withdraw(context.Background(), "r1", "someone-else")
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := svc.Withdraw(context.Background(), "r1", "reporter"); err != nil {
		t.Fatalf("reporter withdraw failed: %v", err)
	}
	if repo.Count() != 0 {
		t.Fatal("report should be deleted after withdrawal")
	}
}

func TestAttachEvidenceOnlyByReporter(t *testing.T) {
	repo := NewInMemoryRepository(5, 5)
	repo.Seed(Report{ID: "r1", ReporterID: "reporter"})
	svc, _ := newTestService(repo)

	err := svc.AttachEvidence(context.Background(), "r1", "stranger", "https://cdn/x.jpg")
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := svc.AttachEvidence(context.Background(), "r1", "reporter", "https://cdn/x.jpg"); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	rep, _ := repo.GetByID(context.Background(), "r1")
	if rep.PhotoURL != "https://cdn/x.jpg" {
		t.Fatalf("photo url not set: %q", rep.PhotoURL)
	}
}
