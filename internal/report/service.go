package report

import (
	"context"
	"errors"
	"strings"

	"fuelsmart/internal/catalog"
	"fuelsmart/internal/core"
	"fuelsmart/internal/geocache"
	"fuelsmart/internal/station"
)

var ErrAlreadyVoted = errors.New("already voted on this report")

// BrandCatalog is the slice of the reference cache the lifecycle needs.
// Satisfied by catalog.Store.
type BrandCatalog interface {
	LookupBrand(name string) (catalog.BrandEntry, bool)
}

// ProfileReader exposes the server-owned incorrect-report counter.
// Satisfied by contributor repositories.
type ProfileReader interface {
	IncorrectReportCount(ctx context.Context, id string) (int, error)
}

const DefaultIncorrectReportLimit = 3

type Service struct {
	repo           Repository
	profiles       ProfileReader
	brands         BrandCatalog
	cache          *geocache.Cache
	incorrectLimit int
}

func NewService(
	repo Repository,
	profiles ProfileReader,
	brands BrandCatalog,
	cache *geocache.Cache,
	incorrectLimit int,
) *Service {
	if incorrectLimit <= 0 {
		incorrectLimit = DefaultIncorrectReportLimit
	}
	return &Service{
		repo:           repo,
		profiles:       profiles,
		brands:         brands,
		cache:          cache,
		incorrectLimit: incorrectLimit,
	}
}

// --------------------------------------------------
// Draft -> Pending
// --------------------------------------------------

// Submit validates the draft and the reporter's eligibility entirely
// locally; a remote call happens only once every gate passes.
func (s *Service) Submit(ctx context.Context, reporterID string, d Draft) (*Report, error) {
	if reporterID == "" {
		return nil, core.Invalid("reporter must be authenticated")
	}

	rep, err := s.buildReport(reporterID, d)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.repo.FindPendingByReporter(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	if outstanding != nil {
		return nil, core.Invalid("you already have a pending report awaiting verification")
	}

	incorrect, err := s.profiles.IncorrectReportCount(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	if incorrect >= s.incorrectLimit {
		return nil, core.Invalid("too many incorrect location reports")
	}

	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// buildReport applies the brand rules: catalog brands carry the
// catalog's offered flags and no custom names; new brands must name
// every fuel they claim to offer.
func (s *Service) buildReport(reporterID string, d Draft) (*Report, error) {
	brand := strings.TrimSpace(d.Brand)
	municipality := strings.TrimSpace(d.Municipality)

	if brand == "" {
		return nil, core.Invalid("brand is required")
	}
	if municipality == "" {
		return nil, core.Invalid("municipality is required")
	}
	if d.Lat < -90 || d.Lat > 90 || d.Lon < -180 || d.Lon > 180 {
		return nil, core.Invalid("coordinates out of range")
	}
	for sub := range d.Offered {
		if !sub.Valid() {
			return nil, core.Invalidf("unknown fuel subtype %q", sub)
		}
	}

	rep := &Report{
		ReporterID:   reporterID,
		Lat:          d.Lat,
		Lon:          d.Lon,
		Brand:        brand,
		Municipality: municipality,
	}

	if entry, known := s.brands.LookupBrand(brand); known {
		rep.Brand = entry.Name
		rep.Offered = make(map[station.FuelSubtype]bool, len(entry.Offered))
		for sub, on := range entry.Offered {
			if on {
				rep.Offered[sub] = true
			}
		}
		// Existing brands never get custom marketing names.
		rep.Marketing = nil
		return rep, nil
	}

	// New brand: at least one subtype toggled, and each toggled subtype
	// needs a marketing name.
	offered := make(map[station.FuelSubtype]bool)
	marketing := make(map[station.FuelSubtype]string)
	for sub, on := range d.Offered {
		if !on {
			continue
		}
		offered[sub] = true
		name := strings.TrimSpace(d.Marketing[sub])
		if name == "" {
			return nil, core.Invalidf("marketing name required for %s", sub)
		}
		marketing[sub] = name
	}
	if len(offered) == 0 {
		return nil, core.Invalid("a new brand must offer at least one fuel subtype")
	}

	rep.Offered = offered
	rep.Marketing = marketing
	return rep, nil
}

// --------------------------------------------------
// Pending -> vote
// --------------------------------------------------

// Vote applies one confirm/deny vote. The remote procedure owns the
// quorum decision; on promotion the new station is merged into the
// local cache so the map reflects it immediately.
func (s *Service) Vote(
	ctx context.Context,
	reportID string,
	voterID string,
	confirm bool,
) (Outcome, error) {

	if reportID == "" || voterID == "" {
		return "", core.Invalid("missing required fields")
	}

	rep, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return "", err
	}
	if rep.ReporterID == voterID {
		return "", core.Invalid("you cannot vote on your own report")
	}
	if rep.HasVoted(voterID) {
		return "", ErrAlreadyVoted
	}

	outcome, promoted, err := s.repo.AddVote(ctx, reportID, voterID, confirm)
	if err != nil {
		return "", err
	}
	switch outcome {
	case OutcomeAlreadyVoted:
		// Raced with another client holding the same account.
		return "", ErrAlreadyVoted
	case OutcomePromoted:
		if promoted != nil {
			s.cache.Merge([]station.Record{*promoted})
		}
	}
	return outcome, nil
}

// --------------------------------------------------
// Pending -> withdraw
// --------------------------------------------------

func (s *Service) Withdraw(ctx context.Context, reportID, reporterID string) error {
	if reportID == "" || reporterID == "" {
		return core.Invalid("missing required fields")
	}

	rep, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if rep.ReporterID != reporterID {
		return core.Invalid("only the reporter may withdraw a report")
	}

	return s.repo.Delete(ctx, reportID)
}

// --------------------------------------------------
// Reads / evidence
// --------------------------------------------------

func (s *Service) PendingFor(ctx context.Context, reporterID string) (*Report, error) {
	if reporterID == "" {
		return nil, core.Invalid("reporter must be authenticated")
	}
	return s.repo.FindPendingByReporter(ctx, reporterID)
}

func (s *Service) ListPending(ctx context.Context) ([]*Report, error) {
	return s.repo.ListPending(ctx)
}

// AttachEvidence links an uploaded photo to the reporter's own report.
func (s *Service) AttachEvidence(ctx context.Context, reportID, reporterID, url string) error {
	if url == "" {
		return core.Invalid("photo url is required")
	}

	rep, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if rep.ReporterID != reporterID {
		return core.Invalid("only the reporter may attach evidence")
	}

	return s.repo.SetPhotoURL(ctx, reportID, url)
}
