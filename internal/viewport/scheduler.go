// Package viewport debounces map-region-change events and turns them
// into bounded-box queries against the remote store. At most one query
// is issued per quiescence window; the latest region wins.
package viewport

import (
	"context"
	"log"
	"sync"
	"time"

	"fuelsmart/internal/station"
)

const (
	DefaultQuiescence    = 800 * time.Millisecond
	DefaultZoomThreshold = 0.05
	DefaultQueryLimit    = 150
	fetchTimeout         = 10 * time.Second
)

// Region is the visible map area: center plus lat/lon span.
type Region struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	LatSpan float64 `json:"lat_span"`
	LonSpan float64 `json:"lon_span"`
}

// BoundingBox derives the query window: center ± span/2 on both axes.
func (r Region) BoundingBox() station.BoundingBox {
	return station.BoundingBox{
		MinLat: r.Lat - r.LatSpan/2,
		MaxLat: r.Lat + r.LatSpan/2,
		MinLon: r.Lon - r.LonSpan/2,
		MaxLon: r.Lon + r.LonSpan/2,
	}
}

// Fetcher issues the bounded-box read. Satisfied by station.Repository.
type Fetcher interface {
	ListInBoundingBox(ctx context.Context, box station.BoundingBox, limit int) ([]station.Record, error)
}

// Sink receives fetched records. Satisfied by geocache.Cache.
type Sink interface {
	Merge([]station.Record)
}

type Options struct {
	Quiescence    time.Duration
	ZoomThreshold float64
	QueryLimit    int
	Clock         Clock
}

type Scheduler struct {
	fetcher Fetcher
	sink    Sink
	clock   Clock

	quiescence    time.Duration
	zoomThreshold float64
	limit         int

	mu      sync.Mutex
	pending *Region
	timer   Timer
	stopped bool
}

func NewScheduler(fetcher Fetcher, sink Sink, opts Options) *Scheduler {
	if opts.Quiescence <= 0 {
		opts.Quiescence = DefaultQuiescence
	}
	if opts.ZoomThreshold <= 0 {
		opts.ZoomThreshold = DefaultZoomThreshold
	}
	if opts.QueryLimit <= 0 {
		opts.QueryLimit = DefaultQueryLimit
	}
	if opts.Clock == nil {
		opts.Clock = NewRealClock()
	}
	return &Scheduler{
		fetcher:       fetcher,
		sink:          sink,
		clock:         opts.Clock,
		quiescence:    opts.Quiescence,
		zoomThreshold: opts.ZoomThreshold,
		limit:         opts.QueryLimit,
	}
}

// OnRegionChange records the latest region and (re)arms the debounce
// timer. Regions wider than the zoom threshold are intentionally
// dropped: a country-wide viewport would return an unbounded result set.
func (s *Scheduler) OnRegionChange(r Region) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if r.LatSpan > s.zoomThreshold {
		s.pending = nil
		return
	}

	s.pending = &r
	s.timer = s.clock.AfterFunc(s.quiescence, s.flush)
}

// Stop cancels any pending fetch trigger. In-flight fetches are not
// cancelled; their results merge harmlessly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

func (s *Scheduler) flush() {
	s.mu.Lock()
	region := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if region == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	records, err := s.fetcher.ListInBoundingBox(ctx, region.BoundingBox(), s.limit)
	if err != nil {
		// Stale-but-present beats an empty map: keep the cache as is
		// and wait for the next region change.
		log.Printf("viewport: fetch failed: %v", err)
		return
	}
	s.sink.Merge(records)
}
