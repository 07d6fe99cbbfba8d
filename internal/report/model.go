package report

import (
	"time"

	"fuelsmart/internal/station"
)

// Report is a user-submitted candidate station awaiting community
// verification. It either gets promoted into a station record or
// deleted; the vote-count policy that decides lives with the remote
// store, never here.
type Report struct {
	ID           string                         `json:"id"`
	ReporterID   string                         `json:"reporter_id"`
	Lat          float64                        `json:"lat"`
	Lon          float64                        `json:"lon"`
	Brand        string                         `json:"brand"`
	Municipality string                         `json:"municipality"`
	Offered      map[station.FuelSubtype]bool   `json:"offered"`
	Marketing    map[station.FuelSubtype]string `json:"marketing_names,omitempty"`
	PhotoURL     string                         `json:"photo_url,omitempty"`
	Verifiers    []string                       `json:"verifiers"`
	Deniers      []string                       `json:"deniers"`
	CreatedAt    time.Time                      `json:"created_at"`
}

// HasVoted reports whether the user already appears in either vote set.
func (r *Report) HasVoted(userID string) bool {
	for _, v := range r.Verifiers {
		if v == userID {
			return true
		}
	}
	for _, d := range r.Deniers {
		if d == userID {
			return true
		}
	}
	return false
}

// Draft is the client-only form state before submission.
type Draft struct {
	Lat          float64                        `json:"lat"`
	Lon          float64                        `json:"lon"`
	Brand        string                         `json:"brand"`
	Municipality string                         `json:"municipality"`
	Offered      map[station.FuelSubtype]bool   `json:"offered"`
	Marketing    map[station.FuelSubtype]string `json:"marketing_names"`
}

// Outcome is the opaque verdict returned by the remote vote procedure.
// The client mirrors it; it never recomputes quorum.
type Outcome string

const (
	OutcomeVerificationAdded Outcome = "verification_added"
	OutcomeDenialAdded       Outcome = "denial_added"
	OutcomePromoted          Outcome = "promoted"
	OutcomeDeleted           Outcome = "deleted"
	OutcomeAlreadyVoted      Outcome = "already_voted"
)
