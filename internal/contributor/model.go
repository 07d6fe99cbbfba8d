package contributor

import "strings"

// Profile is the public face of a contributor. The masked display name
// is derived, never stored.
type Profile struct {
	ID               string `json:"id"`
	DisplayName      string `json:"display_name"`
	ShowName         bool   `json:"show_name"`
	ShowGcash        bool   `json:"show_gcash"`
	ShowMaya         bool   `json:"show_maya"`
	Contributions    int    `json:"contributions"`
	IncorrectReports int    `json:"incorrect_reports"`
	Likes            int    `json:"likes"`
	Dislikes         int    `json:"dislikes"`
}

// Label returns the display name with the visibility flag applied.
func (p *Profile) Label() string {
	return MaskDisplayName(p.DisplayName, p.ShowName)
}

// MaskDisplayName hides a contributor's name when they opted out of
// showing it: first rune kept, the rest replaced by asterisks. An empty
// name renders as Anonymous.
func MaskDisplayName(name string, show bool) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Anonymous"
	}
	if show {
		return name
	}

	runes := []rune(name)
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}

// VoteType is a reputation vote on a contributor.
type VoteType string

const (
	VoteLike    VoteType = "like"
	VoteDislike VoteType = "dislike"
)

func (v VoteType) Valid() bool {
	return v == VoteLike || v == VoteDislike
}
