package auth

// User is the account entity. Visibility flags, contribution counters
// and the favorites set live on the same row but are read through the
// contributor and favorites packages.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

const (
	RoleContributor = "contributor"
	RoleAdmin       = "admin"
)
