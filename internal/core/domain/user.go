package domain

type UserRole string

const (
	Admin   UserRole = "admin"
	AppUser UserRole = "appuser"
)

// User is a static credential record. A real deployment would delegate to an
// identity provider; the simulation keeps a fixed in-memory set.
type User struct {
	ID       string   `json:"id"`
	Password string   `json:"-"`
	Role     UserRole `json:"role"`
}
