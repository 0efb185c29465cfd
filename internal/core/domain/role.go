package domain

import "errors"

var ErrRoleNotFound = errors.New("role not found")

// Role is a named authority level. Rank ordering is inverted: a lower
// numeric rank means higher authority.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Outranks reports whether r carries strictly higher authority than other.
// Equal ranks never outrank each other, even between distinct roles.
func (r Role) Outranks(other Role) bool {
	return r.Rank < other.Rank
}
