package model

type Role string

const (
	RoleHomeowner Role = "homeowner"
	RoleTech      Role = "tech"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known actor roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHomeowner, RoleTech, RoleAdmin:
		return true
	}
	return false
}

// Actor identifies who performed a mutation. It is supplied by the caller's
// session layer and only recorded, never authenticated, here.
type Actor struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Role     Role   `json:"userRole"`
}
