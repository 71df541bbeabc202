package blueprint

import "github.com/dukerupert/hudson/internal/model"

// RecipientRule resolves which roles are notified about a change made by an
// actor with the given role.
type RecipientRule func(actor model.Role) []model.Role

// Complement notifies the counterpart of a two-party model: technicians'
// edits go to the homeowner, everyone else's (including admins) to the
// technician.
func Complement(actor model.Role) []model.Role {
	if actor == model.RoleTech {
		return []model.Role{model.RoleHomeowner}
	}
	return []model.Role{model.RoleTech}
}

// RoleMap builds a rule from a fixed table, falling back to Complement for
// roles the table does not name.
func RoleMap(m map[model.Role][]model.Role) RecipientRule {
	return func(actor model.Role) []model.Role {
		if roles, ok := m[actor]; ok {
			return roles
		}
		return Complement(actor)
	}
}
