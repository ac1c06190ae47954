// Package permissions holds the role predicates gating every console
// operation. The predicates are pure and total: any (user, target) pair maps
// to a boolean, with a nil user treated as no access. Routes enforce the same
// gates server-side; any additional client-side checks are advisory only.
package permissions

import "github.com/minhph/resourcehub/internal/models"

func isStaff(u *models.User) bool {
	return u != nil && (u.Role == models.RoleAdmin || u.Role == models.RoleManager)
}

// CanManageSchema reports whether the user may create, edit or delete
// categories. Admin only.
func CanManageSchema(u *models.User) bool {
	return u != nil && u.Role == models.RoleAdmin
}

// CanManageProjects reports whether the user may create, edit or delete
// projects.
func CanManageProjects(u *models.User) bool {
	return isStaff(u)
}

// CanCreateResource reports whether the user may add records. Plain users
// cannot create records at all; only admins and managers add data.
func CanCreateResource(u *models.User) bool {
	return isStaff(u)
}

// CanViewCategory reports whether the user may see a category and its
// records. Restricted categories are staff-only.
func CanViewCategory(u *models.User, c *models.Category) bool {
	if isStaff(u) {
		return true
	}
	return u != nil && c != nil && c.AccessLevel == models.AccessPublic
}

// CanEditResource reports whether the user may modify a record. Plain users
// may only edit records they created (matched by username).
func CanEditResource(u *models.User, r *models.Resource) bool {
	if isStaff(u) {
		return true
	}
	return u != nil && r != nil && r.CreatedBy == u.Username
}

// CanDeleteResource reports whether the user may delete a record. Same rule
// as editing.
func CanDeleteResource(u *models.User, r *models.Resource) bool {
	return CanEditResource(u, r)
}
