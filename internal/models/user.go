package models

type UserRole string
type Role = UserRole

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
	RoleAdmin   UserRole = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// CanAuthor reports whether the role may author and manage assessments.
func (r UserRole) CanAuthor() bool {
	return r == RoleFaculty || r == RoleAdmin
}

// User is the identity handed over by the authentication collaborator.
// It is used to pick authoring vs. taking flows, not as a security boundary.
type User struct {
	ID   string   `json:"id"`
	Name string   `json:"name,omitempty"`
	Role UserRole `json:"role"`
}
