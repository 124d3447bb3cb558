package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole enumerates the known roles.
type UserRole string

const (
	UserRoleSUPER_ADMIN       UserRole = "superAdmin"
	UserRoleADMIN             UserRole = "admin"
	UserRoleTELECALLER        UserRole = "telecaller"
	UserRoleCLASS_COORDINATOR UserRole = "Class_Coordinator" // stored with this exact casing
	UserRoleRM                UserRole = "RM"
	UserRoleTEACHER           UserRole = "teacher"
)

// IsAdminRole reports whether the role bypasses centre scoping.
func IsAdminRole(role UserRole) bool {
	return role == UserRoleSUPER_ADMIN || role == UserRoleADMIN
}

// MaxRedFlags is the cap on a user's penalty counter.
const MaxRedFlags = 5

// GranularPermissions is the nested capability map: module -> section -> action -> allowed.
type GranularPermissions map[string]map[string]map[string]bool

// User is a principal account.
type User struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name                string               `bson:"name" json:"name"`
	Email               string               `bson:"email" json:"email"`
	Password            string               `bson:"password" json:"-"`
	Phone               string               `bson:"phone" json:"phone"`
	Role                UserRole             `bson:"role" json:"role"`
	Centres             []primitive.ObjectID `bson:"centres" json:"centres"`
	Permissions         []string             `bson:"permissions,omitempty" json:"permissions,omitempty"`
	GranularPermissions GranularPermissions  `bson:"granularPermissions,omitempty" json:"granularPermissions,omitempty"`
	RedFlags            int                  `bson:"redFlags" json:"redFlags"`
	Active              bool                 `bson:"active" json:"active"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Principal is the authenticated identity attached to each request.
// It is re-fetched from the store per request; token claims are not trusted
// beyond the user id.
type Principal struct {
	ID                  primitive.ObjectID
	Name                string
	Role                UserRole
	Centres             []primitive.ObjectID
	Permissions         []string
	GranularPermissions GranularPermissions
}

// PrincipalFromUser builds the request-scoped principal from a user row.
func PrincipalFromUser(u *User) Principal {
	return Principal{
		ID:                  u.ID,
		Name:                u.Name,
		Role:                u.Role,
		Centres:             u.Centres,
		Permissions:         u.Permissions,
		GranularPermissions: u.GranularPermissions,
	}
}

// Capability names a single permission check. Either the coarse Name is set
// (e.g. "Master Data") or the granular Module/Section/Action triple.
type Capability struct {
	Name    string
	Module  string
	Section string
	Action  string
}

// CoarseCapability builds a coarse named capability.
func CoarseCapability(name string) Capability {
	return Capability{Name: name}
}

// GranularCapability builds a module/section/action capability.
func GranularCapability(module, section, action string) Capability {
	return Capability{Module: module, Section: section, Action: action}
}

type (
	// LoginRequest is the login payload.
	LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse is the login response.
	LoginResponse struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}

	// CreateUserRequest is the user creation payload.
	CreateUserRequest struct {
		Name     string   `json:"name" binding:"required,min=2"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required,min=6"`
		Phone    string   `json:"phone"`
		Role     UserRole `json:"role" binding:"required"`
		Centres  []string `json:"centres"`
	}

	// UpdateUserRequest is the user update payload.
	UpdateUserRequest struct {
		Name                string              `json:"name" binding:"omitempty,min=2"`
		Email               string              `json:"email" binding:"omitempty,email"`
		Password            string              `json:"password" binding:"omitempty,min=6"`
		Phone               string              `json:"phone"`
		Role                UserRole            `json:"role"`
		Centres             []string            `json:"centres"`
		Permissions         []string            `json:"permissions"`
		GranularPermissions GranularPermissions `json:"granularPermissions"`
		Active              *bool               `json:"active"`
	}
)
