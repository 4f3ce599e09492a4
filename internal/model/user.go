package model

import "time"

// Role is the access level of a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleUser, RoleModerator, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents an account. A user exists from signup on; it becomes usable
// once a confirmation code has been exchanged for a token.
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email       string `json:"email" gorm:"size:254;uniqueIndex;not null"`
	FirstName   string `json:"first_name" gorm:"size:150"`
	LastName    string `json:"last_name" gorm:"size:150"`
	Bio         string `json:"bio" gorm:"type:text"`
	Role        Role   `json:"role" gorm:"size:16;not null;default:'user'"`
	IsSuperuser bool   `json:"is_superuser" gorm:"not null;default:false"`

	// bcrypt hash of the pending confirmation code; empty when none is pending.
	ConfirmationCode      string     `json:"-" gorm:"size:72"`
	ConfirmationExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has administrative rights.
func (u *User) IsAdmin() bool {
	return u != nil && (u.Role == RoleAdmin || u.IsSuperuser)
}

// IsModerator reports whether the user moderates feedback.
func (u *User) IsModerator() bool {
	return u != nil && u.Role == RoleModerator
}
