package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName *string   `gorm:"size:150" json:"first_name,omitempty"`
	LastName  *string   `gorm:"size:150" json:"last_name,omitempty"`
	Bio       *string   `gorm:"type:text" json:"bio,omitempty"`
	Role      string    `gorm:"default:'user';not null" json:"role"` // "user", "moderator" or "admin"
	IsStaff   bool      `gorm:"default:false;not null" json:"is_staff"`
	IsActive  bool      `gorm:"default:false;not null" json:"is_active"`
	// bcrypt hash of the emailed confirmation code, never the code itself
	ConfirmationCode *string   `gorm:"column:confirmation_code" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user holds admin privilege, either through the
// staff flag or the admin role. All admin gates go through this predicate.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

func (User) TableName() string {
	return "users"
}
