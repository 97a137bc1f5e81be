package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// IsValid reports whether r is one of the selectable roles.
func (r UserRole) IsValid() bool {
	return r == RoleStudent || r == RoleTeacher
}

type User struct {
	ID    string   `json:"id" gorm:"primaryKey;size:36"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Name  string   `json:"name" gorm:"size:100"`
	Image *string  `json:"image" gorm:"size:500"`
	Role  UserRole `json:"role" gorm:"size:20;not null;default:student"`

	// RoleSelected flips to true the first time the user picks a role explicitly.
	RoleSelected bool `json:"roleSelected" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	StudentProfile *StudentProfile `json:"studentProfile,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	return nil
}

// IsTeacher reports whether the user acts as a teacher.
func (u *User) IsTeacher() bool {
	return u != nil && u.Role == RoleTeacher
}

// UserSummary is the public subset of a user embedded in other payloads.
type UserSummary struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// Summary returns the name/image view of the user.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{Name: u.Name, Image: u.Image}
}

// Identity is what an identity provider asserts about the caller of a request.
type Identity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
	Image    string
}
