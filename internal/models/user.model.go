package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	BaseUUIDModel
	FirstName    string     `gorm:"type:text"               json:"firstName"`
	LastName     string     `gorm:"type:text"               json:"lastName"`
	DisplayName  string     `gorm:"type:text"               json:"displayName"`
	Email        string     `gorm:"type:text;uniqueIndex"   json:"email"`
	PasswordHash string     `gorm:"type:text"               json:"-"`
	IsAdmin      bool       `gorm:"type:bool;default:false" json:"isAdmin"`
	IsActive     bool       `gorm:"type:bool;default:true"  json:"isActive"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"          json:"lastLoginAt,omitempty"`

	Preferences *ReminderPreferences `gorm:"foreignKey:UserID" json:"preferences,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.DisplayName == "" {
		u.DisplayName = u.FirstName + " " + u.LastName
	}
	return nil
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile represents public user profile information
type UserProfile struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DisplayName string     `json:"displayName"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"isActive"`
	IsAdmin     bool       `json:"isAdmin"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// ToProfile converts a User to a UserProfile (public information only)
func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		LastLoginAt: u.LastLoginAt,
	}
}

func (u *User) Touch() {
	now := time.Now()
	u.LastLoginAt = &now
}
