package models

import "time"

// Role decides which asset operations a user may call.
type Role string

const (
	// RoleOperator may toggle assets.
	RoleOperator Role = "operator"
	// RoleAdmin may also force statuses and loads.
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool { return r == RoleOperator || r == RoleAdmin }

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:32;not null;default:operator"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
