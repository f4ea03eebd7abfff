package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleLearner = "learner"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	FullName  string    `gorm:"size:50;not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:16;not null;default:learner;index" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the public shape of a user returned by auth endpoints.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}

// UserProfile holds the academic details a learner fills in for recommendations.
type UserProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	TwelfthStream   string    `json:"twelfthStream"`
	Degree          string    `json:"degree"`
	PostGrad        string    `json:"postGrad"`
	AreasOfInterest []string  `gorm:"serializer:json" json:"areasOfInterest"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleLearner:
		return true
	}
	return false
}
