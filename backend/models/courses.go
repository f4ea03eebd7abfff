package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"_id"`
	Title       string         `gorm:"size:100;not null" json:"title"`
	Description string         `gorm:"size:1000;not null" json:"description"`
	Category    string         `gorm:"not null;index" json:"category"`
	Duration    string         `gorm:"not null" json:"duration"`
	Price       string         `gorm:"not null" json:"price"`
	YoutubeLink string         `gorm:"not null" json:"youtubeLink"`
	CreatedBy   uuid.UUID      `gorm:"type:uuid;not null;index" json:"createdBy"`
	Ratings     []CourseRating `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CourseRating is one learner's 1..5 score for a course. At most one row
// exists per (course, user).
type CourseRating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_rating_user" json:"courseId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_rating_user" json:"userId"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// RatingDetail is a rating joined with the name and email of the rater.
type RatingDetail struct {
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	FullName  string    `json:"-"`
	Email     string    `json:"-"`
}
