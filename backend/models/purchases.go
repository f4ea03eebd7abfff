package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinProgress = 0
	MaxProgress = 100
)

type PurchasedCourse struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_purchase_user_course" json:"userId"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_purchase_user_course;index" json:"courseId"`
	PurchaseDate time.Time `gorm:"not null" json:"purchaseDate"`
	Progress     int       `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *PurchasedCourse) Completed() bool {
	return p.Progress >= MaxProgress
}

// ProgressChange reports the stored progress before and after an update.
type ProgressChange struct {
	Purchase PurchasedCourse
	Previous int
	Created  bool
}

// Completed reports whether this update moved the purchase to 100%.
func (pc ProgressChange) Completed() bool {
	return pc.Purchase.Progress >= MaxProgress && (pc.Created || pc.Previous < MaxProgress)
}

// LearnerProgress is a purchase of one of a manager's courses, joined with
// the course title and the learner.
type LearnerProgress struct {
	ID           uuid.UUID `json:"_id"`
	UserID       uuid.UUID `json:"userId"`
	CourseID     uuid.UUID `json:"courseId"`
	PurchaseDate time.Time `json:"purchaseDate"`
	Progress     int       `json:"progress"`
	CourseTitle  string    `json:"courseTitle"`
	LearnerName  string    `json:"learnerName"`
	LearnerEmail string    `json:"learnerEmail"`
}

// CourseSales counts purchases for one course of a manager.
type CourseSales struct {
	CourseID uuid.UUID
	Title    string
	Price    string
	Count    int64
}
