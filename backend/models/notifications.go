package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationPurchase   = "purchase"
	NotificationCompletion = "completion"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notification_user_created" json:"userId"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	CourseID  uuid.UUID `gorm:"type:uuid" json:"courseId"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"index:idx_notification_user_created,sort:desc" json:"createdAt"`
}

// Feedback is a contact-form submission.
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Number    string    `gorm:"not null" json:"number"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&Course{},
		&CourseRating{},
		&PurchasedCourse{},
		&Notification{},
		&Feedback{},
	}
}
