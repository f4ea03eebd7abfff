// Package repository is the persistence boundary of the API. Controllers talk
// to the interfaces below; NewGormStore backs them with PostgreSQL and
// NewMemoryStore keeps everything in process for local runs and tests.
package repository

import (
	"context"
	"errors"

	"learngenie/backend/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate entry")
)

// DuplicateError names the unique field that rejected a write.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already exists"
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, role string) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
}

// CourseFilter narrows course listings. A nil CreatedBy lists everything.
type CourseFilter struct {
	CreatedBy *uuid.UUID
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error)
}

type RatingRepository interface {
	// Upsert stores rating as the only rating of its (course, user) pair.
	Upsert(ctx context.Context, rating *models.CourseRating) error
	Summary(ctx context.Context, courseID uuid.UUID) (models.RatingSummary, error)
	Summaries(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]models.RatingSummary, error)
	GetForUser(ctx context.Context, courseID, userID uuid.UUID) (*models.CourseRating, error)
	ListDetails(ctx context.Context, courseID uuid.UUID) ([]models.RatingDetail, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.PurchasedCourse) error
	Get(ctx context.Context, userID, courseID uuid.UUID) (*models.PurchasedCourse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PurchasedCourse, error)
	Count(ctx context.Context) (int64, error)
	// SetProgress writes progress for the (user, course) purchase. When the
	// purchase does not exist it is created if upsert is set, otherwise
	// ErrNotFound is returned.
	SetProgress(ctx context.Context, userID, courseID uuid.UUID, progress int, upsert bool) (models.ProgressChange, error)
	LearnerProgress(ctx context.Context, managerID uuid.UUID) ([]models.LearnerProgress, error)
	SalesByCreator(ctx context.Context, managerID uuid.UUID) ([]models.CourseSales, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *models.Feedback) error
	List(ctx context.Context) ([]models.Feedback, error)
}

// Store groups the repositories used by the controllers.
type Store struct {
	Users         UserRepository
	Profiles      ProfileRepository
	Courses       CourseRepository
	Ratings       RatingRepository
	Purchases     PurchaseRepository
	Notifications NotificationRepository
	Feedback      FeedbackRepository

	ping func(ctx context.Context) error
}

// Ping reports whether the backing store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}
