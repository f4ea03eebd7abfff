package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"learngenie/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewGormStore backs every repository with db. The connection must be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:         &userGorm{db: db},
		Profiles:      &profileGorm{db: db},
		Courses:       &courseGorm{db: db},
		Ratings:       &ratingGorm{db: db},
		Purchases:     &purchaseGorm{db: db},
		Notifications: &notificationGorm{db: db},
		Feedback:      &feedbackGorm{db: db},
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

func translate(err error, field string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &DuplicateError{Field: field}
	}
	return err
}

type userGorm struct {
	db *gorm.DB
}

func (r *userGorm) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return translate(r.db.WithContext(ctx).Create(user).Error, "email")
}

func (r *userGorm) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "")
	}
	return &user, nil
}

func (r *userGorm) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "")
	}
	return &user, nil
}

func (r *userGorm) List(ctx context.Context, role string) ([]models.User, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userGorm) Update(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := r.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"full_name": user.FullName,
		"email":     user.Email,
		"password":  user.Password,
	}).Error
	return translate(err, "email")
}

func (r *userGorm) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userGorm) Delete(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	return &user, nil
}

type profileGorm struct {
	db *gorm.DB
}

func (r *profileGorm) Upsert(ctx context.Context, profile *models.UserProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"twelfth_stream", "degree", "post_grad", "areas_of_interest", "updated_at"}),
		}).
		Create(profile).Error
	if err != nil {
		return err
	}
	stored, err := r.GetByUserID(ctx, profile.UserID)
	if err != nil {
		return err
	}
	*profile = *stored
	return nil
}

func (r *profileGorm) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err, "")
	}
	return &profile, nil
}

type courseGorm struct {
	db *gorm.DB
}

func (r *courseGorm) Create(ctx context.Context, course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit("Ratings").Create(course).Error
}

func (r *courseGorm) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, translate(err, "")
	}
	return &course, nil
}

func (r *courseGorm) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseGorm) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var courses []models.Course
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseGorm) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&count).Error
	return count, err
}

func (r *courseGorm) Update(ctx context.Context, course *models.Course) error {
	result := r.db.WithContext(ctx).Model(course).Updates(map[string]interface{}{
		"title":        course.Title,
		"description":  course.Description,
		"duration":     course.Duration,
		"category":     course.Category,
		"price":        course.Price,
		"youtube_link": course.YoutubeLink,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *courseGorm) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *courseGorm) DeleteByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_by = ?", creatorID).Delete(&models.Course{})
	return result.RowsAffected, result.Error
}

type ratingGorm struct {
	db *gorm.DB
}

func (r *ratingGorm) Upsert(ctx context.Context, rating *models.CourseRating) error {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(rating).Error
}

func (r *ratingGorm) Summary(ctx context.Context, courseID uuid.UUID) (models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.WithContext(ctx).Model(&models.CourseRating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Scan(&summary).Error
	return summary, err
}

func (r *ratingGorm) Summaries(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]models.RatingSummary, error) {
	out := make(map[uuid.UUID]models.RatingSummary, len(courseIDs))
	if len(courseIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		CourseID uuid.UUID
		Average  float64
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&models.CourseRating{}).
		Select("course_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.CourseID] = models.RatingSummary{Average: row.Average, Count: row.Count}
	}
	return out, nil
}

func (r *ratingGorm) GetForUser(ctx context.Context, courseID, userID uuid.UUID) (*models.CourseRating, error) {
	var rating models.CourseRating
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&rating).Error
	if err != nil {
		return nil, translate(err, "")
	}
	return &rating, nil
}

func (r *ratingGorm) ListDetails(ctx context.Context, courseID uuid.UUID) ([]models.RatingDetail, error) {
	var details []models.RatingDetail
	err := r.db.WithContext(ctx).Table("course_ratings").
		Select("course_ratings.user_id, course_ratings.rating, course_ratings.created_at, users.full_name, users.email").
		Joins("LEFT JOIN users ON users.id = course_ratings.user_id").
		Where("course_ratings.course_id = ?", courseID).
		Order("course_ratings.created_at ASC").
		Scan(&details).Error
	return details, err
}

type purchaseGorm struct {
	db *gorm.DB
}

func (r *purchaseGorm) Create(ctx context.Context, purchase *models.PurchasedCourse) error {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(purchase).Error, "purchase")
}

func (r *purchaseGorm) Get(ctx context.Context, userID, courseID uuid.UUID) (*models.PurchasedCourse, error) {
	var purchase models.PurchasedCourse
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&purchase).Error
	if err != nil {
		return nil, translate(err, "")
	}
	return &purchase, nil
}

func (r *purchaseGorm) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PurchasedCourse, error) {
	var purchases []models.PurchasedCourse
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date ASC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseGorm) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PurchasedCourse{}).Count(&count).Error
	return count, err
}

func (r *purchaseGorm) SetProgress(ctx context.Context, userID, courseID uuid.UUID, progress int, upsert bool) (models.ProgressChange, error) {
	var change models.ProgressChange
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var purchase models.PurchasedCourse
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&purchase).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !upsert {
				return ErrNotFound
			}
			purchase = models.PurchasedCourse{
				ID:           uuid.New(),
				UserID:       userID,
				CourseID:     courseID,
				PurchaseDate: time.Now().UTC(),
				Progress:     progress,
			}
			if err := tx.Create(&purchase).Error; err != nil {
				return translate(err, "purchase")
			}
			change = models.ProgressChange{Purchase: purchase, Created: true}
			return nil
		}
		if err != nil {
			return err
		}

		change.Previous = purchase.Progress
		if err := tx.Model(&purchase).Update("progress", progress).Error; err != nil {
			return err
		}
		purchase.Progress = progress
		change.Purchase = purchase
		return nil
	})
	return change, err
}

func (r *purchaseGorm) LearnerProgress(ctx context.Context, managerID uuid.UUID) ([]models.LearnerProgress, error) {
	var out []models.LearnerProgress
	err := r.db.WithContext(ctx).Table("purchased_courses").
		Select(`purchased_courses.id, purchased_courses.user_id, purchased_courses.course_id,
			purchased_courses.purchase_date, purchased_courses.progress,
			courses.title AS course_title, users.full_name AS learner_name, users.email AS learner_email`).
		Joins("JOIN courses ON courses.id = purchased_courses.course_id").
		Joins("LEFT JOIN users ON users.id = purchased_courses.user_id").
		Where("courses.created_by = ?", managerID).
		Order("purchased_courses.purchase_date DESC").
		Scan(&out).Error
	return out, err
}

func (r *purchaseGorm) SalesByCreator(ctx context.Context, managerID uuid.UUID) ([]models.CourseSales, error) {
	var out []models.CourseSales
	err := r.db.WithContext(ctx).Table("courses").
		Select("courses.id AS course_id, courses.title, courses.price, COUNT(purchased_courses.id) AS count").
		Joins("LEFT JOIN purchased_courses ON purchased_courses.course_id = courses.id").
		Where("courses.created_by = ?", managerID).
		Group("courses.id, courses.title, courses.price").
		Order("courses.title ASC").
		Scan(&out).Error
	return out, err
}

type notificationGorm struct {
	db *gorm.DB
}

func (r *notificationGorm) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationGorm) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, translate(err, "")
	}
	return &n, nil
}

func (r *notificationGorm) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var out []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *notificationGorm) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type feedbackGorm struct {
	db *gorm.DB
}

func (r *feedbackGorm) Create(ctx context.Context, f *models.Feedback) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *feedbackGorm) List(ctx context.Context) ([]models.Feedback, error) {
	var out []models.Feedback
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}
