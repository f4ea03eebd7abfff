package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"learngenie/backend/models"

	"github.com/google/uuid"
)

// memoryDB is the shared state behind the in-memory repositories. A single
// lock keeps cross-table operations such as cascades consistent.
type memoryDB struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]models.User
	profiles      map[uuid.UUID]models.UserProfile
	courses       map[uuid.UUID]models.Course
	ratings       map[uuid.UUID]models.CourseRating
	purchases     map[uuid.UUID]models.PurchasedCourse
	notifications map[uuid.UUID]models.Notification
	feedback      []models.Feedback
}

// NewMemoryStore returns a Store that keeps all records in process memory.
func NewMemoryStore() *Store {
	db := &memoryDB{
		users:         make(map[uuid.UUID]models.User),
		profiles:      make(map[uuid.UUID]models.UserProfile),
		courses:       make(map[uuid.UUID]models.Course),
		ratings:       make(map[uuid.UUID]models.CourseRating),
		purchases:     make(map[uuid.UUID]models.PurchasedCourse),
		notifications: make(map[uuid.UUID]models.Notification),
	}
	return &Store{
		Users:         &userMemory{db},
		Profiles:      &profileMemory{db},
		Courses:       &courseMemory{db},
		Ratings:       &ratingMemory{db},
		Purchases:     &purchaseMemory{db},
		Notifications: &notificationMemory{db},
		Feedback:      &feedbackMemory{db},
	}
}

func now() time.Time {
	return time.Now().UTC()
}

type userMemory struct{ db *memoryDB }

func (r *userMemory) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return &DuplicateError{Field: "email"}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleLearner
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	r.db.users[user.ID] = *user
	return nil
}

func (r *userMemory) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *userMemory) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userMemory) List(_ context.Context, role string) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.User
	for _, u := range r.db.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *userMemory) Update(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for id, u := range r.db.users {
		if id != user.ID && u.Email == user.Email {
			return &DuplicateError{Field: "email"}
		}
	}
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.Password = user.Password
	stored.UpdatedAt = now()
	r.db.users[user.ID] = stored
	*user = stored
	return nil
}

func (r *userMemory) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hash
	u.UpdatedAt = now()
	r.db.users[id] = u
	return nil
}

func (r *userMemory) Delete(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.db.users, id)
	return &u, nil
}

type profileMemory struct{ db *memoryDB }

func (r *profileMemory) Upsert(_ context.Context, profile *models.UserProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.profiles[profile.UserID]
	if !ok {
		stored = models.UserProfile{ID: uuid.New(), UserID: profile.UserID, CreatedAt: now()}
	}
	stored.TwelfthStream = profile.TwelfthStream
	stored.Degree = profile.Degree
	stored.PostGrad = profile.PostGrad
	stored.AreasOfInterest = append([]string(nil), profile.AreasOfInterest...)
	stored.UpdatedAt = now()
	r.db.profiles[profile.UserID] = stored
	*profile = stored
	return nil
}

func (r *profileMemory) GetByUserID(_ context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

type courseMemory struct{ db *memoryDB }

func (r *courseMemory) Create(_ context.Context, course *models.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.CreatedAt = now()
	course.UpdatedAt = course.CreatedAt
	course.Ratings = nil
	r.db.courses[course.ID] = *course
	return nil
}

func (r *courseMemory) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *courseMemory) List(_ context.Context, filter CourseFilter) ([]models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.Course
	for _, c := range r.db.courses {
		if filter.CreatedBy == nil || c.CreatedBy == *filter.CreatedBy {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *courseMemory) ListByIDs(_ context.Context, ids []uuid.UUID) ([]models.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.Course
	for _, id := range ids {
		if c, ok := r.db.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *courseMemory) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.courses)), nil
}

func (r *courseMemory) Update(_ context.Context, course *models.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.courses[course.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Title = course.Title
	stored.Description = course.Description
	stored.Duration = course.Duration
	stored.Category = course.Category
	stored.Price = course.Price
	stored.YoutubeLink = course.YoutubeLink
	stored.UpdatedAt = now()
	r.db.courses[course.ID] = stored
	*course = stored
	return nil
}

func (r *courseMemory) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses[id]; !ok {
		return ErrNotFound
	}
	r.deleteLocked(id)
	return nil
}

func (r *courseMemory) DeleteByCreator(_ context.Context, creatorID uuid.UUID) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var n int64
	for id, c := range r.db.courses {
		if c.CreatedBy == creatorID {
			r.deleteLocked(id)
			n++
		}
	}
	return n, nil
}

// deleteLocked removes a course and its ratings. Callers hold the write lock.
func (r *courseMemory) deleteLocked(id uuid.UUID) {
	delete(r.db.courses, id)
	for rid, rating := range r.db.ratings {
		if rating.CourseID == id {
			delete(r.db.ratings, rid)
		}
	}
}

type ratingMemory struct{ db *memoryDB }

func (r *ratingMemory) Upsert(_ context.Context, rating *models.CourseRating) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for id, existing := range r.db.ratings {
		if existing.CourseID == rating.CourseID && existing.UserID == rating.UserID {
			existing.Rating = rating.Rating
			existing.UpdatedAt = now()
			r.db.ratings[id] = existing
			*rating = existing
			return nil
		}
	}
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	rating.CreatedAt = now()
	rating.UpdatedAt = rating.CreatedAt
	r.db.ratings[rating.ID] = *rating
	return nil
}

func (r *ratingMemory) Summary(_ context.Context, courseID uuid.UUID) (models.RatingSummary, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.summaryLocked(courseID), nil
}

func (r *ratingMemory) summaryLocked(courseID uuid.UUID) models.RatingSummary {
	var sum, count int64
	for _, rating := range r.db.ratings {
		if rating.CourseID == courseID {
			sum += int64(rating.Rating)
			count++
		}
	}
	if count == 0 {
		return models.RatingSummary{}
	}
	return models.RatingSummary{Average: float64(sum) / float64(count), Count: count}
}

func (r *ratingMemory) Summaries(_ context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]models.RatingSummary, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make(map[uuid.UUID]models.RatingSummary, len(courseIDs))
	for _, id := range courseIDs {
		if s := r.summaryLocked(id); s.Count > 0 {
			out[id] = s
		}
	}
	return out, nil
}

func (r *ratingMemory) GetForUser(_ context.Context, courseID, userID uuid.UUID) (*models.CourseRating, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, rating := range r.db.ratings {
		if rating.CourseID == courseID && rating.UserID == userID {
			return &rating, nil
		}
	}
	return nil, ErrNotFound
}

func (r *ratingMemory) ListDetails(_ context.Context, courseID uuid.UUID) ([]models.RatingDetail, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.RatingDetail
	for _, rating := range r.db.ratings {
		if rating.CourseID != courseID {
			continue
		}
		detail := models.RatingDetail{UserID: rating.UserID, Rating: rating.Rating, CreatedAt: rating.CreatedAt}
		if u, ok := r.db.users[rating.UserID]; ok {
			detail.FullName = u.FullName
			detail.Email = u.Email
		}
		out = append(out, detail)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type purchaseMemory struct{ db *memoryDB }

func (r *purchaseMemory) findLocked(userID, courseID uuid.UUID) (models.PurchasedCourse, bool) {
	for _, p := range r.db.purchases {
		if p.UserID == userID && p.CourseID == courseID {
			return p, true
		}
	}
	return models.PurchasedCourse{}, false
}

func (r *purchaseMemory) Create(_ context.Context, purchase *models.PurchasedCourse) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.findLocked(purchase.UserID, purchase.CourseID); ok {
		return &DuplicateError{Field: "purchase"}
	}
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = now()
	}
	purchase.CreatedAt = now()
	purchase.UpdatedAt = purchase.CreatedAt
	r.db.purchases[purchase.ID] = *purchase
	return nil
}

func (r *purchaseMemory) Get(_ context.Context, userID, courseID uuid.UUID) (*models.PurchasedCourse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.findLocked(userID, courseID)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *purchaseMemory) ListByUser(_ context.Context, userID uuid.UUID) ([]models.PurchasedCourse, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.PurchasedCourse
	for _, p := range r.db.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.Before(out[j].PurchaseDate) })
	return out, nil
}

func (r *purchaseMemory) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.purchases)), nil
}

func (r *purchaseMemory) SetProgress(_ context.Context, userID, courseID uuid.UUID, progress int, upsert bool) (models.ProgressChange, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.findLocked(userID, courseID)
	if !ok {
		if !upsert {
			return models.ProgressChange{}, ErrNotFound
		}
		t := now()
		p = models.PurchasedCourse{
			ID:           uuid.New(),
			UserID:       userID,
			CourseID:     courseID,
			PurchaseDate: t,
			Progress:     progress,
			CreatedAt:    t,
			UpdatedAt:    t,
		}
		r.db.purchases[p.ID] = p
		return models.ProgressChange{Purchase: p, Created: true}, nil
	}

	previous := p.Progress
	p.Progress = progress
	p.UpdatedAt = now()
	r.db.purchases[p.ID] = p
	return models.ProgressChange{Purchase: p, Previous: previous}, nil
}

func (r *purchaseMemory) LearnerProgress(_ context.Context, managerID uuid.UUID) ([]models.LearnerProgress, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.LearnerProgress
	for _, p := range r.db.purchases {
		c, ok := r.db.courses[p.CourseID]
		if !ok || c.CreatedBy != managerID {
			continue
		}
		row := models.LearnerProgress{
			ID:           p.ID,
			UserID:       p.UserID,
			CourseID:     p.CourseID,
			PurchaseDate: p.PurchaseDate,
			Progress:     p.Progress,
			CourseTitle:  c.Title,
		}
		if u, ok := r.db.users[p.UserID]; ok {
			row.LearnerName = u.FullName
			row.LearnerEmail = u.Email
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate) })
	return out, nil
}

func (r *purchaseMemory) SalesByCreator(_ context.Context, managerID uuid.UUID) ([]models.CourseSales, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.CourseSales
	for _, c := range r.db.courses {
		if c.CreatedBy != managerID {
			continue
		}
		sales := models.CourseSales{CourseID: c.ID, Title: c.Title, Price: c.Price}
		for _, p := range r.db.purchases {
			if p.CourseID == c.ID {
				sales.Count++
			}
		}
		out = append(out, sales)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type notificationMemory struct{ db *memoryDB }

func (r *notificationMemory) Create(_ context.Context, n *models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now()
	}
	r.db.notifications[n.ID] = *n
	return nil
}

func (r *notificationMemory) GetByID(_ context.Context, id uuid.UUID) (*models.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n, ok := r.db.notifications[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (r *notificationMemory) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.Notification
	for _, n := range r.db.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *notificationMemory) MarkRead(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n, ok := r.db.notifications[id]
	if !ok {
		return ErrNotFound
	}
	n.Read = true
	r.db.notifications[id] = n
	return nil
}

type feedbackMemory struct{ db *memoryDB }

func (r *feedbackMemory) Create(_ context.Context, f *models.Feedback) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = now()
	r.db.feedback = append(r.db.feedback, *f)
	return nil
}

func (r *feedbackMemory) List(_ context.Context) ([]models.Feedback, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.Feedback, len(r.db.feedback))
	for i, f := range r.db.feedback {
		out[len(out)-1-i] = f
	}
	return out, nil
}
