package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencourses/backend/internal/logger"
	"github.com/opencourses/backend/internal/types"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error)
	GetByIDIncludingDeleted(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error)
	ListByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Lesson, error)
	OrderTaken(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (lr *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).Create(lesson).Error
}

func (lr *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var lesson types.Lesson
	err := transaction.WithContext(ctx).
		Scopes(active).
		First(&lesson, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// GetByIDIncludingDeleted skips the soft-delete scope; used by the delete
// flow so deleting twice stays a success.
func (lr *lessonRepo) GetByIDIncludingDeleted(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var lesson types.Lesson
	err := transaction.WithContext(ctx).First(&lesson, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListByCourseID returns the course's active lessons ascending by order.
func (lr *lessonRepo) ListByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var lessons []*types.Lesson
	err := transaction.WithContext(ctx).
		Scopes(active).
		Where("course_id = ?", courseID).
		Order("lesson_order ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

// OrderTaken reports whether an active lesson other than excludeID already
// holds the given order within the course. Pass uuid.Nil to check all rows.
func (lr *lessonRepo) OrderTaken(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int, excludeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Scopes(active).
		Where("course_id = ?", courseID).
		Where("lesson_order = ?", order)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (lr *lessonRepo) Save(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).Save(lesson).Error
}
