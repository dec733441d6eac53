package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opencourses/backend/internal/logger"
	"github.com/opencourses/backend/internal/types"
)

type CourseSearchFilter struct {
	// TitleContains is a case-sensitive substring match when non-empty.
	TitleContains string
	// Status filters to an exact status when non-nil.
	Status *types.CourseStatus
	Offset int
	Limit  int
}

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *types.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error)
	GetByIDIncludingDeleted(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error)
	GetByIDWithLessons(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error)
	Search(ctx context.Context, tx *gorm.DB, filter CourseSearchFilter) ([]*types.Course, int64, error)
	CountActiveLessons(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) (map[uuid.UUID]int, error)
	Save(ctx context.Context, tx *gorm.DB, course *types.Course) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (cr *courseRepo) Create(ctx context.Context, tx *gorm.DB, course *types.Course) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Omit(clause.Associations).Create(course).Error
}

func (cr *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var course types.Course
	err := transaction.WithContext(ctx).
		Scopes(active).
		First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetByIDIncludingDeleted skips the soft-delete scope. It exists only for
// the delete flow, which must report success when the row is already gone.
func (cr *courseRepo) GetByIDIncludingDeleted(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var course types.Course
	err := transaction.WithContext(ctx).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (cr *courseRepo) GetByIDWithLessons(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var course types.Course
	err := transaction.WithContext(ctx).
		Scopes(active).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("lesson_order ASC")
		}).
		First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Search returns one page of active courses plus the total count matching the
// filter before pagination. Sort is newest first.
func (cr *courseRepo) Search(ctx context.Context, tx *gorm.DB, filter CourseSearchFilter) ([]*types.Course, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	query := transaction.WithContext(ctx).Model(&types.Course{}).Scopes(active)
	if filter.TitleContains != "" {
		query = query.Where("title LIKE ?", "%"+filter.TitleContains+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []*types.Course
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (cr *courseRepo) CountActiveLessons(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	counts := make(map[uuid.UUID]int, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CourseID uuid.UUID
		Count    int
	}
	err := transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Select("course_id, COUNT(*) AS count").
		Where("course_id IN ?", courseIDs).
		Where("is_deleted = ?", false).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CourseID] = row.Count
	}
	return counts, nil
}

func (cr *courseRepo) Save(ctx context.Context, tx *gorm.DB, course *types.Course) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Omit(clause.Associations).Save(course).Error
}
