package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencourses/backend/internal/logger"
	"github.com/opencourses/backend/internal/repos"
	"github.com/opencourses/backend/internal/types"
)

type CourseSearchQuery struct {
	Q        string
	Status   string
	Page     int
	PageSize int
}

type CourseListItem struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Status      types.CourseStatus `json:"status"`
	IsDeleted   bool               `json:"is_deleted"`
	LessonCount int                `json:"lesson_count"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type PagedCourses struct {
	Items      []*CourseListItem `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

type CourseDetail struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Status    types.CourseStatus `json:"status"`
	IsDeleted bool               `json:"is_deleted"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type CourseSummary struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Status         types.CourseStatus `json:"status"`
	TotalLessons   int                `json:"total_lessons"`
	LastModifiedAt time.Time          `json:"last_modified_at"`
}

type CourseService interface {
	Search(ctx context.Context, query CourseSearchQuery) (*PagedCourses, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CourseDetail, error)
	GetSummary(ctx context.Context, id uuid.UUID) (*CourseSummary, error)
	Create(ctx context.Context, title string) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, title string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Publish(ctx context.Context, id uuid.UUID) error
	Unpublish(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
}

func NewCourseService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo) CourseService {
	return &courseService{
		db:         db,
		log:        baseLog.With("service", "CourseService"),
		courseRepo: courseRepo,
	}
}

func (cs *courseService) Search(ctx context.Context, query CourseSearchQuery) (*PagedCourses, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	filter := repos.CourseSearchFilter{
		TitleContains: query.Q,
		Offset:        (page - 1) * pageSize,
		Limit:         pageSize,
	}
	// An unrecognized status string means "no status filter", not an error.
	if status, ok := types.ParseCourseStatus(query.Status); ok {
		filter.Status = &status
	}

	courses, total, err := cs.courseRepo.Search(ctx, nil, filter)
	if err != nil {
		cs.log.Error("Search failed", "error", err)
		return nil, fmt.Errorf("search courses: %w", err)
	}

	courseIDs := make([]uuid.UUID, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}
	lessonCounts, err := cs.courseRepo.CountActiveLessons(ctx, nil, courseIDs)
	if err != nil {
		cs.log.Error("CountActiveLessons failed", "error", err)
		return nil, fmt.Errorf("count lessons: %w", err)
	}

	items := make([]*CourseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, &CourseListItem{
			ID:          course.ID,
			Title:       course.Title,
			Status:      course.Status,
			IsDeleted:   course.IsDeleted,
			LessonCount: lessonCounts[course.ID],
			UpdatedAt:   course.UpdatedAt,
		})
	}
	return &PagedCourses{Items: items, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

func (cs *courseService) GetByID(ctx context.Context, id uuid.UUID) (*CourseDetail, error) {
	course, err := cs.courseRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return &CourseDetail{
		ID:        course.ID,
		Title:     course.Title,
		Status:    course.Status,
		IsDeleted: course.IsDeleted,
		CreatedAt: course.CreatedAt,
		UpdatedAt: course.UpdatedAt,
	}, nil
}

// GetSummary reports the active lesson count and the most recent modification
// across the course and its active lessons.
func (cs *courseService) GetSummary(ctx context.Context, id uuid.UUID) (*CourseSummary, error) {
	course, err := cs.courseRepo.GetByIDWithLessons(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	lastModified := course.UpdatedAt
	totalLessons := 0
	for _, lesson := range course.Lessons {
		if lesson.IsDeleted {
			continue
		}
		totalLessons++
		if lesson.UpdatedAt.After(lastModified) {
			lastModified = lesson.UpdatedAt
		}
	}

	return &CourseSummary{
		ID:             course.ID,
		Title:          course.Title,
		Status:         course.Status,
		TotalLessons:   totalLessons,
		LastModifiedAt: lastModified,
	}, nil
}

func (cs *courseService) Create(ctx context.Context, title string) (uuid.UUID, error) {
	course := types.NewCourse(title)
	if err := cs.courseRepo.Create(ctx, nil, course); err != nil {
		cs.log.Error("Create failed", "error", err)
		return uuid.Nil, fmt.Errorf("create course: %w", err)
	}
	return course.ID, nil
}

func (cs *courseService) Update(ctx context.Context, id uuid.UUID, title string) error {
	course, err := cs.courseRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}

	// Idempotent: an exact title match writes nothing, so UpdatedAt is
	// observably unchanged.
	if course.Title == title {
		return nil
	}

	course.Rename(title)
	if err := cs.courseRepo.Save(ctx, nil, course); err != nil {
		cs.log.Error("Update failed", "error", err, "course_id", id)
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete is idempotent: a second call finds the already-deleted row and
// returns success without writing.
func (cs *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	course, err := cs.courseRepo.GetByIDIncludingDeleted(ctx, nil, id)
	if err != nil {
		return err
	}
	if course.IsDeleted {
		return nil
	}

	course.Delete()
	if err := cs.courseRepo.Save(ctx, nil, course); err != nil {
		cs.log.Error("Delete failed", "error", err, "course_id", id)
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

func (cs *courseService) Publish(ctx context.Context, id uuid.UUID) error {
	course, err := cs.courseRepo.GetByIDWithLessons(ctx, nil, id)
	if err != nil {
		return err
	}
	if course.Status == types.CourseStatusPublished {
		return nil
	}

	if err := course.Publish(); err != nil {
		return err
	}
	if err := cs.courseRepo.Save(ctx, nil, course); err != nil {
		cs.log.Error("Publish failed", "error", err, "course_id", id)
		return fmt.Errorf("publish course: %w", err)
	}
	return nil
}

func (cs *courseService) Unpublish(ctx context.Context, id uuid.UUID) error {
	course, err := cs.courseRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if course.Status == types.CourseStatusDraft {
		return nil
	}

	course.Unpublish()
	if err := cs.courseRepo.Save(ctx, nil, course); err != nil {
		cs.log.Error("Unpublish failed", "error", err, "course_id", id)
		return fmt.Errorf("unpublish course: %w", err)
	}
	return nil
}
