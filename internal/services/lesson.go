package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencourses/backend/internal/logger"
	"github.com/opencourses/backend/internal/repos"
	"github.com/opencourses/backend/internal/types"
)

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

type LessonItem struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	IsDeleted bool      `json:"is_deleted"`
}

type LessonService interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*LessonItem, error)
	Create(ctx context.Context, courseID uuid.UUID, title string, order int) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, title string, order int) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, id uuid.UUID, direction MoveDirection) (bool, error)
}

type lessonService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
	lessonRepo repos.LessonRepo
}

func NewLessonService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo, lessonRepo repos.LessonRepo) LessonService {
	return &lessonService{
		db:         db,
		log:        baseLog.With("service", "LessonService"),
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
	}
}

func (ls *lessonService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*LessonItem, error) {
	lessons, err := ls.lessonRepo.ListByCourseID(ctx, nil, courseID)
	if err != nil {
		ls.log.Error("ListByCourse failed", "error", err, "course_id", courseID)
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	items := make([]*LessonItem, 0, len(lessons))
	for _, lesson := range lessons {
		items = append(items, &LessonItem{
			ID:        lesson.ID,
			CourseID:  lesson.CourseID,
			Title:     lesson.Title,
			Order:     lesson.Order,
			IsDeleted: lesson.IsDeleted,
		})
	}
	return items, nil
}

// Create is the service-mediated write path: the course existence check and
// the order uniqueness check run against the store before the lesson is
// constructed.
func (ls *lessonService) Create(ctx context.Context, courseID uuid.UUID, title string, order int) (uuid.UUID, error) {
	if _, err := ls.courseRepo.GetByID(ctx, nil, courseID); err != nil {
		return uuid.Nil, err
	}

	taken, err := ls.lessonRepo.OrderTaken(ctx, nil, courseID, order, uuid.Nil)
	if err != nil {
		ls.log.Error("OrderTaken check failed", "error", err, "course_id", courseID)
		return uuid.Nil, fmt.Errorf("check lesson order: %w", err)
	}
	if taken {
		return uuid.Nil, types.ErrDuplicateOrder
	}

	lesson := types.NewLesson(courseID, title, order)
	if err := ls.lessonRepo.Create(ctx, nil, lesson); err != nil {
		ls.log.Error("Create failed", "error", err, "course_id", courseID)
		return uuid.Nil, fmt.Errorf("create lesson: %w", err)
	}
	return lesson.ID, nil
}

func (ls *lessonService) Update(ctx context.Context, id uuid.UUID, title string, order int) error {
	lesson, err := ls.lessonRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}

	// Idempotent: nothing changed, nothing written.
	if lesson.Title == title && lesson.Order == order {
		return nil
	}

	if lesson.Order != order {
		taken, err := ls.lessonRepo.OrderTaken(ctx, nil, lesson.CourseID, order, id)
		if err != nil {
			ls.log.Error("OrderTaken check failed", "error", err, "lesson_id", id)
			return fmt.Errorf("check lesson order: %w", err)
		}
		if taken {
			return types.ErrDuplicateOrder
		}
	}

	lesson.Update(title, order)
	if err := ls.lessonRepo.Save(ctx, nil, lesson); err != nil {
		ls.log.Error("Update failed", "error", err, "lesson_id", id)
		return fmt.Errorf("update lesson: %w", err)
	}
	return nil
}

// Delete is idempotent: deleting an already-deleted lesson is a success.
func (ls *lessonService) Delete(ctx context.Context, id uuid.UUID) error {
	lesson, err := ls.lessonRepo.GetByIDIncludingDeleted(ctx, nil, id)
	if err != nil {
		return err
	}
	if lesson.IsDeleted {
		return nil
	}

	lesson.Delete()
	if err := ls.lessonRepo.Save(ctx, nil, lesson); err != nil {
		ls.log.Error("Delete failed", "error", err, "lesson_id", id)
		return fmt.Errorf("delete lesson: %w", err)
	}
	return nil
}

// Reorder swaps the lesson's order with its neighbor in the given direction.
// The two updates commit in one transaction so a crash cannot leave the
// course with a duplicated order. Returns false when the lesson is already at
// the edge and no movement is possible.
func (ls *lessonService) Reorder(ctx context.Context, id uuid.UUID, direction MoveDirection) (bool, error) {
	lesson, err := ls.lessonRepo.GetByID(ctx, nil, id)
	if err != nil {
		return false, err
	}

	siblings, err := ls.lessonRepo.ListByCourseID(ctx, nil, lesson.CourseID)
	if err != nil {
		ls.log.Error("ListByCourseID failed", "error", err, "course_id", lesson.CourseID)
		return false, fmt.Errorf("load course lessons: %w", err)
	}

	index := -1
	for i, sibling := range siblings {
		if sibling.ID == lesson.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return false, types.ErrNotFound
	}

	var neighbor *types.Lesson
	switch direction {
	case MoveUp:
		if index > 0 {
			neighbor = siblings[index-1]
		}
	case MoveDown:
		if index < len(siblings)-1 {
			neighbor = siblings[index+1]
		}
	}
	if neighbor == nil {
		return false, nil
	}

	target := siblings[index]
	targetOrder := target.Order
	target.Update(target.Title, neighbor.Order)
	neighbor.Update(neighbor.Title, targetOrder)

	err = ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ls.lessonRepo.Save(ctx, tx, target); err != nil {
			return err
		}
		return ls.lessonRepo.Save(ctx, tx, neighbor)
	})
	if err != nil {
		ls.log.Error("Reorder failed", "error", err, "lesson_id", id, "direction", direction)
		return false, fmt.Errorf("reorder lesson: %w", err)
	}
	return true, nil
}
