package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/opencourses/backend/internal/types"
)

func TestLessonService_Create_CourseMissing(t *testing.T) {
	_, lessons, _ := newTestServices(t)

	_, err := lessons.Create(context.Background(), uuid.New(), "L1", 1)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestLessonService_Create_CourseDeleted(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	require.NoError(t, courses.Delete(ctx, courseID))

	_, err = lessons.Create(ctx, courseID, "L1", 1)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestLessonService_Create_DuplicateOrder(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	_, err = lessons.Create(ctx, courseID, "L1", 1)
	require.NoError(t, err)

	_, err = lessons.Create(ctx, courseID, "L2", 1)
	require.ErrorIs(t, err, types.ErrDuplicateOrder)
}

func TestLessonService_Create_DeletedLessonFreesOrder(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	lessonID, err := lessons.Create(ctx, courseID, "L1", 1)
	require.NoError(t, err)
	require.NoError(t, lessons.Delete(ctx, lessonID))

	_, err = lessons.Create(ctx, courseID, "L1 again", 1)
	require.NoError(t, err)
}

func TestLessonService_ListByCourse_ActiveAscending(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	// Created out of order on purpose.
	_, err = lessons.Create(ctx, courseID, "C", 3)
	require.NoError(t, err)
	_, err = lessons.Create(ctx, courseID, "A", 1)
	require.NoError(t, err)
	deleted, err := lessons.Create(ctx, courseID, "B", 2)
	require.NoError(t, err)
	require.NoError(t, lessons.Delete(ctx, deleted))

	items, err := lessons.ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "A", items[0].Title)
	require.Equal(t, 1, items[0].Order)
	require.Equal(t, "C", items[1].Title)
	require.Equal(t, 3, items[1].Order)
}

func TestLessonService_Update_Idempotent(t *testing.T) {
	courses, lessons, database := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	lessonID, err := lessons.Create(ctx, courseID, "L1", 1)
	require.NoError(t, err)

	var before types.Lesson
	require.NoError(t, database.First(&before, "id = ?", lessonID).Error)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, lessons.Update(ctx, lessonID, "L1", 1))

	var after types.Lesson
	require.NoError(t, database.First(&after, "id = ?", lessonID).Error)
	require.True(t, after.UpdatedAt.Equal(before.UpdatedAt), "no-op update must not bump UpdatedAt")
}

func TestLessonService_Update_OrderCollision(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	_, err = lessons.Create(ctx, courseID, "L1", 1)
	require.NoError(t, err)
	second, err := lessons.Create(ctx, courseID, "L2", 2)
	require.NoError(t, err)

	err = lessons.Update(ctx, second, "L2", 1)
	require.ErrorIs(t, err, types.ErrDuplicateOrder)

	// Same order, new title: no collision check needed.
	require.NoError(t, lessons.Update(ctx, second, "L2 renamed", 2))
}

func TestLessonService_Update_Missing(t *testing.T) {
	_, lessons, _ := newTestServices(t)

	err := lessons.Update(context.Background(), uuid.New(), "L", 1)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestLessonService_Delete_Idempotent(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	lessonID, err := lessons.Create(ctx, courseID, "L1", 1)
	require.NoError(t, err)

	require.NoError(t, lessons.Delete(ctx, lessonID))
	require.NoError(t, lessons.Delete(ctx, lessonID))

	items, err := lessons.ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestLessonService_Reorder_SwapUp(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	_, err = lessons.Create(ctx, courseID, "A", 1)
	require.NoError(t, err)
	b, err := lessons.Create(ctx, courseID, "B", 2)
	require.NoError(t, err)
	_, err = lessons.Create(ctx, courseID, "C", 3)
	require.NoError(t, err)

	moved, err := lessons.Reorder(ctx, b, MoveUp)
	require.NoError(t, err)
	require.True(t, moved)

	items, err := lessons.ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "B", items[0].Title)
	require.Equal(t, 1, items[0].Order)
	require.Equal(t, "A", items[1].Title)
	require.Equal(t, 2, items[1].Order)
	require.Equal(t, "C", items[2].Title)
	require.Equal(t, 3, items[2].Order)
}

func TestLessonService_Reorder_EdgesAreNoops(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	top, err := lessons.Create(ctx, courseID, "Top", 1)
	require.NoError(t, err)
	bottom, err := lessons.Create(ctx, courseID, "Bottom", 2)
	require.NoError(t, err)

	moved, err := lessons.Reorder(ctx, top, MoveUp)
	require.NoError(t, err)
	require.False(t, moved)

	moved, err = lessons.Reorder(ctx, bottom, MoveDown)
	require.NoError(t, err)
	require.False(t, moved)
}

func TestLessonService_Reorder_RoundTrip(t *testing.T) {
	courses, lessons, _ := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	_, err = lessons.Create(ctx, courseID, "A", 1)
	require.NoError(t, err)
	b, err := lessons.Create(ctx, courseID, "B", 2)
	require.NoError(t, err)

	moved, err := lessons.Reorder(ctx, b, MoveUp)
	require.NoError(t, err)
	require.True(t, moved)
	moved, err = lessons.Reorder(ctx, b, MoveDown)
	require.NoError(t, err)
	require.True(t, moved)

	items, err := lessons.ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Equal(t, "A", items[0].Title)
	require.Equal(t, 1, items[0].Order)
	require.Equal(t, "B", items[1].Title)
	require.Equal(t, 2, items[1].Order)
}

func TestLessonService_Reorder_Missing(t *testing.T) {
	_, lessons, _ := newTestServices(t)

	_, err := lessons.Reorder(context.Background(), uuid.New(), MoveUp)
	require.ErrorIs(t, err, types.ErrNotFound)
}

// After any successful operation, active orders within a course stay
// pairwise distinct.
func TestLessonService_OrdersStayUnique(t *testing.T) {
	courses, lessons, database := newTestServices(t)
	ctx := context.Background()

	courseID, err := courses.Create(ctx, "C1")
	require.NoError(t, err)
	a, err := lessons.Create(ctx, courseID, "A", 1)
	require.NoError(t, err)
	b, err := lessons.Create(ctx, courseID, "B", 2)
	require.NoError(t, err)
	_, err = lessons.Create(ctx, courseID, "C", 3)
	require.NoError(t, err)

	_, err = lessons.Reorder(ctx, a, MoveDown)
	require.NoError(t, err)
	require.NoError(t, lessons.Update(ctx, b, "B", 5))
	_, err = lessons.Reorder(ctx, b, MoveUp)
	require.NoError(t, err)

	var orders []int
	require.NoError(t, database.Model(&types.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("lesson_order ASC").
		Pluck("lesson_order", &orders).Error)
	seen := make(map[int]bool, len(orders))
	for _, order := range orders {
		require.False(t, seen[order], "duplicate order %d", order)
		seen[order] = true
	}
}
