package types

import (
	"errors"
	"testing"
	"time"
)

func TestPublish_WithActiveLesson_Succeeds(t *testing.T) {
	course := NewCourse("Test Course")
	if _, err := course.AddLesson("Lesson 1", 1); err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}

	if err := course.Publish(); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if course.Status != CourseStatusPublished {
		t.Fatalf("expected status %q, got %q", CourseStatusPublished, course.Status)
	}
}

func TestPublish_WithoutLessons_Fails(t *testing.T) {
	course := NewCourse("Empty Course")

	err := course.Publish()
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if course.Status != CourseStatusDraft {
		t.Fatalf("status should stay Draft, got %q", course.Status)
	}
}

func TestPublish_OnlyDeletedLessons_Fails(t *testing.T) {
	course := NewCourse("Course")
	lesson, err := course.AddLesson("Lesson 1", 1)
	if err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}
	lesson.Delete()

	if err := course.Publish(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestAddLesson_UniqueOrders_Succeeds(t *testing.T) {
	course := NewCourse("Course")

	if _, err := course.AddLesson("Lesson 1", 1); err != nil {
		t.Fatalf("AddLesson 1 failed: %v", err)
	}
	if _, err := course.AddLesson("Lesson 2", 2); err != nil {
		t.Fatalf("AddLesson 2 failed: %v", err)
	}
	if len(course.Lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(course.Lessons))
	}
}

func TestAddLesson_DuplicateOrder_Fails(t *testing.T) {
	course := NewCourse("Course")
	if _, err := course.AddLesson("Lesson 1", 1); err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}

	if _, err := course.AddLesson("Lesson 2", 1); !errors.Is(err, ErrDuplicateOrder) {
		t.Fatalf("expected ErrDuplicateOrder, got %v", err)
	}
	if len(course.Lessons) != 1 {
		t.Fatalf("failed AddLesson must not append, got %d lessons", len(course.Lessons))
	}
}

func TestAddLesson_DeletedLessonOrder_CanBeReused(t *testing.T) {
	course := NewCourse("Course")
	lesson, err := course.AddLesson("Lesson 1", 1)
	if err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}
	lesson.Delete()

	if _, err := course.AddLesson("Lesson 1 again", 1); err != nil {
		t.Fatalf("deleted lesson should free its order: %v", err)
	}
}

func TestDelete_IsSoftAndIdempotent(t *testing.T) {
	course := NewCourse("Course to delete")

	course.Delete()
	if !course.IsDeleted {
		t.Fatalf("expected IsDeleted=true")
	}

	course.Delete()
	if !course.IsDeleted {
		t.Fatalf("second Delete must keep IsDeleted=true")
	}
}

func TestRename_BumpsUpdatedAt(t *testing.T) {
	course := NewCourse("Old title")
	before := course.UpdatedAt

	time.Sleep(time.Millisecond)
	course.Rename("New title")

	if course.Title != "New title" {
		t.Fatalf("expected renamed title, got %q", course.Title)
	}
	if !course.UpdatedAt.After(before) {
		t.Fatalf("UpdatedAt not bumped: before=%v after=%v", before, course.UpdatedAt)
	}
}

func TestUnpublish_IsUnconditional(t *testing.T) {
	course := NewCourse("Course")
	if _, err := course.AddLesson("Lesson 1", 1); err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}
	if err := course.Publish(); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	course.Unpublish()
	if course.Status != CourseStatusDraft {
		t.Fatalf("expected Draft after Unpublish, got %q", course.Status)
	}
}

func TestParseCourseStatus(t *testing.T) {
	if status, ok := ParseCourseStatus("published"); !ok || status != CourseStatusPublished {
		t.Fatalf("lowercase input should parse, got %q ok=%v", status, ok)
	}
	if status, ok := ParseCourseStatus("Draft"); !ok || status != CourseStatusDraft {
		t.Fatalf("exact input should parse, got %q ok=%v", status, ok)
	}
	if _, ok := ParseCourseStatus("archived"); ok {
		t.Fatalf("unknown status must not parse")
	}
}
