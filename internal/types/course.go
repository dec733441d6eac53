package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "Draft"
	CourseStatusPublished CourseStatus = "Published"
)

// ParseCourseStatus is case-insensitive. The second return reports whether
// the input named a real status; callers treat an unknown value as "no
// filter" rather than an error.
func ParseCourseStatus(s string) (CourseStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft":
		return CourseStatusDraft, true
	case "published":
		return CourseStatusPublished, true
	default:
		return "", false
	}
}

// Course is the aggregate root: publish state and the order uniqueness of its
// lessons are enforced here when lessons are managed through AddLesson. The
// services keep a second write path that creates lessons directly; that path
// re-checks uniqueness against the store before writing.
type Course struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string       `gorm:"size:200;not null" json:"title"`
	Status    CourseStatus `gorm:"type:varchar(20);not null" json:"status"`
	IsDeleted bool         `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`

	Lessons []*Lesson `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:RESTRICT" json:"lessons,omitempty"`
}

func (Course) TableName() string { return "courses" }

func NewCourse(title string) *Course {
	now := time.Now().UTC()
	return &Course{
		ID:        uuid.New(),
		Title:     title,
		Status:    CourseStatusDraft,
		IsDeleted: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Course) Rename(title string) {
	c.Title = title
	c.UpdatedAt = time.Now().UTC()
}

// Publish requires at least one active lesson on the loaded aggregate.
func (c *Course) Publish() error {
	if c.ActiveLessonCount() == 0 {
		return ErrInvalidState
	}
	c.Status = CourseStatusPublished
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (c *Course) Unpublish() {
	c.Status = CourseStatusDraft
	c.UpdatedAt = time.Now().UTC()
}

// Delete marks the course deleted. Calling it on an already deleted course is
// a no-op success.
func (c *Course) Delete() {
	c.IsDeleted = true
	c.UpdatedAt = time.Now().UTC()
}

// AddLesson is the in-memory aggregate write path: the duplicate-order check
// runs against the loaded lessons before the lesson is constructed.
func (c *Course) AddLesson(title string, order int) (*Lesson, error) {
	for _, l := range c.Lessons {
		if !l.IsDeleted && l.Order == order {
			return nil, ErrDuplicateOrder
		}
	}
	lesson := NewLesson(c.ID, title, order)
	c.Lessons = append(c.Lessons, lesson)
	c.UpdatedAt = time.Now().UTC()
	return lesson, nil
}

func (c *Course) ActiveLessonCount() int {
	count := 0
	for _, l := range c.Lessons {
		if !l.IsDeleted {
			count++
		}
	}
	return count
}
