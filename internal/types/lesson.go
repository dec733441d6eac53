package types

import (
	"time"

	"github.com/google/uuid"
)

// Lesson belongs to exactly one course. The column for Order is renamed to
// lesson_order because "order" is a reserved word in SQL.
type Lesson struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Order     int       `gorm:"column:lesson_order;not null" json:"order"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }

func NewLesson(courseID uuid.UUID, title string, order int) *Lesson {
	now := time.Now().UTC()
	return &Lesson{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     title,
		Order:     order,
		IsDeleted: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update overwrites both fields unconditionally. Order uniqueness against
// siblings is the caller's responsibility on this path.
func (l *Lesson) Update(title string, order int) {
	l.Title = title
	l.Order = order
	l.UpdatedAt = time.Now().UTC()
}

func (l *Lesson) Delete() {
	l.IsDeleted = true
	l.UpdatedAt = time.Now().UTC()
}
