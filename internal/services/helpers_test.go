package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/opencourses/backend/internal/logger"
	"github.com/opencourses/backend/internal/repos"
	"github.com/opencourses/backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&types.User{}, &types.Course{}, &types.Lesson{}))
	return database
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return log
}

// newTestServices wires both services over one fresh in-memory store.
func newTestServices(t *testing.T) (CourseService, LessonService, *gorm.DB) {
	t.Helper()
	database := newTestDB(t)
	log := newTestLogger(t)
	courseRepo := repos.NewCourseRepo(database, log)
	lessonRepo := repos.NewLessonRepo(database, log)
	return NewCourseService(database, log, courseRepo),
		NewLessonService(database, log, courseRepo, lessonRepo),
		database
}
