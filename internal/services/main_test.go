package services

import (
	"fmt"
	"testing"

	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Faculty{},
		&models.Student{},
		&models.Course{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.QuizResponse{},
		&models.ResponseAnswer{},
		&models.FeedbackTask{},
		&models.CourseFeedback{},
	))
	return db
}

type fixture struct {
	db      *gorm.DB
	course  models.Course
	student models.Student
	quiz    *models.Quiz
}

// newQuizFixture seeds a course, an enrolled student, and an active quiz
// with the given questions.
func newQuizFixture(t *testing.T, db *gorm.DB, questions []QuestionInput, minutes int) *fixture {
	t.Helper()

	faculty := models.Faculty{Email: "prof@university.edu", Name: "Prof"}
	require.NoError(t, db.Create(&faculty).Error)

	course := models.Course{Code: "CS301", Title: "Operating Systems", FacultyID: faculty.ID}
	require.NoError(t, db.Create(&course).Error)

	student := models.Student{Email: "stu@university.edu", Name: "Student", Semester: 5}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Model(&student).Association("Courses").Append(&course))

	quizzes := NewQuizService(db)
	quiz, err := quizzes.CreateQuiz(faculty.Email, QuizInput{
		Title:     "Midterm Review",
		CourseID:  course.ID,
		Minutes:   minutes,
		Active:    true,
		Questions: questions,
	})
	require.NoError(t, err)

	return &fixture{db: db, course: course, student: student, quiz: quiz}
}

func fourOptions(correct string) QuestionInput {
	return QuestionInput{
		Text:          "pick " + correct,
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: correct,
	}
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*Error)
	require.True(t, ok, "expected a service error, got %T: %v", err, err)
	require.Equal(t, kind, svcErr.Kind, "unexpected error kind: %v", err)
}
