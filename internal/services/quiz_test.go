package services

import (
	"testing"

	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCourse(t *testing.T, db *gorm.DB) models.Course {
	t.Helper()
	faculty := models.Faculty{Email: "prof@university.edu", Name: "Prof"}
	require.NoError(t, db.Create(&faculty).Error)
	course := models.Course{Code: "CS301", Title: "Operating Systems", FacultyID: faculty.ID}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func TestCreateQuizRejectsCorrectAnswerOutsideOptions(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quizzes := NewQuizService(db)

	_, err := quizzes.CreateQuiz("prof@university.edu", QuizInput{
		Title:    "Bad Quiz",
		CourseID: course.ID,
		Minutes:  30,
		Questions: []QuestionInput{{
			Text:          "what is 2+2",
			Options:       []string{"1", "2", "3", "4"},
			CorrectAnswer: "5",
		}},
	})
	requireKind(t, err, KindValidation)

	var count int64
	db.Model(&models.Quiz{}).Count(&count)
	assert.Zero(t, count, "invalid quiz must not be stored")
}

func TestCreateQuizValidation(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quizzes := NewQuizService(db)

	cases := []struct {
		name  string
		input QuizInput
	}{
		{"no title", QuizInput{CourseID: course.ID, Minutes: 30, Questions: []QuestionInput{fourOptions("A")}}},
		{"zero minutes", QuizInput{Title: "Q", CourseID: course.ID, Minutes: 0, Questions: []QuestionInput{fourOptions("A")}}},
		{"no questions", QuizInput{Title: "Q", CourseID: course.ID, Minutes: 30}},
		{"three options", QuizInput{Title: "Q", CourseID: course.ID, Minutes: 30, Questions: []QuestionInput{{
			Text: "q", Options: []string{"A", "B", "C"}, CorrectAnswer: "A",
		}}}},
		{"empty option", QuizInput{Title: "Q", CourseID: course.ID, Minutes: 30, Questions: []QuestionInput{{
			Text: "q", Options: []string{"A", "B", "C", " "}, CorrectAnswer: "A",
		}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := quizzes.CreateQuiz("prof@university.edu", tc.input)
			requireKind(t, err, KindValidation)
		})
	}
}

func TestCreateQuizGeneratesUniqueCode(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quizzes := NewQuizService(db)

	input := QuizInput{
		Title:     "Quiz",
		CourseID:  course.ID,
		Minutes:   30,
		Questions: []QuestionInput{fourOptions("A")},
	}
	first, err := quizzes.CreateQuiz("prof@university.edu", input)
	require.NoError(t, err)
	second, err := quizzes.CreateQuiz("prof@university.edu", input)
	require.NoError(t, err)

	assert.Len(t, first.Code, 6)
	assert.Len(t, second.Code, 6)
	assert.NotEqual(t, first.Code, second.Code)
}

func TestGetQuizScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quizzes := NewQuizService(db)

	quiz, err := quizzes.CreateQuiz("prof@university.edu", QuizInput{
		Title: "Quiz", CourseID: course.ID, Minutes: 30,
		Questions: []QuestionInput{fourOptions("A")},
	})
	require.NoError(t, err)

	_, err = quizzes.GetQuiz(quiz.ID, "other@university.edu")
	requireKind(t, err, KindNotFound)

	got, err := quizzes.GetQuiz(quiz.ID, "prof@university.edu")
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	require.Len(t, got.Questions[0].Options, 4)
	assert.Equal(t, "A", got.Questions[0].CorrectAnswer)
}

func TestUpdateQuizReplacesQuestions(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quizzes := NewQuizService(db)

	quiz, err := quizzes.CreateQuiz("prof@university.edu", QuizInput{
		Title: "Quiz", CourseID: course.ID, Minutes: 30,
		Questions: []QuestionInput{fourOptions("A"), fourOptions("B")},
	})
	require.NoError(t, err)

	updated, err := quizzes.UpdateQuiz(quiz.ID, "prof@university.edu", QuizInput{
		Title: "Quiz v2", CourseID: course.ID, Minutes: 45,
		Questions: []QuestionInput{fourOptions("C")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Quiz v2", updated.Title)
	assert.Equal(t, 45, updated.Minutes)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "C", updated.Questions[0].CorrectAnswer)

	var questionCount, optionCount int64
	db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount)
	db.Model(&models.Option{}).Count(&optionCount)
	assert.EqualValues(t, 1, questionCount, "old questions must be gone")
	assert.EqualValues(t, 4, optionCount, "old options must be gone")
}

func TestSetActive(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	quizzes := NewQuizService(db)

	quiz, err := quizzes.CreateQuiz("prof@university.edu", QuizInput{
		Title: "Quiz", CourseID: course.ID, Minutes: 30,
		Questions: []QuestionInput{fourOptions("A")},
	})
	require.NoError(t, err)
	assert.False(t, quiz.Active)

	quiz, err = quizzes.SetActive(quiz.ID, "prof@university.edu", true)
	require.NoError(t, err)
	assert.True(t, quiz.Active)

	_, err = quizzes.SetActive(quiz.ID, "other@university.edu", false)
	requireKind(t, err, KindNotFound)
}

func TestListResponses(t *testing.T) {
	db := newTestDB(t)
	fix := newQuizFixture(t, db, []QuestionInput{fourOptions("B")}, 30)

	attempts := NewAttemptService(db)
	_, err := attempts.Submit(fix.quiz.ID, fix.student.Email, []AnswerInput{
		{QuestionID: fix.quiz.Questions[0].ID, SelectedOption: "B"},
	})
	require.NoError(t, err)

	quizzes := NewQuizService(db)
	summaries, err := quizzes.ListResponses(fix.quiz.ID, "prof@university.edu")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, fix.student.Email, summaries[0].Email)
	assert.Equal(t, 100, summaries[0].Score)

	_, err = quizzes.ListResponses(fix.quiz.ID, "other@university.edu")
	requireKind(t, err, KindNotFound)
}
