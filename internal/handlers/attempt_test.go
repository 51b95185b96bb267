package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omkar-107/opine-bot-sub000/internal/middleware"
	"github.com/omkar-107/opine-bot-sub000/internal/models"
	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	auth     *services.AuthService
	tickets  *services.TicketService
	quizzes  *services.QuizService
	attempts *services.AttemptService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Faculty{}, &models.Student{}, &models.Course{},
		&models.Quiz{}, &models.Question{}, &models.Option{},
		&models.QuizResponse{}, &models.ResponseAnswer{},
		&models.FeedbackTask{}, &models.CourseFeedback{},
	))

	env := &testEnv{
		db:       db,
		auth:     services.NewAuthService(db, "test-secret"),
		tickets:  services.NewTicketService("test-secret"),
		quizzes:  services.NewQuizService(db),
		attempts: services.NewAttemptService(db),
	}

	attemptHandler := NewAttemptHandler(env.attempts, env.tickets)

	r := gin.New()
	quiz := r.Group("/api/v1/quiz")
	{
		quiz.GET("/:id/check-code", attemptHandler.InspectTicket)

		student := quiz.Group("")
		student.Use(middleware.CookieAuth(env.auth), middleware.RequireRole(models.RoleStudent))
		{
			student.POST("/:id/check-code", attemptHandler.CheckCode)
			student.POST("/:id/feedback", attemptHandler.Feedback)
		}

		quiz.GET("/:id/questions", attemptHandler.Questions)
		quiz.POST("/:id/submit", attemptHandler.Submit)
	}
	env.router = r
	return env
}

// seedAttempt creates an enrolled student with a login and an active
// two-question quiz (correct answers B and C), returning the identity cookie.
func (env *testEnv) seedAttempt(t *testing.T) (*models.Quiz, *http.Cookie) {
	t.Helper()

	faculty := models.Faculty{Email: "prof@university.edu", Name: "Prof"}
	require.NoError(t, env.db.Create(&faculty).Error)
	course := models.Course{Code: "CS301", Title: "Operating Systems", FacultyID: faculty.ID}
	require.NoError(t, env.db.Create(&course).Error)

	student := models.Student{Email: "stu@university.edu", Name: "Student"}
	require.NoError(t, env.db.Create(&student).Error)
	require.NoError(t, env.db.Model(&student).Association("Courses").Append(&course))

	user, err := env.auth.CreateUser(nil, "stu@university.edu", "Student", "password123", models.RoleStudent)
	require.NoError(t, err)
	token, err := env.auth.GenerateToken(user)
	require.NoError(t, err)

	quiz, err := env.quizzes.CreateQuiz(faculty.Email, services.QuizInput{
		Title:    "Q1",
		CourseID: course.ID,
		Minutes:  30,
		Active:   true,
		Questions: []services.QuestionInput{
			{Text: "first", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "B"},
			{Text: "second", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "C"},
		},
	})
	require.NoError(t, err)

	return quiz, &http.Cookie{Name: middleware.IdentityCookie, Value: token}
}

func (env *testEnv) do(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func ticketCookie(w *httptest.ResponseRecorder) *http.Cookie {
	res := http.Response{Header: w.Header()}
	for _, c := range res.Cookies() {
		if c.Name == QuizTicketCookie {
			return c
		}
	}
	return nil
}

func TestCheckCodeIssuesTicket(t *testing.T) {
	env := newTestEnv(t)
	quiz, identity := env.seedAttempt(t)

	w := env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code}, identity)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := ticketCookie(w)
	require.NotNil(t, cookie, "quiz authorization cookie must be set")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 30*60, cookie.MaxAge)

	var body struct {
		Quiz services.QuizSummary `json:"quiz"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, quiz.ID, body.Quiz.ID)
	assert.Equal(t, 2, body.Quiz.NumQuestions)
	assert.Equal(t, "Operating Systems", body.Quiz.CourseName)
}

func TestCheckCodeFailures(t *testing.T) {
	env := newTestEnv(t)
	quiz, identity := env.seedAttempt(t)

	// wrong code
	w := env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": "WRONG1"}, identity)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, ticketCookie(w))

	// missing identity cookie
	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// missing body field
	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{}, identity)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown quiz
	w = env.do("POST", "/api/v1/quiz/9999/check-code", gin.H{"quiz_code": quiz.Code}, identity)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInspectTicket(t *testing.T) {
	env := newTestEnv(t)
	quiz, identity := env.seedAttempt(t)

	w := env.do("GET", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code}, identity)
	require.Equal(t, http.StatusOK, w.Code)
	ticket := ticketCookie(w)
	require.NotNil(t, ticket)

	w = env.do("GET", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID), nil, ticket)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["authorized"])
	assert.Equal(t, "stu@university.edu", body["stu_email"])
	assert.EqualValues(t, quiz.ID, body["quiz_id"])
}

func TestQuestionsRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	quiz, identity := env.seedAttempt(t)

	// no ticket
	w := env.do("GET", fmt.Sprintf("/api/v1/quiz/%d/questions", quiz.ID), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code}, identity)
	require.Equal(t, http.StatusOK, w.Code)
	ticket := ticketCookie(w)

	w = env.do("GET", fmt.Sprintf("/api/v1/quiz/%d/questions", quiz.ID), nil, ticket)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "correct_answer")

	var body struct {
		Quiz services.QuizDetail `json:"quiz"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Quiz.Questions, 2)
	assert.Equal(t, []string{"A", "B", "C", "D"}, body.Quiz.Questions[0].Options)
}

func TestTicketScopedToQuiz(t *testing.T) {
	env := newTestEnv(t)
	quiz, identity := env.seedAttempt(t)

	// second active quiz on the same course
	other, err := env.quizzes.CreateQuiz("prof@university.edu", services.QuizInput{
		Title:    "Q2",
		CourseID: quiz.CourseID,
		Minutes:  15,
		Active:   true,
		Questions: []services.QuestionInput{
			{Text: "other", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A"},
		},
	})
	require.NoError(t, err)

	w := env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code}, identity)
	require.Equal(t, http.StatusOK, w.Code)
	ticket := ticketCookie(w)

	w = env.do("GET", fmt.Sprintf("/api/v1/quiz/%d/questions", other.ID), nil, ticket)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/submit", other.ID),
		gin.H{"answers": []gin.H{{"question_id": 1, "selected_option": "A"}}}, ticket)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitFlow(t *testing.T) {
	env := newTestEnv(t)
	quiz, identity := env.seedAttempt(t)

	w := env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code}, identity)
	require.Equal(t, http.StatusOK, w.Code)
	ticket := ticketCookie(w)

	answers := gin.H{"answers": []gin.H{
		{"question_id": quiz.Questions[0].ID, "selected_option": "B"},
		{"question_id": quiz.Questions[1].ID, "selected_option": "D"},
	}}
	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/submit", quiz.ID), answers, ticket)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result services.SubmitResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)

	// the ticket cookie is cleared on success
	cleared := ticketCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)

	// replaying the old ticket is refused on the existence check
	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/submit", quiz.ID), answers, ticket)
	assert.Equal(t, http.StatusConflict, w.Code)

	// and a fresh code check is refused too
	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code}, identity)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestQuizFeedback(t *testing.T) {
	env := newTestEnv(t)
	quiz, identity := env.seedAttempt(t)

	// feedback before submitting
	w := env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/feedback", quiz.ID),
		gin.H{"feedback": "great quiz"}, identity)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code}, identity)
	require.Equal(t, http.StatusOK, w.Code)
	ticket := ticketCookie(w)

	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/submit", quiz.ID),
		gin.H{"answers": []gin.H{{"question_id": quiz.Questions[0].ID, "selected_option": "B"}}}, ticket)
	require.Equal(t, http.StatusOK, w.Code)

	// identity cookie alone is enough after submission
	w = env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/feedback", quiz.ID),
		gin.H{"feedback": "great quiz"}, identity)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response models.QuizResponse
	require.NoError(t, env.db.Where("quiz_id = ?", quiz.ID).First(&response).Error)
	assert.Equal(t, "great quiz", response.Feedback)
}

func TestCheckCodeStudentsOnly(t *testing.T) {
	env := newTestEnv(t)
	quiz, _ := env.seedAttempt(t)

	user, err := env.auth.CreateUser(nil, "prof2@university.edu", "Prof", "password123", models.RoleFaculty)
	require.NoError(t, err)
	token, err := env.auth.GenerateToken(user)
	require.NoError(t, err)

	w := env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
		gin.H{"quiz_code": quiz.Code},
		&http.Cookie{Name: middleware.IdentityCookie, Value: token})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, ticketCookie(w))
}

func TestInactiveQuizRefusedRegardlessOfCode(t *testing.T) {
	env := newTestEnv(t)
	quiz, identity := env.seedAttempt(t)
	require.NoError(t, env.db.Model(&models.Quiz{}).Where("id = ?", quiz.ID).Update("active", false).Error)

	for _, code := range []string{quiz.Code, "WRONG1", strings.ToLower(quiz.Code)} {
		w := env.do("POST", fmt.Sprintf("/api/v1/quiz/%d/check-code", quiz.ID),
			gin.H{"quiz_code": code}, identity)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}
