package services

import (
	"errors"
	"math"
	"time"

	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"gorm.io/gorm"
)

// AttemptService drives the student side of a quiz: code-gated access,
// sanitized question delivery, scoring, and post-submission feedback.
type AttemptService struct {
	db *gorm.DB
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{db: db}
}

// QuizSummary is the trimmed projection returned by a successful code check.
// Correct answers never cross this boundary.
type QuizSummary struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Minutes      int    `json:"time"`
	NumQuestions int    `json:"num_questions"`
	CourseName   string `json:"course_name"`
}

type SanitizedQuestion struct {
	ID      uint     `json:"id"`
	Text    string   `json:"question_text"`
	Options []string `json:"options"`
}

type QuizDetail struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	CourseName   string              `json:"course_name"`
	NumQuestions int                 `json:"num_questions"`
	Minutes      int                 `json:"time"`
	Questions    []SanitizedQuestion `json:"questions"`
	Syllabus     string              `json:"syllabus,omitempty"`
}

type AnswerInput struct {
	QuestionID     uint   `json:"question_id"`
	QuestionText   string `json:"question_text"`
	SelectedOption string `json:"selected_option"`
}

type SubmitResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
	CorrectAnswers int `json:"correctAnswers"`
}

func (s *AttemptService) loadQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Preload("Course").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		return nil, NotFound("quiz not found")
	}
	return &quiz, nil
}

func (s *AttemptService) enrolled(email string, courseID uint) bool {
	var count int64
	s.db.Table("student_courses").
		Joins("JOIN students ON students.id = student_courses.student_id").
		Where("students.email = ? AND student_courses.course_id = ?", email, courseID).
		Count(&count)
	return count > 0
}

func (s *AttemptService) hasResponse(quizID uint, email string) bool {
	var count int64
	s.db.Model(&models.QuizResponse{}).
		Where("quiz_id = ? AND student_email = ?", quizID, email).
		Count(&count)
	return count > 0
}

// CheckAccess runs the ordered gate checks for a code submission. Each
// failure is distinct so the client can tell "wrong code" from "not
// enrolled" from "already submitted". Returns the quiz too so the caller
// can size the authorization cookie's lifetime to the quiz duration.
func (s *AttemptService) CheckAccess(quizID uint, quizCode, email string) (*QuizSummary, *models.Quiz, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, nil, err
	}
	if !quiz.Active {
		return nil, nil, Forbidden("quiz is not active")
	}
	if !s.enrolled(email, quiz.CourseID) {
		return nil, nil, Forbidden("you are not enrolled in this course")
	}
	if s.hasResponse(quizID, email) {
		return nil, nil, Conflict("quiz already submitted")
	}
	if quizCode != quiz.Code {
		return nil, nil, Forbidden("invalid quiz code")
	}

	courseName := ""
	if quiz.Course != nil {
		courseName = quiz.Course.Title
	}
	summary := &QuizSummary{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Minutes:      quiz.Minutes,
		NumQuestions: len(quiz.Questions),
		CourseName:   courseName,
	}
	return summary, quiz, nil
}

// Questions returns the quiz with sanitized questions. Sanitization is a
// projection at this boundary: the correct answer is dropped unconditionally
// before anything is handed to the client.
func (s *AttemptService) Questions(quizID uint, email string) (*QuizDetail, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.Active {
		return nil, Forbidden("quiz is not active")
	}
	if s.hasResponse(quizID, email) {
		return nil, Conflict("quiz already submitted")
	}

	questions := make([]SanitizedQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = SanitizedQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.OptionTexts(),
		}
	}

	courseName := ""
	if quiz.Course != nil {
		courseName = quiz.Course.Title
	}
	return &QuizDetail{
		ID:           quiz.ID,
		Title:        quiz.Title,
		CourseName:   courseName,
		NumQuestions: len(quiz.Questions),
		Minutes:      quiz.Minutes,
		Questions:    questions,
		Syllabus:     quiz.Syllabus,
	}, nil
}

// Submit scores the answers and persists the response. The score denominator
// is the quiz's declared question count, so partial submissions are scored
// against the full quiz. The composite unique index on quiz_responses backs
// up the existence check: if two submits race past it, the second insert
// fails and is reported as a conflict.
func (s *AttemptService) Submit(quizID uint, email string, answers []AnswerInput) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, Invalid("answers must not be empty")
	}

	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.Active {
		return nil, Forbidden("quiz is not active")
	}
	if s.hasResponse(quizID, email) {
		return nil, Conflict("quiz already submitted")
	}

	graded, correct := gradeAnswers(quiz.Questions, answers)
	score := 0
	if len(quiz.Questions) > 0 {
		score = int(math.Round(100 * float64(correct) / float64(len(quiz.Questions))))
	}

	response := models.QuizResponse{
		QuizID:       quizID,
		StudentEmail: email,
		Score:        score,
		SubmittedAt:  time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		for i := range graded {
			graded[i].ResponseID = response.ID
			if err := tx.Create(&graded[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("quiz already submitted")
		}
		return nil, err
	}

	return &SubmitResult{
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		CorrectAnswers: correct,
	}, nil
}

// gradeAnswers matches each submitted answer to a stored question by id,
// falling back to an exact text match for clients that lose question ids (a
// compatibility shim kept from the original client contract). Each stored
// question is graded at most once, first occurrence wins, so a submission
// repeating a question cannot push correct past the question count.
func gradeAnswers(questions []models.Question, answers []AnswerInput) ([]models.ResponseAnswer, int) {
	byID := make(map[uint]*models.Question, len(questions))
	byText := make(map[string]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
		byText[questions[i].Text] = &questions[i]
	}

	graded := make([]models.ResponseAnswer, 0, len(answers))
	seen := make(map[uint]bool, len(questions))
	correct := 0
	for _, a := range answers {
		q := byID[a.QuestionID]
		if q == nil {
			q = byText[a.QuestionText]
		}
		if q == nil || seen[q.ID] {
			continue
		}
		seen[q.ID] = true

		isCorrect := a.SelectedOption == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		graded = append(graded, models.ResponseAnswer{
			QuestionID:     q.ID,
			QuestionText:   q.Text,
			SelectedOption: a.SelectedOption,
			Correct:        isCorrect,
		})
	}
	return graded, correct
}

// AttachFeedback stores free-text feedback on an already-submitted response.
// Repeat calls overwrite the previous text.
func (s *AttemptService) AttachFeedback(quizID uint, email, feedback string) error {
	var response models.QuizResponse
	err := s.db.Where("quiz_id = ? AND student_email = ?", quizID, email).
		First(&response).Error
	if err != nil {
		return NotFound("no submission found for this quiz")
	}

	response.Feedback = feedback
	return s.db.Save(&response).Error
}
