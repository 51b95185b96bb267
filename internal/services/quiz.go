package services

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"gorm.io/gorm"
)

const optionsPerQuestion = 4

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type QuestionInput struct {
	Text          string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type QuizInput struct {
	Title     string          `json:"title"`
	CourseID  uint            `json:"course_id"`
	Minutes   int             `json:"time"`
	Syllabus  string          `json:"syllabus"`
	Active    bool            `json:"active"`
	Questions []QuestionInput `json:"questions"`
}

func validateQuestion(q QuestionInput) error {
	if strings.TrimSpace(q.Text) == "" {
		return Invalid("question text is required")
	}
	if len(q.Options) != optionsPerQuestion {
		return Invalid("each question needs exactly 4 options")
	}
	found := false
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return Invalid("options must not be empty")
		}
		if o == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return Invalid("correct answer must be one of the options")
	}
	return nil
}

func validateQuizInput(input QuizInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return Invalid("title is required")
	}
	if input.Minutes <= 0 {
		return Invalid("time must be a positive number of minutes")
	}
	if len(input.Questions) == 0 {
		return Invalid("quiz needs at least one question")
	}
	for _, q := range input.Questions {
		if err := validateQuestion(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *QuizService) ListQuizzes(createdBy string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("created_by = ?", createdBy).
		Preload("Course").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *QuizService) GetQuiz(quizID uint, createdBy string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND created_by = ?", quizID, createdBy).
		Preload("Course").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&quiz).Error
	if err != nil {
		return nil, NotFound("quiz not found")
	}
	return &quiz, nil
}

func (s *QuizService) CreateQuiz(createdBy string, input QuizInput) (*models.Quiz, error) {
	if err := validateQuizInput(input); err != nil {
		return nil, err
	}

	var course models.Course
	if err := s.db.First(&course, input.CourseID).Error; err != nil {
		return nil, NotFound("course not found")
	}

	quiz := models.Quiz{
		Code:      s.generateUniqueCode(),
		Title:     input.Title,
		CourseID:  input.CourseID,
		CreatedBy: createdBy,
		Minutes:   input.Minutes,
		Active:    input.Active,
		Syllabus:  input.Syllabus,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		return insertQuestions(tx, quiz.ID, input.Questions)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID, createdBy)
}

// UpdateQuiz replaces the quiz metadata and its full question list. Edits
// run through the same validation as creation so a stored correct answer can
// never drift away from its options.
func (s *QuizService) UpdateQuiz(quizID uint, createdBy string, input QuizInput) (*models.Quiz, error) {
	if err := validateQuizInput(input); err != nil {
		return nil, err
	}

	var quiz models.Quiz
	if err := s.db.Where("id = ? AND created_by = ?", quizID, createdBy).First(&quiz).Error; err != nil {
		return nil, NotFound("quiz not found")
	}

	var course models.Course
	if err := s.db.First(&course, input.CourseID).Error; err != nil {
		return nil, NotFound("course not found")
	}

	quiz.Title = input.Title
	quiz.CourseID = input.CourseID
	quiz.Minutes = input.Minutes
	quiz.Syllabus = input.Syllabus
	quiz.Active = input.Active

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&quiz).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (SELECT id FROM questions WHERE quiz_id = ?)", quizID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return insertQuestions(tx, quizID, input.Questions)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuiz(quizID, createdBy)
}

func insertQuestions(tx *gorm.DB, quizID uint, inputs []QuestionInput) error {
	for i, in := range inputs {
		question := models.Question{
			QuizID:        quizID,
			Text:          in.Text,
			OrderNum:      i,
			CorrectAnswer: in.CorrectAnswer,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for j, text := range in.Options {
			opt := models.Option{
				QuestionID: question.ID,
				Text:       text,
				OrderNum:   j,
			}
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *QuizService) SetActive(quizID uint, createdBy string, active bool) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND created_by = ?", quizID, createdBy).First(&quiz).Error; err != nil {
		return nil, NotFound("quiz not found")
	}

	quiz.Active = active
	if err := s.db.Save(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) DeleteQuiz(quizID uint, createdBy string) error {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND created_by = ?", quizID, createdBy).First(&quiz).Error; err != nil {
		return NotFound("quiz not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN (SELECT id FROM questions WHERE quiz_id = ?)", quizID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("response_id IN (SELECT id FROM quiz_responses WHERE quiz_id = ?)", quizID).Delete(&models.ResponseAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.QuizResponse{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
}

type ResponseSummary struct {
	Email       string `json:"email"`
	Score       int    `json:"score"`
	Feedback    string `json:"feedback,omitempty"`
	SubmittedAt string `json:"submitted_at"`
}

func (s *QuizService) ListResponses(quizID uint, createdBy string) ([]ResponseSummary, error) {
	var quiz models.Quiz
	if err := s.db.Where("id = ? AND created_by = ?", quizID, createdBy).First(&quiz).Error; err != nil {
		return nil, NotFound("quiz not found")
	}

	var responses []models.QuizResponse
	if err := s.db.Where("quiz_id = ?", quizID).
		Order("submitted_at ASC").
		Find(&responses).Error; err != nil {
		return nil, err
	}

	summaries := make([]ResponseSummary, len(responses))
	for i, r := range responses {
		summaries[i] = ResponseSummary{
			Email:       r.StudentEmail,
			Score:       r.Score,
			Feedback:    r.Feedback,
			SubmittedAt: r.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return summaries, nil
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func (s *QuizService) generateUniqueCode() string {
	for {
		code := randomCode(6)
		var count int64
		s.db.Model(&models.Quiz{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}

func randomCode(length int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String()
}
