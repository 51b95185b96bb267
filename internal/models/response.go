package models

import "time"

// QuizResponse is one student's recorded attempt at one quiz. The composite
// unique index guarantees at most one response per (quiz, student) pair even
// when two submits race past the pre-insert existence check.
type QuizResponse struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	QuizID       uint             `gorm:"not null;uniqueIndex:idx_quiz_student" json:"quiz_id"`
	StudentEmail string           `gorm:"size:255;not null;uniqueIndex:idx_quiz_student" json:"email"`
	Answers      []ResponseAnswer `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
	Score        int              `gorm:"not null;default:0" json:"score"`
	Feedback     string           `gorm:"type:text" json:"feedback,omitempty"`
	SubmittedAt  time.Time        `json:"submitted_at"`
}

type ResponseAnswer struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ResponseID     uint   `gorm:"not null;index" json:"response_id"`
	QuestionID     uint   `gorm:"not null" json:"question_id"`
	QuestionText   string `gorm:"type:text;not null" json:"question_text"`
	SelectedOption string `gorm:"size:500;not null" json:"selected_option"`
	Correct        bool   `gorm:"not null" json:"correct"`
}
