package models

import "time"

// FeedbackTask is a faculty-created prompt asking enrolled students for
// free-text feedback on a course.
type FeedbackTask struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Course    *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Prompt    string    `gorm:"type:text" json:"prompt,omitempty"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedBy string    `gorm:"size:255;not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type CourseFeedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TaskID       uint      `gorm:"not null;uniqueIndex:idx_task_student" json:"task_id"`
	StudentEmail string    `gorm:"size:255;not null;uniqueIndex:idx_task_student" json:"email"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	Sentiment    string    `gorm:"size:20" json:"sentiment,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
