package models

import "time"

type Quiz struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:6;uniqueIndex;not null" json:"quiz_code"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	CourseID  uint           `gorm:"not null;index" json:"course_id"`
	Course    *Course        `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CreatedBy string         `gorm:"size:255;not null;index" json:"created_by"`
	Minutes   int            `gorm:"not null" json:"time"`
	Active    bool           `gorm:"not null;default:false" json:"active"`
	Syllabus  string         `gorm:"type:text" json:"syllabus,omitempty"`
	Questions []Question     `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	Responses []QuizResponse `gorm:"foreignKey:QuizID" json:"responses,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
