package models

import "time"

type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	FacultyID uint      `gorm:"index" json:"faculty_id"`
	Faculty   *Faculty  `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
