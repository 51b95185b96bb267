package models

import "time"

type Faculty struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Department string    `gorm:"size:255" json:"department"`
	Courses    []Course  `gorm:"foreignKey:FacultyID" json:"courses,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
