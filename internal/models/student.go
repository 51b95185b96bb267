package models

import "time"

type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Semester  int       `gorm:"not null;default:1" json:"semester"`
	Courses   []Course  `gorm:"many2many:student_courses" json:"courses,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
