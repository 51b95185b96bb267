package services

import (
	"strings"

	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"gorm.io/gorm"
)

type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

type CourseInput struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	FacultyID uint   `json:"faculty_id"`
}

func (s *CourseService) CreateCourse(input CourseInput) (*models.Course, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" || strings.TrimSpace(input.Title) == "" {
		return nil, Invalid("code and title are required")
	}

	var existing models.Course
	if err := s.db.Where("code = ?", code).First(&existing).Error; err == nil {
		return nil, Conflict("course code already exists")
	}

	if input.FacultyID != 0 {
		var faculty models.Faculty
		if err := s.db.First(&faculty, input.FacultyID).Error; err != nil {
			return nil, NotFound("faculty not found")
		}
	}

	course := models.Course{
		Code:      code,
		Title:     input.Title,
		FacultyID: input.FacultyID,
	}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) ListCourses() ([]models.Course, error) {
	var courses []models.Course
	err := s.db.Preload("Faculty").Order("code ASC").Find(&courses).Error
	return courses, err
}

func (s *CourseService) GetCourse(id uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.Preload("Faculty").First(&course, id).Error; err != nil {
		return nil, NotFound("course not found")
	}
	return &course, nil
}

func (s *CourseService) UpdateCourse(id uint, input CourseInput) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, id).Error; err != nil {
		return nil, NotFound("course not found")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.FacultyID != 0 {
		var faculty models.Faculty
		if err := s.db.First(&faculty, input.FacultyID).Error; err != nil {
			return nil, NotFound("faculty not found")
		}
		course.FacultyID = input.FacultyID
	}
	if err := s.db.Save(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) DeleteCourse(id uint) error {
	var course models.Course
	if err := s.db.First(&course, id).Error; err != nil {
		return NotFound("course not found")
	}

	var quizCount int64
	s.db.Model(&models.Quiz{}).Where("course_id = ?", id).Count(&quizCount)
	if quizCount > 0 {
		return Conflict("course has quizzes attached")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM student_courses WHERE course_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
}
