package services

import (
	"strings"

	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"gorm.io/gorm"
)

// RosterService manages the student and faculty registries. Creating either
// also provisions the matching login user; deleting removes it.
type RosterService struct {
	db   *gorm.DB
	auth *AuthService
}

func NewRosterService(db *gorm.DB, auth *AuthService) *RosterService {
	return &RosterService{db: db, auth: auth}
}

type StudentInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Semester int    `json:"semester"`
}

type FacultyInput struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

func (s *RosterService) CreateStudent(input StudentInput) (*models.Student, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, Invalid("email is required")
	}

	semester := input.Semester
	if semester < 1 {
		semester = 1
	}
	student := models.Student{
		Email:    email,
		Name:     input.Name,
		Semester: semester,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.auth.CreateUser(tx, email, input.Name, input.Password, models.RoleStudent); err != nil {
			return err
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *RosterService) ListStudents() ([]models.Student, error) {
	var students []models.Student
	err := s.db.Preload("Courses").Order("email ASC").Find(&students).Error
	return students, err
}

func (s *RosterService) GetStudent(id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.Preload("Courses").First(&student, id).Error; err != nil {
		return nil, NotFound("student not found")
	}
	return &student, nil
}

func (s *RosterService) GetStudentByEmail(email string) (*models.Student, error) {
	var student models.Student
	if err := s.db.Preload("Courses").Where("email = ?", email).First(&student).Error; err != nil {
		return nil, NotFound("student not found")
	}
	return &student, nil
}

func (s *RosterService) UpdateStudent(id uint, name string, semester int) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, id).Error; err != nil {
		return nil, NotFound("student not found")
	}

	if name != "" {
		student.Name = name
	}
	if semester > 0 {
		student.Semester = semester
	}
	if err := s.db.Save(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *RosterService) DeleteStudent(id uint) error {
	var student models.Student
	if err := s.db.First(&student, id).Error; err != nil {
		return NotFound("student not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM student_courses WHERE student_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("email = ?", student.Email).Delete(&models.User{}).Error; err != nil {
			return err
		}
		return tx.Delete(&student).Error
	})
}

func (s *RosterService) Enroll(studentID, courseID uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		return nil, NotFound("student not found")
	}
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		return nil, NotFound("course not found")
	}

	if err := s.db.Model(&student).Association("Courses").Append(&course); err != nil {
		return nil, err
	}
	return s.GetStudent(studentID)
}

func (s *RosterService) Unenroll(studentID, courseID uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, studentID).Error; err != nil {
		return nil, NotFound("student not found")
	}
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		return nil, NotFound("course not found")
	}

	if err := s.db.Model(&student).Association("Courses").Delete(&course); err != nil {
		return nil, err
	}
	return s.GetStudent(studentID)
}

func (s *RosterService) CreateFaculty(input FacultyInput) (*models.Faculty, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, Invalid("email is required")
	}

	faculty := models.Faculty{
		Email:      email,
		Name:       input.Name,
		Department: input.Department,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.auth.CreateUser(tx, email, input.Name, input.Password, models.RoleFaculty); err != nil {
			return err
		}
		return tx.Create(&faculty).Error
	})
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (s *RosterService) ListFaculty() ([]models.Faculty, error) {
	var faculty []models.Faculty
	err := s.db.Preload("Courses").Order("email ASC").Find(&faculty).Error
	return faculty, err
}

func (s *RosterService) GetFaculty(id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.db.Preload("Courses").First(&faculty, id).Error; err != nil {
		return nil, NotFound("faculty not found")
	}
	return &faculty, nil
}

func (s *RosterService) GetFacultyByEmail(email string) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.db.Where("email = ?", email).First(&faculty).Error; err != nil {
		return nil, NotFound("faculty not found")
	}
	return &faculty, nil
}

func (s *RosterService) UpdateFaculty(id uint, name, department string) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.db.First(&faculty, id).Error; err != nil {
		return nil, NotFound("faculty not found")
	}

	if name != "" {
		faculty.Name = name
	}
	if department != "" {
		faculty.Department = department
	}
	if err := s.db.Save(&faculty).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (s *RosterService) DeleteFaculty(id uint) error {
	var faculty models.Faculty
	if err := s.db.First(&faculty, id).Error; err != nil {
		return NotFound("faculty not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", faculty.Email).Delete(&models.User{}).Error; err != nil {
			return err
		}
		return tx.Delete(&faculty).Error
	})
}
