package services

import (
	"log"
	"strings"
	"time"

	"github.com/omkar-107/opine-bot-sub000/internal/botclient"
	"github.com/omkar-107/opine-bot-sub000/internal/models"

	"gorm.io/gorm"
)

// TaskService manages feedback tasks: faculty open them against their
// courses, enrolled students answer them once (resubmission overwrites).
type TaskService struct {
	db  *gorm.DB
	bot *botclient.Client
}

func NewTaskService(db *gorm.DB, bot *botclient.Client) *TaskService {
	return &TaskService{db: db, bot: bot}
}

type TaskInput struct {
	CourseID uint   `json:"course_id"`
	Title    string `json:"title"`
	Prompt   string `json:"prompt"`
}

func (s *TaskService) ownsCourse(facultyEmail string, courseID uint) (*models.Course, error) {
	var faculty models.Faculty
	if err := s.db.Where("email = ?", facultyEmail).First(&faculty).Error; err != nil {
		return nil, Forbidden("faculty profile not found")
	}
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		return nil, NotFound("course not found")
	}
	if course.FacultyID != faculty.ID {
		return nil, Forbidden("course is not assigned to you")
	}
	return &course, nil
}

func (s *TaskService) CreateTask(facultyEmail string, input TaskInput) (*models.FeedbackTask, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, Invalid("title is required")
	}
	if _, err := s.ownsCourse(facultyEmail, input.CourseID); err != nil {
		return nil, err
	}

	task := models.FeedbackTask{
		CourseID:  input.CourseID,
		Title:     input.Title,
		Prompt:    input.Prompt,
		Active:    true,
		CreatedBy: facultyEmail,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTasks(facultyEmail string) ([]models.FeedbackTask, error) {
	var tasks []models.FeedbackTask
	err := s.db.Where("created_by = ?", facultyEmail).
		Preload("Course").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (s *TaskService) SetActive(taskID uint, facultyEmail string, active bool) (*models.FeedbackTask, error) {
	var task models.FeedbackTask
	if err := s.db.Where("id = ? AND created_by = ?", taskID, facultyEmail).First(&task).Error; err != nil {
		return nil, NotFound("task not found")
	}

	task.Active = active
	if err := s.db.Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTaskFeedback(taskID uint, facultyEmail string) ([]models.CourseFeedback, error) {
	var task models.FeedbackTask
	if err := s.db.Where("id = ? AND created_by = ?", taskID, facultyEmail).First(&task).Error; err != nil {
		return nil, NotFound("task not found")
	}

	var feedback []models.CourseFeedback
	err := s.db.Where("task_id = ?", taskID).
		Order("submitted_at ASC").
		Find(&feedback).Error
	return feedback, err
}

// OpenTasks lists active tasks for the student's enrolled courses that the
// student has not answered yet.
func (s *TaskService) OpenTasks(studentEmail string) ([]models.FeedbackTask, error) {
	var tasks []models.FeedbackTask
	err := s.db.
		Joins("JOIN student_courses ON student_courses.course_id = feedback_tasks.course_id").
		Joins("JOIN students ON students.id = student_courses.student_id").
		Where("students.email = ? AND feedback_tasks.active = ?", studentEmail, true).
		Where("feedback_tasks.id NOT IN (SELECT task_id FROM course_feedbacks WHERE student_email = ?)", studentEmail).
		Preload("Course").
		Order("feedback_tasks.created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// SubmitFeedback records a student's answer to a task. A repeat call
// overwrites the earlier text. The collected text is pushed to the external
// feedback engine asynchronously; engine failures never fail the submission.
func (s *TaskService) SubmitFeedback(taskID uint, studentEmail, text string) (*models.CourseFeedback, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Invalid("feedback text is required")
	}

	var task models.FeedbackTask
	if err := s.db.Preload("Course").First(&task, taskID).Error; err != nil {
		return nil, NotFound("task not found")
	}
	if !task.Active {
		return nil, Forbidden("task is closed")
	}

	var count int64
	s.db.Table("student_courses").
		Joins("JOIN students ON students.id = student_courses.student_id").
		Where("students.email = ? AND student_courses.course_id = ?", studentEmail, task.CourseID).
		Count(&count)
	if count == 0 {
		return nil, Forbidden("you are not enrolled in this course")
	}

	var feedback models.CourseFeedback
	err := s.db.Where("task_id = ? AND student_email = ?", taskID, studentEmail).First(&feedback).Error
	if err == nil {
		feedback.Text = text
		if err := s.db.Save(&feedback).Error; err != nil {
			return nil, err
		}
	} else {
		feedback = models.CourseFeedback{
			TaskID:       taskID,
			StudentEmail: studentEmail,
			Text:         text,
			SubmittedAt:  time.Now(),
		}
		if err := s.db.Create(&feedback).Error; err != nil {
			return nil, err
		}
	}

	if s.bot.Enabled() {
		courseCode := ""
		if task.Course != nil {
			courseCode = task.Course.Code
		}
		push := botclient.FeedbackPush{
			TaskID:       taskID,
			CourseCode:   courseCode,
			StudentEmail: studentEmail,
			Text:         text,
		}
		go func() {
			if err := s.bot.PushFeedback(push); err != nil {
				log.Printf("feedback engine push failed: %v", err)
			}
		}()
	}

	return &feedback, nil
}
