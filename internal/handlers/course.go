package handlers

import (
	"net/http"

	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

type CourseRequest struct {
	Code      string `json:"code" binding:"required,min=2,max=20" example:"CS301"`
	Title     string `json:"title" binding:"required,min=1,max=255" example:"Operating Systems"`
	FacultyID uint   `json:"faculty_id"`
}

type UpdateCourseRequest struct {
	Title     string `json:"title"`
	FacultyID uint   `json:"faculty_id"`
}

// CreateCourse godoc
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        request body CourseRequest true "Course data"
// @Success      201 {object} Course
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	course, err := h.courseService.CreateCourse(services.CourseInput{
		Code:      req.Code,
		Title:     req.Title,
		FacultyID: req.FacultyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// ListCourses godoc
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200 {array} Course
// @Router       /api/v1/courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id path int true "Course ID"
// @Success      200 {object} Course
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// UpdateCourse godoc
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id path int true "Course ID"
// @Param        request body UpdateCourseRequest true "Fields to update"
// @Success      200 {object} Course
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	course, err := h.courseService.UpdateCourse(id, services.CourseInput{
		Title:     req.Title,
		FacultyID: req.FacultyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary      Delete a course
// @Description  Refused while quizzes reference the course
// @Tags         courses
// @Produce      json
// @Param        id path int true "Course ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.courseService.DeleteCourse(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "course deleted"})
}
