package handlers

import (
	"net/http"

	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type RosterHandler struct {
	rosterService *services.RosterService
}

func NewRosterHandler(rosterService *services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

type CreateStudentRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=6"`
	Semester int    `json:"semester"`
}

type UpdateStudentRequest struct {
	Name     string `json:"name"`
	Semester int    `json:"semester"`
}

type CreateFacultyRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required,min=1,max=255"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department"`
}

type UpdateFacultyRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

type EnrollRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

// CreateStudent godoc
// @Summary      Register a student
// @Description  Create a student record and its login user
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        request body CreateStudentRequest true "Student data"
// @Success      201 {object} Student
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/students [post]
func (h *RosterHandler) CreateStudent(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	student, err := h.rosterService.CreateStudent(services.StudentInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Semester: req.Semester,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// ListStudents godoc
// @Summary      List students
// @Tags         roster
// @Produce      json
// @Success      200 {array} Student
// @Router       /api/v1/students [get]
func (h *RosterHandler) ListStudents(c *gin.Context) {
	students, err := h.rosterService.ListStudents()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// GetStudent godoc
// @Summary      Get a student with enrollments
// @Tags         roster
// @Produce      json
// @Param        id path int true "Student ID"
// @Success      200 {object} Student
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/students/{id} [get]
func (h *RosterHandler) GetStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	student, err := h.rosterService.GetStudent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpdateStudent godoc
// @Summary      Update a student
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        id path int true "Student ID"
// @Param        request body UpdateStudentRequest true "Fields to update"
// @Success      200 {object} Student
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/students/{id} [put]
func (h *RosterHandler) UpdateStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	student, err := h.rosterService.UpdateStudent(id, req.Name, req.Semester)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudent godoc
// @Summary      Delete a student and its login
// @Tags         roster
// @Produce      json
// @Param        id path int true "Student ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/students/{id} [delete]
func (h *RosterHandler) DeleteStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.rosterService.DeleteStudent(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "student deleted"})
}

// Enroll godoc
// @Summary      Enroll a student in a course
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        id path int true "Student ID"
// @Param        request body EnrollRequest true "Course"
// @Success      200 {object} Student
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/students/{id}/enroll [post]
func (h *RosterHandler) Enroll(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	student, err := h.rosterService.Enroll(id, req.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// Unenroll godoc
// @Summary      Remove a student from a course
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        id path int true "Student ID"
// @Param        request body EnrollRequest true "Course"
// @Success      200 {object} Student
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/students/{id}/unenroll [post]
func (h *RosterHandler) Unenroll(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	student, err := h.rosterService.Unenroll(id, req.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// MyStudentProfile godoc
// @Summary      Current student's profile
// @Description  Student record with enrollments for the logged-in student
// @Tags         roster
// @Produce      json
// @Success      200 {object} Student
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/students/me [get]
func (h *RosterHandler) MyStudentProfile(c *gin.Context) {
	student, err := h.rosterService.GetStudentByEmail(c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// CreateFaculty godoc
// @Summary      Register a faculty member
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        request body CreateFacultyRequest true "Faculty data"
// @Success      201 {object} Faculty
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/faculty [post]
func (h *RosterHandler) CreateFaculty(c *gin.Context) {
	var req CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	faculty, err := h.rosterService.CreateFaculty(services.FacultyInput{
		Email:      req.Email,
		Name:       req.Name,
		Password:   req.Password,
		Department: req.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, faculty)
}

// ListFaculty godoc
// @Summary      List faculty
// @Tags         roster
// @Produce      json
// @Success      200 {array} Faculty
// @Router       /api/v1/faculty [get]
func (h *RosterHandler) ListFaculty(c *gin.Context) {
	faculty, err := h.rosterService.ListFaculty()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}

// GetFaculty godoc
// @Summary      Get a faculty member
// @Tags         roster
// @Produce      json
// @Param        id path int true "Faculty ID"
// @Success      200 {object} Faculty
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/faculty/{id} [get]
func (h *RosterHandler) GetFaculty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	faculty, err := h.rosterService.GetFaculty(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}

// UpdateFaculty godoc
// @Summary      Update a faculty member
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        id path int true "Faculty ID"
// @Param        request body UpdateFacultyRequest true "Fields to update"
// @Success      200 {object} Faculty
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/faculty/{id} [put]
func (h *RosterHandler) UpdateFaculty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	faculty, err := h.rosterService.UpdateFaculty(id, req.Name, req.Department)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}

// DeleteFaculty godoc
// @Summary      Delete a faculty member and its login
// @Tags         roster
// @Produce      json
// @Param        id path int true "Faculty ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/faculty/{id} [delete]
func (h *RosterHandler) DeleteFaculty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.rosterService.DeleteFaculty(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "faculty deleted"})
}

// MyFacultyProfile godoc
// @Summary      Current faculty member's profile
// @Description  Faculty record for the logged-in faculty member
// @Tags         roster
// @Produce      json
// @Success      200 {object} Faculty
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/faculty/me [get]
func (h *RosterHandler) MyFacultyProfile(c *gin.Context) {
	faculty, err := h.rosterService.GetFacultyByEmail(c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}
