package handlers

import (
	"net/http"
	"strconv"

	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type QuizRequest struct {
	Title     string                   `json:"title" binding:"required,min=1,max=255" example:"Midterm Review Quiz"`
	CourseID  uint                     `json:"course_id" binding:"required"`
	Time      int                      `json:"time" binding:"required,min=1" example:"30"`
	Syllabus  string                   `json:"syllabus"`
	Active    bool                     `json:"active"`
	Questions []services.QuestionInput `json:"questions" binding:"required,min=1"`
}

type ToggleActiveRequest struct {
	Active bool `json:"active"`
}

// ListQuizzes godoc
// @Summary      List quizzes
// @Description  All quizzes created by the authenticated faculty member
// @Tags         quizzes
// @Produce      json
// @Success      200 {array} Quiz
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes(c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// CreateQuiz godoc
// @Summary      Create a quiz
// @Description  Create a quiz with questions; a unique quiz code is generated
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        request body QuizRequest true "Quiz data"
// @Success      201 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.GetString("email"), services.QuizInput{
		Title:     req.Title,
		CourseID:  req.CourseID,
		Minutes:   req.Time,
		Syllabus:  req.Syllabus,
		Active:    req.Active,
		Questions: req.Questions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// GetQuiz godoc
// @Summary      Get a quiz
// @Description  Quiz with questions and correct answers, owner only
// @Tags         quizzes
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetQuiz(quizID, c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// UpdateQuiz godoc
// @Summary      Update a quiz
// @Description  Replace quiz metadata and question list
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body QuizRequest true "Quiz data"
// @Success      200 {object} Quiz
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(quizID, c.GetString("email"), services.QuizInput{
		Title:     req.Title,
		CourseID:  req.CourseID,
		Minutes:   req.Time,
		Syllabus:  req.Syllabus,
		Active:    req.Active,
		Questions: req.Questions,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// ToggleActive godoc
// @Summary      Activate or deactivate a quiz
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body ToggleActiveRequest true "Active flag"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/active [put]
func (h *QuizHandler) ToggleActive(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	var req ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.SetActive(quizID, c.GetString("email"), req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz
// @Tags         quizzes
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	if err := h.quizService.DeleteQuiz(quizID, c.GetString("email")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "quiz deleted"})
}

// ListResponses godoc
// @Summary      List quiz responses
// @Description  Score summary per submitting student, owner only
// @Tags         quizzes
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {array} services.ResponseSummary
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/responses [get]
func (h *QuizHandler) ListResponses(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	summaries, err := h.quizService.ListResponses(quizID, c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}
