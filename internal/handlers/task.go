package handlers

import (
	"net/http"

	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type TaskRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Prompt   string `json:"prompt"`
}

type TaskFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

type TaskActiveRequest struct {
	Active bool `json:"active"`
}

// CreateTask godoc
// @Summary      Open a feedback task
// @Description  Faculty opens a feedback prompt for one of their courses
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body TaskRequest true "Task data"
// @Success      201 {object} FeedbackTask
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(c.GetString("email"), services.TaskInput{
		CourseID: req.CourseID,
		Title:    req.Title,
		Prompt:   req.Prompt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// ListTasks godoc
// @Summary      List own feedback tasks
// @Tags         tasks
// @Produce      json
// @Success      200 {array} FeedbackTask
// @Router       /api/v1/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// SetTaskActive godoc
// @Summary      Open or close a feedback task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path int true "Task ID"
// @Param        request body TaskActiveRequest true "Active flag"
// @Success      200 {object} FeedbackTask
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/tasks/{id}/active [put]
func (h *TaskHandler) SetTaskActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TaskActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.taskService.SetActive(id, c.GetString("email"), req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListTaskFeedback godoc
// @Summary      Read collected feedback for a task
// @Tags         tasks
// @Produce      json
// @Param        id path int true "Task ID"
// @Success      200 {array} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/tasks/{id}/feedback [get]
func (h *TaskHandler) ListTaskFeedback(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	feedback, err := h.taskService.ListTaskFeedback(id, c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// OpenTasks godoc
// @Summary      List open feedback tasks for the current student
// @Description  Active tasks on enrolled courses the student has not answered
// @Tags         tasks
// @Produce      json
// @Success      200 {array} FeedbackTask
// @Router       /api/v1/tasks/open [get]
func (h *TaskHandler) OpenTasks(c *gin.Context) {
	tasks, err := h.taskService.OpenTasks(c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// SubmitTaskFeedback godoc
// @Summary      Answer a feedback task
// @Description  One answer per student per task; a repeat call overwrites
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path int true "Task ID"
// @Param        request body TaskFeedbackRequest true "Feedback text"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/tasks/{id}/feedback [post]
func (h *TaskHandler) SubmitTaskFeedback(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TaskFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := h.taskService.SubmitFeedback(id, c.GetString("email"), req.Feedback); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "feedback recorded"})
}
