package handlers

import (
	"net/http"
	"strconv"

	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

// QuizTicketCookie carries the quiz-scoped authorization issued by a
// successful code check. It is the only session state in the attempt flow.
const QuizTicketCookie = "quiz_auth"

type AttemptHandler struct {
	attemptService *services.AttemptService
	ticketService  *services.TicketService
}

func NewAttemptHandler(attemptService *services.AttemptService, ticketService *services.TicketService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService, ticketService: ticketService}
}

type CheckCodeRequest struct {
	QuizCode string `json:"quiz_code" binding:"required" example:"K7M2PX"`
}

type SubmitRequest struct {
	Answers []services.AnswerInput `json:"answers" binding:"required"`
}

type QuizFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

func quizIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quiz id"})
		return 0, false
	}
	return uint(id), true
}

// ticket reads and validates the quiz authorization cookie and enforces that
// it was issued for the quiz in the path. A cookie for another quiz is a
// distinct failure from a missing one.
func (h *AttemptHandler) ticket(c *gin.Context, quizID uint) (*services.Ticket, bool) {
	raw, err := c.Cookie(QuizTicketCookie)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "quiz authorization required"})
		return nil, false
	}

	ticket, err := h.ticketService.Parse(raw)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if ticket.QuizID != quizID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "authorization is for a different quiz"})
		return nil, false
	}
	return ticket, true
}

// CheckCode godoc
// @Summary      Check a quiz code
// @Description  Validate the quiz code and issue the quiz authorization cookie
// @Tags         attempt
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body CheckCodeRequest true "Quiz code"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/quiz/{id}/check-code [post]
func (h *AttemptHandler) CheckCode(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	var req CheckCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	email := c.GetString("email")
	summary, quiz, err := h.attemptService.CheckAccess(quizID, req.QuizCode, email)
	if err != nil {
		respondError(c, err)
		return
	}

	token, _, err := h.ticketService.Issue(email, quizID, quiz.Minutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to authorize quiz"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(QuizTicketCookie, token, quiz.Minutes*60, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"quiz": summary})
}

// InspectTicket godoc
// @Summary      Inspect the quiz authorization cookie
// @Description  Structural check of the existing authorization, no database access
// @Tags         attempt
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/quiz/{id}/check-code [get]
func (h *AttemptHandler) InspectTicket(c *gin.Context) {
	raw, err := c.Cookie(QuizTicketCookie)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no quiz authorization"})
		return
	}

	ticket, err := h.ticketService.Parse(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": ticket.Authorized,
		"stu_email":  ticket.StudentEmail,
		"quiz_id":    ticket.QuizID,
	})
}

// Questions godoc
// @Summary      Fetch sanitized quiz questions
// @Description  Requires the quiz authorization cookie; correct answers are stripped
// @Tags         attempt
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/quiz/{id}/questions [get]
func (h *AttemptHandler) Questions(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	ticket, ok := h.ticket(c, quizID)
	if !ok {
		return
	}

	detail, err := h.attemptService.Questions(quizID, ticket.StudentEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz": detail})
}

// Submit godoc
// @Summary      Submit quiz answers
// @Description  Score the answers, persist the response, clear the authorization cookie
// @Tags         attempt
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body SubmitRequest true "Answers"
// @Success      200 {object} services.SubmitResult
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/quiz/{id}/submit [post]
func (h *AttemptHandler) Submit(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	ticket, ok := h.ticket(c, quizID)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.attemptService.Submit(quizID, ticket.StudentEmail, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	// one-shot credential: a submitted ticket cannot be replayed
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(QuizTicketCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, result)
}

// Feedback godoc
// @Summary      Attach feedback to a submitted quiz
// @Description  Requires the identity cookie; the quiz cookie is already cleared by then
// @Tags         attempt
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body QuizFeedbackRequest true "Feedback text"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{id}/feedback [post]
func (h *AttemptHandler) Feedback(c *gin.Context) {
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	var req QuizFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.attemptService.AttachFeedback(quizID, c.GetString("email"), req.Feedback); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "feedback recorded"})
}
