package handlers

import (
	"net/http"
	"strconv"

	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/response"
	"trivia-coffee-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TriviaHandler struct {
	trivia *services.TriviaService
	log    *logger.Logger
}

func NewTriviaHandler(trivia *services.TriviaService, log *logger.Logger) *TriviaHandler {
	return &TriviaHandler{trivia: trivia, log: log.With("handler", "trivia")}
}

// Numeric fields are pointers so that 0 satisfies "required".
type CreateQuestionRequest struct {
	Question   string   `json:"question" binding:"required" example:"Who discovered penicillin?"`
	Answer     string   `json:"answer" binding:"required" example:"Alexander Fleming"`
	Difficulty *flexInt `json:"difficulty" binding:"required" example:"3"`
	Category   *flexInt `json:"category" binding:"required" example:"0"`
}

type SearchRequest struct {
	SearchTerm *string `json:"searchTerm" binding:"required" example:"title"`
}

// QuizCategoryRequest mirrors the frontend's selector: type "click" is the
// "all categories" button, anything else must carry a category index.
type QuizCategoryRequest struct {
	Type string   `json:"type" example:"click"`
	ID   *flexInt `json:"id" binding:"required_unless=Type click" example:"0"`
}

type QuizRequest struct {
	PreviousQuestions []uint               `json:"previous_questions" binding:"required"`
	QuizCategory      *QuizCategoryRequest `json:"quiz_category" binding:"required"`
}

func (h *TriviaHandler) fail(c *gin.Context, err error, fallback int) {
	renderError(c, h.log, TriviaMessages, err, fallback)
}

// ListCategories godoc
// @Summary      List category labels
// @Tags         categories
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorEnvelope
// @Router       /categories [get]
func (h *TriviaHandler) ListCategories(c *gin.Context) {
	labels, err := h.trivia.CategoryLabels(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"categories": labels})
}

// ListQuestions godoc
// @Summary      List questions, ten per page
// @Tags         questions
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorEnvelope
// @Router       /questions [get]
func (h *TriviaHandler) ListQuestions(c *gin.Context) {
	page, err := h.trivia.ListQuestions(c.Request.Context(), queryPage(c))
	if err != nil {
		h.fail(c, err, http.StatusNotFound)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"categories":       page.Categories,
		"current_category": page.CurrentCategory,
	})
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Param        id path int true "Question ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorEnvelope
// @Router       /question/{id} [delete]
func (h *TriviaHandler) DeleteQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		TriviaMessages.Abort(c, http.StatusNotFound)
		return
	}

	if err := h.trivia.DeleteQuestion(c.Request.Context(), uint(id)); err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}

	h.log.Info("question deleted", "question_id", id)
	response.OK(c, http.StatusOK, nil)
}

// CreateQuestion godoc
// @Summary      Add a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        request body CreateQuestionRequest true "Question data"
// @Success      200 {object} map[string]interface{}
// @Failure      422 {object} ErrorEnvelope
// @Router       /questions [post]
func (h *TriviaHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badBody(err), http.StatusUnprocessableEntity)
		return
	}

	question, err := h.trivia.CreateQuestion(c.Request.Context(), services.QuestionInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: int(*req.Difficulty),
		Category:   int(*req.Category),
	})
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}

	h.log.Info("question created", "question_id", question.ID, "category", question.Category)
	response.OK(c, http.StatusOK, nil)
}

// SearchQuestions godoc
// @Summary      Case-insensitive search over question text
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        request body SearchRequest true "Search term"
// @Success      200 {object} map[string]interface{}
// @Failure      422 {object} ErrorEnvelope
// @Router       /questions/search [post]
func (h *TriviaHandler) SearchQuestions(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badBody(err), http.StatusUnprocessableEntity)
		return
	}

	ctx := c.Request.Context()
	questions, err := h.trivia.SearchQuestions(ctx, *req.SearchTerm)
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	current, err := h.trivia.DefaultCategory(ctx)
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"questions":       questions,
		"total_questions": len(questions),
		"currentCategory": current,
	})
}

// QuestionsByCategory godoc
// @Summary      List questions of one category, ten per page
// @Tags         questions
// @Produce      json
// @Param        id path int true "Category index (0-based)"
// @Param        page query int false "Page number" default(1)
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorEnvelope
// @Failure      422 {object} ErrorEnvelope
// @Router       /category/{id}/questions [get]
func (h *TriviaHandler) QuestionsByCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		TriviaMessages.Abort(c, http.StatusNotFound)
		return
	}

	page, err := h.trivia.QuestionsByCategory(c.Request.Context(), id, queryPage(c))
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"current_category": page.CurrentCategory,
	})
}

// PlayQuiz godoc
// @Summary      Draw the next unseen quiz question
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        request body QuizRequest true "Previously seen ids and category"
// @Success      200 {object} map[string]interface{}
// @Failure      422 {object} ErrorEnvelope
// @Router       /quizzes [post]
func (h *TriviaHandler) PlayQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badBody(err), http.StatusUnprocessableEntity)
		return
	}

	question, ok, err := h.trivia.NextQuizQuestion(c.Request.Context(), req.PreviousQuestions, quizCategory(req.QuizCategory))
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	if !ok {
		response.OK(c, http.StatusOK, nil)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"question": question})
}

// quizCategory expects a request that passed binding, so ID is set unless
// the type is "click".
func quizCategory(req *QuizCategoryRequest) services.QuizCategory {
	if req.Type == "click" {
		return services.QuizCategory{Any: true}
	}
	return services.QuizCategory{ID: int(*req.ID)}
}
