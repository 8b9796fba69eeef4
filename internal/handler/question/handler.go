package question

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	questionService "github.com/ymatsuda/clinic-survey-api/internal/service/question"
)

type Handler struct {
	service questionService.QuestionServicer
}

func NewHandler(service questionService.QuestionServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/questions", h.ListQuestions)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.PUT("/questions/:key", h.UpsertQuestion)
}

type upsertQuestionRequest struct {
	Label string `json:"label" binding:"required"`
}

func (h *Handler) ListQuestions(c *gin.Context) {
	questions, err := h.service.ListQuestions(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(questions))
}

func (h *Handler) UpsertQuestion(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("question key is required"))
		return
	}

	var req upsertQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	question, err := h.service.UpsertQuestion(c.Request.Context(), key, req.Label)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(question))
}
