package review

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	reviewService "github.com/ymatsuda/clinic-survey-api/internal/service/review"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
)

type Handler struct {
	service reviewService.ReviewServicer
}

func NewHandler(service reviewService.ReviewServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reviews", h.GenerateReview)
}

type generateRequest struct {
	SurveyID string `json:"survey_id" binding:"required,uuid"`
}

func (h *Handler) GenerateReview(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	surveyID, _ := uuid.Parse(req.SurveyID)

	result, err := h.service.GenerateForSurvey(c.Request.Context(), surveyID)
	if err != nil {
		// Generation failures carry a user-facing Japanese message even
		// when they are not typed application errors, so they are
		// surfaced instead of the generic internal-error text.
		if appErr, ok := apperrors.AsAppError(err); ok {
			handler.RespondError(c, appErr)
			return
		}
		log.Error().Err(err).Str("survey_id", req.SurveyID).Msg("review generation failed")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}
