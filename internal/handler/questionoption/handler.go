package questionoption

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	"github.com/ymatsuda/clinic-survey-api/internal/model"
	optionService "github.com/ymatsuda/clinic-survey-api/internal/service/questionoption"
)

type Handler struct {
	service optionService.QuestionOptionServicer
}

func NewHandler(service optionService.QuestionOptionServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/question-options", h.ListOptions)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	options := r.Group("/question-options")
	{
		options.POST("", h.CreateOption)
		options.PUT("/:id", h.UpdateOption)
		options.DELETE("/:id", h.DeleteOption)
		options.POST("/reorder", h.Reorder)
	}
}

type createOptionRequest struct {
	Category     string `json:"category" binding:"required"`
	Label        string `json:"label" binding:"required"`
	Value        string `json:"value" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

type updateOptionRequest struct {
	Label        string `json:"label" binding:"required"`
	Value        string `json:"value" binding:"required"`
	DisplayOrder *int   `json:"display_order"`
}

type reorderRequest struct {
	OptionIDs []string `json:"option_ids" binding:"required"`
}

func (h *Handler) ListOptions(c *gin.Context) {
	var category *model.OptionCategory
	if raw := c.Query("category"); raw != "" {
		cat := model.OptionCategory(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid option category"))
			return
		}
		category = &cat
	}

	grouped, err := h.service.ListGrouped(c.Request.Context(), category)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(grouped))
}

func (h *Handler) CreateOption(c *gin.Context) {
	var req createOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	option := &model.QuestionOption{
		Category:     model.OptionCategory(req.Category),
		Label:        req.Label,
		Value:        req.Value,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.service.CreateOption(c.Request.Context(), option); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(option))
}

func (h *Handler) UpdateOption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid option ID"))
		return
	}

	var req updateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	option, err := h.service.UpdateOption(c.Request.Context(), id, req.Label, req.Value, req.DisplayOrder)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(option))
}

func (h *Handler) DeleteOption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid option ID"))
		return
	}

	if err := h.service.DeleteOption(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}

func (h *Handler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	ids := make([]uuid.UUID, 0, len(req.OptionIDs))
	for _, raw := range req.OptionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid option ID in list"))
			return
		}
		ids = append(ids, id)
	}

	if err := h.service.Reorder(c.Request.Context(), ids); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"reordered": len(ids)}))
}
