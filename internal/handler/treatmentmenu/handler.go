package treatmentmenu

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	menuService "github.com/ymatsuda/clinic-survey-api/internal/service/treatmentmenu"
)

type Handler struct {
	service menuService.TreatmentMenuServicer
}

func NewHandler(service menuService.TreatmentMenuServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/treatment-menus", h.ListMenus)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	menus := r.Group("/treatment-menus")
	{
		menus.POST("", h.CreateMenu)
		menus.PUT("/:id", h.UpdateMenu)
		menus.DELETE("/:id", h.DeleteMenu)
		menus.POST("/reorder", h.Reorder)
	}
}

type createMenuRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

type updateMenuRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder *int   `json:"display_order"`
}

type reorderRequest struct {
	MenuIDs []string `json:"menu_ids" binding:"required"`
}

func (h *Handler) ListMenus(c *gin.Context) {
	menus, err := h.service.ListMenus(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(menus))
}

func (h *Handler) CreateMenu(c *gin.Context) {
	var req createMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	menu, err := h.service.CreateMenu(c.Request.Context(), req.Name, req.DisplayOrder)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(menu))
}

func (h *Handler) UpdateMenu(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid menu ID"))
		return
	}

	var req updateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	menu, err := h.service.UpdateMenu(c.Request.Context(), id, req.Name, req.DisplayOrder)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(menu))
}

func (h *Handler) DeleteMenu(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid menu ID"))
		return
	}

	if err := h.service.DeleteMenu(c.Request.Context(), id); err != nil {
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

	ids := make([]uuid.UUID, 0, len(req.MenuIDs))
	for _, raw := range req.MenuIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid menu ID in list"))
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
