package survey

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	surveyService "github.com/ymatsuda/clinic-survey-api/internal/service/survey"
)

type Handler struct {
	service surveyService.SurveyServicer
}

func NewHandler(service surveyService.SurveyServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/surveys", h.SubmitSurvey)
}

type submitRequest struct {
	ClinicID               string `json:"clinic_id" binding:"required,uuid"`
	DoctorID               string `json:"doctor_id" binding:"required,uuid"`
	TreatmentDate          string `json:"treatment_date" binding:"required,surveydate"`
	TreatmentMenu          string `json:"treatment_menu" binding:"required"`
	Gender                 string `json:"gender" binding:"required"`
	AgeGroup               string `json:"age_group" binding:"required"`
	ResultSatisfaction     string `json:"result_satisfaction"`
	CounselingSatisfaction string `json:"counseling_satisfaction"`
	AtmosphereRating       string `json:"atmosphere_rating"`
	StaffServiceRating     string `json:"staff_service_rating"`
	Message                string `json:"message"`
}

func (h *Handler) SubmitSurvey(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("すべての項目を入力してください"))
		return
	}

	clinicID, _ := uuid.Parse(req.ClinicID)
	doctorID, _ := uuid.Parse(req.DoctorID)
	treatmentDate, err := handler.ParseDate(req.TreatmentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("施術日の形式が正しくありません"))
		return
	}

	result, err := h.service.Submit(c.Request.Context(), &surveyService.Submission{
		ClinicID:               clinicID,
		DoctorID:               doctorID,
		TreatmentDate:          treatmentDate,
		TreatmentMenu:          req.TreatmentMenu,
		Gender:                 req.Gender,
		AgeGroup:               req.AgeGroup,
		ResultSatisfaction:     req.ResultSatisfaction,
		CounselingSatisfaction: req.CounselingSatisfaction,
		AtmosphereRating:       req.AtmosphereRating,
		StaffServiceRating:     req.StaffServiceRating,
		Message:                req.Message,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(result))
}
