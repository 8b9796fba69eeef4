package dashboard

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	"github.com/ymatsuda/clinic-survey-api/internal/model"
	dashboardService "github.com/ymatsuda/clinic-survey-api/internal/service/dashboard"
	surveyService "github.com/ymatsuda/clinic-survey-api/internal/service/survey"
)

var csvHeader = []string{"ID", "院名", "先生名", "施術日", "施術メニュー", "性別", "年齢層", "満足度", "作成日時"}

type Handler struct {
	dashboard dashboardService.DashboardServicer
	surveys   surveyService.SurveyServicer
}

func NewHandler(dashboard dashboardService.DashboardServicer, surveys surveyService.SurveyServicer) *Handler {
	return &Handler{dashboard: dashboard, surveys: surveys}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dash := r.Group("/dashboard")
	{
		dash.GET("", h.GetDashboard)
		dash.GET("/export", h.ExportCSV)
		dash.PUT("/surveys/:id", h.UpdateSurvey)
		dash.DELETE("/surveys/:id", h.DeleteSurvey)
	}
}

type updateSurveyRequest struct {
	ClinicID               string `json:"clinic_id" binding:"required,uuid"`
	DoctorID               string `json:"doctor_id" binding:"required,uuid"`
	TreatmentDate          string `json:"treatment_date" binding:"required,surveydate"`
	TreatmentMenu          string `json:"treatment_menu" binding:"required"`
	Gender                 string `json:"gender" binding:"required"`
	AgeGroup               string `json:"age_group" binding:"required"`
	ResultSatisfaction     string `json:"result_satisfaction" binding:"required"`
	CounselingSatisfaction string `json:"counseling_satisfaction"`
	AtmosphereRating       string `json:"atmosphere_rating"`
	StaffServiceRating     string `json:"staff_service_rating"`
	Message                string `json:"message"`
}

func (h *Handler) GetDashboard(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid page"))
			return
		}
	}

	result, err := h.dashboard.GetDashboard(c.Request.Context(), filter, page)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) ExportCSV(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rows, err := h.dashboard.ExportRows(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var buf bytes.Buffer
	// UTF-8 BOM so Excel detects the encoding.
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		handler.RespondError(c, err)
		return
	}
	for _, row := range rows {
		record := []string{
			row.ID.String(),
			row.ClinicName,
			row.DoctorName,
			row.TreatmentDate.Format(handler.DateLayout),
			row.TreatmentMenu,
			row.Gender,
			row.AgeGroup,
			row.Satisfaction(),
			row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			handler.RespondError(c, err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		handler.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("survey_export_%s.csv", time.Now().Format(handler.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) UpdateSurvey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid survey ID"))
		return
	}

	var req updateSurveyRequest
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

	survey := &model.Survey{
		ID:                     id,
		ClinicID:               clinicID,
		DoctorID:               doctorID,
		TreatmentDate:          treatmentDate,
		TreatmentMenu:          req.TreatmentMenu,
		Gender:                 req.Gender,
		AgeGroup:               req.AgeGroup,
		ResultSatisfaction:     req.ResultSatisfaction,
		CounselingSatisfaction: optional(req.CounselingSatisfaction),
		AtmosphereRating:       optional(req.AtmosphereRating),
		StaffServiceRating:     optional(req.StaffServiceRating),
		Message:                optional(req.Message),
	}
	if err := h.surveys.UpdateSurvey(c.Request.Context(), survey); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(survey))
}

func (h *Handler) DeleteSurvey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid survey ID"))
		return
	}

	if err := h.surveys.DeleteSurvey(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}

// parseFilter reads the shared dashboard query parameters. The end date
// is pushed to the end of its day so the bound is inclusive.
func parseFilter(c *gin.Context) (model.SurveyFilter, error) {
	var filter model.SurveyFilter

	if raw := c.Query("clinic_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid clinic ID")
		}
		filter.ClinicID = &id
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := handler.ParseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid start date")
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := handler.ParseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid end date")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	return filter, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
