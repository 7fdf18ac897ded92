package api

import (
	"fmt"
	"net/http"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// TemplateHandler manages saved meal and workout favorites.
type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type TemplateRequest struct {
	Label   string                  `json:"label" binding:"required"`
	Kind    domain.TemplateKind     `json:"kind" binding:"required,oneof=meal workout"`
	Meal    *domain.MealTemplate    `json:"meal"`
	Workout *domain.WorkoutTemplate `json:"workout"`
}

type LogTemplateRequest struct {
	Date string `json:"date"`
}

// CreateTemplate godoc
// @Summary Save a favorite
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body TemplateRequest true "Template with a meal or workout payload"
// @Success 201 {object} domain.LogTemplate
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Label already used"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	t, err := h.templateService.Create(c.Request.Context(), userID, &domain.LogTemplate{
		Label:   req.Label,
		Kind:    req.Kind,
		Meal:    req.Meal,
		Workout: req.Workout,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ListTemplates godoc
// @Summary List favorites
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param kind query string false "meal or workout"
// @Success 200 {array} domain.LogTemplate
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	templates, err := h.templateService.List(c.Request.Context(), userID, domain.TemplateKind(c.Query("kind")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if templates == nil {
		templates = []domain.LogTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

// DeleteTemplate godoc
// @Summary Delete a favorite
// @Tags Templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	templateID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.templateService.Delete(c.Request.Context(), userID, templateID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LogTemplate godoc
// @Summary Log an entry from a favorite
// @Description Creates a meal or workout from the saved template, on the given date or today.
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param body body LogTemplateRequest false "Optional date"
// @Success 201 {object} service.LoggedEntry
// @Router /templates/{id}/log [post]
func (h *TemplateHandler) LogTemplate(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	templateID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req LogTemplateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.templateService.Log(c.Request.Context(), userID, templateID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
