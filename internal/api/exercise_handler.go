package api

import (
	"math"
	"net/http"
	"strconv"

	"alcyxob/fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler exposes the exercise catalog.
type ExerciseHandler struct {
	logService service.LogService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(logService service.LogService) *ExerciseHandler {
	return &ExerciseHandler{logService: logService}
}

// GetExercise godoc
// @Summary Look up an exercise
// @Description Unknown names return the strength default.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param name path string true "Exercise name"
// @Success 200 {object} domain.ExerciseInfo
// @Router /exercises/{name} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	c.JSON(http.StatusOK, h.logService.LookupExercise(c.Param("name")))
}

// EstimateCalories godoc
// @Summary Estimate calories burned
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exercise query string true "Exercise name"
// @Param duration query int false "Duration in minutes"
// @Param sets query int false "Sets"
// @Param reps query int false "Reps"
// @Param intensity query number false "Intensity multiplier"
// @Success 200 {object} service.CalorieEstimate
// @Failure 400 {object} gin.H "Invalid input"
// @Router /exercises/estimate [get]
func (h *ExerciseHandler) EstimateCalories(c *gin.Context) {
	name := c.Query("exercise")
	if name == "" {
		abortWithError(c, http.StatusBadRequest, "exercise query parameter is required")
		return
	}

	ints := map[string]int{"duration": 0, "sets": 0, "reps": 0}
	for key := range ints {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid "+key)
			return
		}
		ints[key] = v
	}
	intensity := 0.0
	if raw := c.Query("intensity"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			abortWithError(c, http.StatusBadRequest, "Invalid intensity")
			return
		}
		intensity = v
	}

	c.JSON(http.StatusOK, h.logService.EstimateCalories(name, ints["duration"], ints["sets"], ints["reps"], intensity))
}
