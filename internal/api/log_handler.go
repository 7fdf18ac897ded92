package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// LogHandler serves meal, workout and body weight entries.
type LogHandler struct {
	logService service.LogService
}

func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- DTOs ---

// MealRequest is used for both creating and editing a meal.
type MealRequest struct {
	Name     string  `json:"name" binding:"required"`
	Calories int     `json:"calories" binding:"min=0"`
	ProteinG float64 `json:"proteinG" binding:"min=0"`
	CarbsG   float64 `json:"carbsG" binding:"min=0"`
	FatsG    float64 `json:"fatsG" binding:"min=0"`
	Date     string  `json:"date"` // YYYY-MM-DD, defaults to today
}

type WorkoutRequest struct {
	Exercise        string  `json:"exercise" binding:"required"`
	Category        string  `json:"category" binding:"omitempty,oneof=strength cardio"`
	MuscleGroups    string  `json:"muscleGroups"`
	DurationMinutes int     `json:"durationMinutes" binding:"min=0"`
	Sets            int     `json:"sets" binding:"min=0"`
	Reps            int     `json:"reps" binding:"min=0"`
	Weight          float64 `json:"weight" binding:"min=0"`
	Intensity       float64 `json:"intensity" binding:"min=0"`
	CaloriesBurned  *int    `json:"caloriesBurned" binding:"omitempty,min=0"`
	Date            string  `json:"date"`
}

type BodyWeightRequest struct {
	WeightKg float64 `json:"weightKg" binding:"required,gt=0"`
	Date     string  `json:"date"`
}

// parseOptionalDate returns the zero time for an empty string.
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as %s", domain.DateLayout)
	}
	return d, nil
}

// bindDateRange reads the optional start/end query parameters.
func bindDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := parseOptionalDate(c.Query("start"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid start: "+err.Error())
		return time.Time{}, time.Time{}, false
	}
	end, err := parseOptionalDate(c.Query("end"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid end: "+err.Error())
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (r MealRequest) toInput() (service.MealInput, error) {
	date, err := parseOptionalDate(r.Date)
	if err != nil {
		return service.MealInput{}, err
	}
	return service.MealInput{
		Name:     r.Name,
		Calories: r.Calories,
		ProteinG: r.ProteinG,
		CarbsG:   r.CarbsG,
		FatsG:    r.FatsG,
		Date:     date,
	}, nil
}

// --- Meals ---

// CreateMeal godoc
// @Summary Log a meal
// @Description Records a meal and runs the nutrition checks for the day.
// @Tags Meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal body MealRequest true "Meal details"
// @Success 201 {object} domain.Meal
// @Failure 400 {object} gin.H "Invalid input"
// @Router /meals [post]
func (h *LogHandler) CreateMeal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := h.logService.CreateMeal(c.Request.Context(), userID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// ListMeals godoc
// @Summary List meals
// @Description Without a range the most recent meals are returned.
// @Tags Meals
// @Produce json
// @Security BearerAuth
// @Param start query string false "First day (YYYY-MM-DD)"
// @Param end query string false "Last day (YYYY-MM-DD)"
// @Success 200 {array} domain.Meal
// @Router /meals [get]
func (h *LogHandler) ListMeals(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	start, end, ok := bindDateRange(c)
	if !ok {
		return
	}
	meals, err := h.logService.ListMeals(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if meals == nil {
		meals = []domain.Meal{}
	}
	c.JSON(http.StatusOK, meals)
}

// UpdateMeal godoc
// @Summary Edit a meal
// @Tags Meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Param meal body MealRequest true "Meal details"
// @Success 200 {object} domain.Meal
// @Failure 404 {object} gin.H "Meal not found"
// @Router /meals/{id} [put]
func (h *LogHandler) UpdateMeal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	mealID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := h.logService.UpdateMeal(c.Request.Context(), userID, mealID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DeleteMeal godoc
// @Summary Delete a meal
// @Tags Meals
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Success 204
// @Failure 404 {object} gin.H "Meal not found"
// @Router /meals/{id} [delete]
func (h *LogHandler) DeleteMeal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	mealID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.logService.DeleteMeal(c.Request.Context(), userID, mealID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Workouts ---

// CreateWorkout godoc
// @Summary Log a workout
// @Description Category and muscle groups default from the exercise catalog; calories are estimated when omitted.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body WorkoutRequest true "Workout details"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid input"
// @Router /workouts [post]
func (h *LogHandler) CreateWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := h.logService.CreateWorkout(c.Request.Context(), userID, service.WorkoutInput{
		Exercise:        req.Exercise,
		Category:        domain.ExerciseCategory(req.Category),
		MuscleGroups:    req.MuscleGroups,
		DurationMinutes: req.DurationMinutes,
		Sets:            req.Sets,
		Reps:            req.Reps,
		Weight:          req.Weight,
		Intensity:       req.Intensity,
		CaloriesBurned:  req.CaloriesBurned,
		Date:            date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// ListWorkouts godoc
// @Summary List workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param start query string false "First day (YYYY-MM-DD)"
// @Param end query string false "Last day (YYYY-MM-DD)"
// @Success 200 {array} domain.Workout
// @Router /workouts [get]
func (h *LogHandler) ListWorkouts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	start, end, ok := bindDateRange(c)
	if !ok {
		return
	}
	workouts, err := h.logService.ListWorkouts(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, workouts)
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 204
// @Router /workouts/{id} [delete]
func (h *LogHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.logService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Body weight ---

// CreateBodyWeight godoc
// @Summary Record body weight
// @Tags BodyWeight
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param weight body BodyWeightRequest true "Weight in kg"
// @Success 201 {object} domain.BodyWeight
// @Router /body-weights [post]
func (h *LogHandler) CreateBodyWeight(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req BodyWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	bw, err := h.logService.CreateBodyWeight(c.Request.Context(), userID, req.WeightKg, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bw)
}

// ListBodyWeights godoc
// @Summary Body weight history
// @Tags BodyWeight
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.BodyWeight
// @Router /body-weights [get]
func (h *LogHandler) ListBodyWeights(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	weights, err := h.logService.ListBodyWeights(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if weights == nil {
		weights = []domain.BodyWeight{}
	}
	c.JSON(http.StatusOK, weights)
}
