package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication and profile service dependencies.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID          string                         `json:"id"`
	Name        string                         `json:"name"`
	Email       string                         `json:"email"`
	Preferences domain.NotificationPreferences `json:"preferences"`
	CreatedAt   time.Time                      `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type PreferencesRequest struct {
	MealReminder     bool                    `json:"mealReminder"`
	WorkoutReminder  bool                    `json:"workoutReminder"`
	SummaryFrequency domain.SummaryFrequency `json:"summaryFrequency" binding:"omitempty,oneof=none daily weekly monthly"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user
// @Description Creates a new account with default notification preferences.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} UserResponse "User created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user, returns a JWT token and runs the login notification checks.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Me godoc
// @Summary Current user profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdatePreferences godoc
// @Summary Update notification preferences
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body PreferencesRequest true "Reminder opt-ins and summary frequency"
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /me/preferences [put]
func (h *AuthHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.userService.UpdatePreferences(c.Request.Context(), userID, domain.NotificationPreferences{
		MealReminder:     req.MealReminder,
		WorkoutReminder:  req.WorkoutReminder,
		SummaryFrequency: req.SummaryFrequency,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		Preferences: user.Preferences,
		CreatedAt:   user.CreatedAt,
	}
}
