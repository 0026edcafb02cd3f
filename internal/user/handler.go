package user

import (
	"errors"
	"net/http"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Login godoc
// @Summary      Staff login
// @Description  Authenticates a staff account and returns access & refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      user.LoginRequest  true  "Credentials"
// @Success      200      {object}  user.LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBadRequest(c, "invalid request body")
		return
	}
	if err := api.ValidateStruct(req); err != nil {
		api.RespondError(c, err)
		return
	}

	u, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid email or password"})
			return
		}
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *u,
	})
}

// Refresh godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      user.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  user.RefreshResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		api.RespondBadRequest(c, "refresh_token is required")
		return
	}

	accessToken, u, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{AccessToken: accessToken, User: *u})
}

// Me godoc
// @Summary      Current staff account
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  user.User
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "User not authenticated"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// CreateStaff godoc
// @Summary      Add a staff account
// @Description  Admin-only: creates a staff or admin account in the caller's gym.
// @Tags         auth,admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      user.StaffRequest  true  "Account"
// @Success      201      {object}  user.User
// @Failure      400      {object}  api.ValidationErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/staff [post]
func (h *Handler) CreateStaff(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBadRequest(c, "invalid request body")
		return
	}

	u, err := h.service.CreateStaff(c.Request.Context(), CreateStaffRequest{
		GymID:    gymID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.Role(req.Role),
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
