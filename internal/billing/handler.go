package billing

import (
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

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		api.RespondBadRequest(c, "invalid request body")
		return false
	}
	return true
}

// @Summary      Sign up a member
// @Description  Creates the member, starts the first term and records the payment
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body billing.SignupRequest true "Signup payload"
// @Success      201 {object} billing.Result
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	var req SignupRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.Signup(c.Request.Context(), gymID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary      Renew a membership
// @Description  Extends the term from the later of today and the current expiry
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body billing.RenewRequest true "Renewal payload"
// @Success      200 {object} billing.Result
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /renew [post]
func (h *Handler) Renew(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	var req RenewRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.Renew(c.Request.Context(), gymID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Pay an outstanding due
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body billing.PayDueRequest true "Payment"
// @Success      200 {object} billing.PayDueResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /pay-due [post]
func (h *Handler) PayDue(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	var req PayDueRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.PayDue(c.Request.Context(), gymID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Update a member or change their plan
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        number path string true "Member phone number"
// @Param        request body billing.UpdateMemberRequest true "Fields to change"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{number} [put]
func (h *Handler) UpdateMember(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if !bind(c, &req) {
		return
	}

	m, err := h.service.UpdateMember(c.Request.Context(), gymID, c.Param("number"), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Transfer remaining days between members
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body billing.TransferRequest true "Source and target"
// @Success      200 {object} billing.TransferResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /transfer [post]
func (h *Handler) Transfer(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	var req TransferRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.Transfer(c.Request.Context(), gymID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Grant complimentary days
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body billing.ComplimentaryDaysRequest true "Days to add"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /complimentary-days [post]
func (h *Handler) AddComplimentaryDays(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	var req ComplimentaryDaysRequest
	if !bind(c, &req) {
		return
	}

	m, err := h.service.AddComplimentaryDays(c.Request.Context(), gymID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
