package plan

import (
	"net/http"
	"strconv"

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

func planID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		api.RespondBadRequest(c, "invalid plan id")
		return 0, false
	}
	return id, true
}

// @Summary      List plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} plan.Plan
// @Failure      401 {object} api.ErrorResponse
// @Router       /plans [get]
func (h *Handler) List(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	plans, err := h.service.List(c.Request.Context(), gymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// @Summary      Get a plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Success      200 {object} plan.Plan
// @Failure      404 {object} api.ErrorResponse
// @Router       /plans/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}
	id, ok := planID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), gymID, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Create a plan
// @Description  Admin-only: add a plan to the gym's catalog
// @Tags         plans,admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body plan.CreatePlanRequest true "Plan payload"
// @Success      201 {object} plan.Plan
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /plans [post]
func (h *Handler) Create(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), gymID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      Update a plan
// @Tags         plans,admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Param        request body plan.UpdatePlanRequest true "Fields to change"
// @Success      200 {object} plan.Plan
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /plans/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}
	id, ok := planID(c)
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), gymID, id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete a plan
// @Tags         plans,admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /plans/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}
	id, ok := planID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), gymID, id); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Plan deleted successfully"})
}
