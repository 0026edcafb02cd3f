package member

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

// @Summary      List members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page (default 1)"
// @Param        limit query int false "Page size (default 20, max 100)"
// @Success      200 {object} member.ListResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /members [get]
func (h *Handler) List(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}
	page := api.GetPage(c)

	members, total, err := h.service.List(c.Request.Context(), gymID, page.Limit, page.Offset)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Members: members, Pagination: page.Meta(total)})
}

// @Summary      Get a member by phone number
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        number path string true "Phone number"
// @Success      200 {object} member.Member
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{number} [get]
func (h *Handler) Get(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), gymID, c.Param("number"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Delete a member
// @Tags         members,admin
// @Produce      json
// @Security     BearerAuth
// @Param        number path string true "Phone number"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{number} [delete]
func (h *Handler) Delete(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), gymID, c.Param("number")); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deleted successfully"})
}
