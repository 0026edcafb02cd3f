package gym

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

// @Summary      Current gym
// @Description  Returns the gym the caller's token is scoped to
// @Tags         gym
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} gym.Gym
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /gym [get]
func (h *Handler) Current(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	g, err := h.service.Get(c.Request.Context(), gymID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}
