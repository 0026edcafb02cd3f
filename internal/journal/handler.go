package journal

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

func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		api.RespondBadRequest(c, "invalid renewal record id")
		return 0, false
	}
	return id, true
}

// @Summary      List renewal records
// @Tags         renewals
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200 {object} journal.ListResponse
// @Router       /renewals [get]
func (h *Handler) List(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}
	page := api.GetPage(c)

	records, total, err := h.service.List(c.Request.Context(), gymID, page.Limit, page.Offset)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Records: records, Pagination: page.Meta(total)})
}

// @Summary      Renewal records of one member, newest first
// @Tags         renewals
// @Produce      json
// @Security     BearerAuth
// @Param        number path string true "Member phone number"
// @Success      200 {array} journal.Record
// @Router       /renewals/{number} [get]
func (h *Handler) ListByMember(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}

	records, err := h.service.ListByMember(c.Request.Context(), gymID, c.Param("number"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// @Summary      Correct a renewal record
// @Tags         renewals,admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Record ID"
// @Param        request body journal.CorrectionRequest true "Fields to correct"
// @Success      200 {object} journal.Record
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /renewals/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	var req CorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBadRequest(c, "invalid request body")
		return
	}

	rec, err := h.service.Correct(c.Request.Context(), gymID, id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Delete a renewal record
// @Tags         renewals,admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Record ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /renewals/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	gymID, ok := auth.RequireGymID(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), gymID, id); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Renewal record deleted successfully"})
}
