package handler

import (
	"net/http"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type PendingHandler struct{ svc service.PendingService }

func NewPendingHandler(svc service.PendingService) *PendingHandler {
	return &PendingHandler{svc: svc}
}

// ListBooks godoc
// @Summary List every active book with its delivery status for a customer
// @Description Books with no recorded status report "not_set". Filtering by
// @Description branch narrows the join to that branch's records.
// @Tags pending
// @Produce json
// @Param customer_id query string true "Customer ID"
// @Param branch_id query string false "Branch ID"
// @Success 200 {object} dto.PendingBooksResponse
// @Router /v1/pending/books [get]
func (h *PendingHandler) ListBooks(c *gin.Context) {
	var filter dto.PendingBooksFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListBooksWithStatus(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetStatus godoc
// @Summary Record or update the delivery status of a book for a customer
// @Tags pending
// @Accept json
// @Produce json
// @Param request body dto.SetPendingStatusRequest true "Status"
// @Success 200 {object} dto.PendingRecordResponse
// @Router /v1/pending [put]
func (h *PendingHandler) SetStatus(c *gin.Context) {
	var req dto.SetPendingStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetStatus(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
