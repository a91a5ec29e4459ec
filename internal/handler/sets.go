package handler

import (
	"net/http"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SetsHandler serves the set endpoints: CRUD, copy, per-line status and the
// quantity ledger.
type SetsHandler struct {
	svc    service.SetService
	qtySvc service.QuantityService
}

func NewSetsHandler(svc service.SetService, qtySvc service.QuantityService) *SetsHandler {
	return &SetsHandler{svc: svc, qtySvc: qtySvc}
}

// Create godoc
// @Summary Create a set for a (customer, class) pair
// @Tags sets
// @Accept json
// @Produce json
// @Param request body dto.CreateSetRequest true "Set"
// @Success 201 {object} dto.SetResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sets [post]
func (h *SetsHandler) Create(c *gin.Context) {
	var req dto.CreateSetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SetsHandler) List(c *gin.Context) {
	var filter dto.SetFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SetsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SetsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	var req dto.UpdateSetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Copy godoc
// @Summary Copy a set to another (customer, class) pair
// @Tags sets
// @Accept json
// @Produce json
// @Param id path string true "Source set ID"
// @Param request body dto.CopySetRequest true "Copy target"
// @Success 201 {object} dto.SetResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sets/{id}/copy [post]
func (h *SetsHandler) Copy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	var req dto.CopySetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Copy(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SetLineStatus godoc
// @Summary Change the status of one set line
// @Tags sets
// @Accept json
// @Produce json
// @Param id path string true "Set ID"
// @Param lineId path string true "Line ID"
// @Param request body dto.LineStatusRequest true "Target status"
// @Success 200 {object} dto.SetResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sets/{id}/lines/{lineId}/status [put]
func (h *SetsHandler) SetLineStatus(c *gin.Context) {
	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	var req dto.LineStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetLineStatus(c.Request.Context(), setID, lineID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SetsHandler) RemoveLine(c *gin.Context) {
	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	if err := h.svc.RemoveLine(c.Request.Context(), setID, lineID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetQuantities godoc
// @Summary Bulk-upsert per-class quantities for one customer
// @Tags set-quantities
// @Accept json
// @Produce json
// @Param request body dto.SetQuantitiesRequest true "Quantities"
// @Success 200 {object} dto.SetQuantitiesResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/set-quantities [put]
func (h *SetsHandler) SetQuantities(c *gin.Context) {
	var req dto.SetQuantitiesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.qtySvc.SetQuantities(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SetsHandler) ListQuantities(c *gin.Context) {
	customerID, err := uuid.Parse(c.Query("customer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, invalidID())
		return
	}
	entries, err := h.qtySvc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer_id": customerID.String(), "quantities": entries})
}
