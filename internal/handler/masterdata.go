package handler

import (
	"net/http"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MasterDataHandler serves the reference entities the catalog hangs off of:
// publications, subtitles, languages, classes, customers, branches and
// stationery items.
type MasterDataHandler struct{ svc service.MasterDataService }

func NewMasterDataHandler(svc service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{svc: svc}
}

func (h *MasterDataHandler) CreatePublication(c *gin.Context) {
	var req dto.CreateNamedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePublication(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListPublications(c *gin.Context) {
	resp, err := h.svc.ListPublications(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) CreateSubtitle(c *gin.Context) {
	var req dto.CreateSubtitleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSubtitle(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListSubtitles(c *gin.Context) {
	var pubID *uuid.UUID
	if raw := c.Query("publication_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, invalidID())
			return
		}
		pubID = &id
	}
	resp, err := h.svc.ListSubtitles(c.Request.Context(), pubID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) CreateLanguage(c *gin.Context) {
	var req dto.CreateNamedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateLanguage(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListLanguages(c *gin.Context) {
	resp, err := h.svc.ListLanguages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) CreateClass(c *gin.Context) {
	var req dto.CreateNamedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateClass(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListClasses(c *gin.Context) {
	resp, err := h.svc.ListClasses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListCustomers(c *gin.Context) {
	resp, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) CreateBranch(c *gin.Context) {
	var req dto.CreateNamedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateBranch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListBranches(c *gin.Context) {
	resp, err := h.svc.ListBranches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MasterDataHandler) CreateStationeryItem(c *gin.Context) {
	var req dto.CreateNamedRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateStationeryItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MasterDataHandler) ListStationeryItems(c *gin.Context) {
	resp, err := h.svc.ListStationeryItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
