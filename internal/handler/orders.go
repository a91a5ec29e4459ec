package handler

import (
	"net/http"

	"github.com/tech2stack/GoodLuck-final-sub001/internal/dto"
	"github.com/tech2stack/GoodLuck-final-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

// Submit godoc
// @Summary Submit an order for validation and storage
// @Description Every line is validated against the catalog. A single bad line
// @Description rejects the whole order; the response lists every rejected line
// @Description with its reason.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body dto.SubmitOrderRequest true "Order"
// @Success 201 {object} dto.OrderResponse
// @Failure 422 {object} apierror.OrderRejection
// @Router /v1/orders [post]
func (h *OrdersHandler) Submit(c *gin.Context) {
	var req dto.SubmitOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) GetByID(c *gin.Context) {
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

func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
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
