package handlers

import (
	"net/http"

	dom "storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// AdminList godoc
// @Summary      List orders
// @Tags         admin-orders
// @Produce      json
// @Security     CookieAuth
// @Param        status       query     string  false  "Order status"
// @Param        customer_id  query     int     false  "Customer ID"
// @Param        limit        query     int     false  "Page size"
// @Param        offset       query     int     false  "Page offset"
// @Success      200  {object}  dto.ListOrdersResponse
// @Failure      400  {object}  map[string]string
// @Router       /admin/orders [get]
func (h *OrderHandler) AdminList(c *gin.Context) {
	limit, offset := parsePage(c)
	f := dom.OrderFilter{Status: dom.OrderStatus(c.Query("status")), Limit: limit, Offset: offset}
	if c.Query("customer_id") != "" {
		id, ok := parseQueryID(c, "customer_id")
		if !ok {
			return
		}
		f.CustomerID = id
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListOrdersResponse{Items: ordersToResponses(list)})
}

// AdminCreate godoc
// @Summary      Create an order on behalf of a customer
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateOrderRequest  true  "Order"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/orders [post]
func (h *OrderHandler) AdminCreate(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lines := make([]service.ItemInput, len(req.Items))
	for i, it := range req.Items {
		lines[i] = service.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	o, err := h.svc.Create(c.Request.Context(), req.CustomerID, lines, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderToResponse(o))
}

// AdminGet godoc
// @Summary      Get an order with payments and status history
// @Tags         admin-orders
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) AdminGet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderDetailToResponse(d))
}

// ChangeStatus godoc
// @Summary      Move an order to another status
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                      true  "Order ID"
// @Param        body  body      dto.ChangeStatusRequest  true  "Target status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  map[string]string
// @Router       /admin/orders/{id}/status [patch]
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, err := h.svc.ChangeStatus(c.Request.Context(), currentUser(c), id, dom.OrderStatus(req.Status), req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderToResponse(o))
}

// RecordPayment godoc
// @Summary      Record a payment against an order
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                       true  "Order ID"
// @Param        body  body      dto.RecordPaymentRequest  true  "Payment"
// @Success      201   {object}  dto.PaymentResultResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/orders/{id}/payments [post]
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, p, err := h.svc.RecordPayment(c.Request.Context(), currentUser(c), dom.Payment{
		OrderID:   id,
		Amount:    req.Amount,
		Method:    dom.PaymentMethod(req.Method),
		Status:    dom.PaymentStatus(req.Status),
		Reference: req.Reference,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PaymentResultResponse{Order: orderToResponse(o), Payment: paymentToResponse(p, o.Currency)})
}

// ConfirmPayment godoc
// @Summary      Settle a pending payment
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id         path      int                        true  "Order ID"
// @Param        paymentId  path      int                        true  "Payment ID"
// @Param        body       body      dto.ConfirmPaymentRequest  true  "Outcome"
// @Success      200  {object}  dto.PaymentResultResponse
// @Failure      409  {object}  map[string]string
// @Router       /admin/orders/{id}/payments/{paymentId} [patch]
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	paymentID, ok := parseID(c, "paymentId")
	if !ok {
		return
	}
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, p, err := h.svc.ConfirmPayment(c.Request.Context(), currentUser(c), id, paymentID, dom.PaymentStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentResultResponse{Order: orderToResponse(o), Payment: paymentToResponse(p, o.Currency)})
}

// MyList godoc
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Security     CookieAuth
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200  {object}  dto.ListOrdersResponse
// @Router       /orders [get]
func (h *OrderHandler) MyList(c *gin.Context) {
	limit, offset := parsePage(c)
	list, err := h.svc.ListForCustomer(c.Request.Context(), currentUser(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListOrdersResponse{Items: ordersToResponses(list)})
}

// MyGet godoc
// @Summary      Get one of my orders
// @Tags         orders
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) MyGet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.GetForCustomer(c.Request.Context(), currentUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderDetailToResponse(d))
}
