package handlers

import (
	"net/http"

	dom "storefront/internal/domain"
	"storefront/internal/dto"

	"github.com/gin-gonic/gin"
)

type ReturnHandler struct {
	svc ReturnService
}

func NewReturnHandler(svc ReturnService) *ReturnHandler {
	return &ReturnHandler{svc: svc}
}

// Request godoc
// @Summary      Ask to return a delivered order
// @Tags         returns
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateReturnRequest  true  "Return request"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /returns [post]
func (h *ReturnHandler) Request(c *gin.Context) {
	var req dto.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rr, err := h.svc.Request(c.Request.Context(), currentUser(c), req.OrderID, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, returnToResponse(rr))
}

// MyList godoc
// @Summary      List my return requests
// @Tags         returns
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListReturnsResponse
// @Router       /returns [get]
func (h *ReturnHandler) MyList(c *gin.Context) {
	h.list(c, currentUser(c))
}

// AdminList godoc
// @Summary      List return requests
// @Tags         admin-returns
// @Produce      json
// @Security     CookieAuth
// @Param        status  query     string  false  "requested, approved or rejected"
// @Success      200  {object}  dto.ListReturnsResponse
// @Router       /admin/returns [get]
func (h *ReturnHandler) AdminList(c *gin.Context) {
	h.list(c, 0)
}

func (h *ReturnHandler) list(c *gin.Context, customerID int64) {
	list, err := h.svc.List(c.Request.Context(), customerID, dom.ReturnStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.ReturnResponse, len(list))
	for i, r := range list {
		items[i] = returnToResponse(r)
	}
	c.JSON(http.StatusOK, dto.ListReturnsResponse{Items: items})
}

// Resolve godoc
// @Summary      Approve or reject a return
// @Description  Approval refunds the order.
// @Tags         admin-returns
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                       true  "Return ID"
// @Param        body  body      dto.ResolveReturnRequest  true  "Decision"
// @Success      200   {object}  dto.ReturnResponse
// @Failure      409   {object}  map[string]string
// @Router       /admin/returns/{id}/resolve [post]
func (h *ReturnHandler) Resolve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ResolveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rr, err := h.svc.Resolve(c.Request.Context(), currentUser(c), id, *req.Approve, req.Note)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, returnToResponse(rr))
}
