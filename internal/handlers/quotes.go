package handlers

import (
	"net/http"

	dom "storefront/internal/domain"
	"storefront/internal/dto"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	svc  QuoteService
	base string
}

func NewQuoteHandler(svc QuoteService, baseCurrency string) *QuoteHandler {
	return &QuoteHandler{svc: svc, base: baseCurrency}
}

// Request godoc
// @Summary      Ask for a price quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateQuoteRequest  true  "Quote request"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /quotes [post]
func (h *QuoteHandler) Request(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	q, err := h.svc.Request(c.Request.Context(), currentUser(c), req.ProductID, req.Quantity, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quoteToResponse(q, h.base))
}

// MyList godoc
// @Summary      List my quotes
// @Tags         quotes
// @Produce      json
// @Security     CookieAuth
// @Param        status  query     string  false  "Quote status"
// @Success      200  {object}  dto.ListQuotesResponse
// @Router       /quotes [get]
func (h *QuoteHandler) MyList(c *gin.Context) {
	h.list(c, currentUser(c))
}

// AdminList godoc
// @Summary      List all quotes
// @Tags         admin-quotes
// @Produce      json
// @Security     CookieAuth
// @Param        status  query     string  false  "Quote status"
// @Success      200  {object}  dto.ListQuotesResponse
// @Router       /admin/quotes [get]
func (h *QuoteHandler) AdminList(c *gin.Context) {
	h.list(c, 0)
}

func (h *QuoteHandler) list(c *gin.Context, customerID int64) {
	list, err := h.svc.List(c.Request.Context(), customerID, dom.QuoteStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.QuoteResponse, len(list))
	for i, q := range list {
		items[i] = quoteToResponse(q, h.base)
	}
	c.JSON(http.StatusOK, dto.ListQuotesResponse{Items: items})
}

// Get godoc
// @Summary      Get a quote with its message thread
// @Tags         quotes
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Quote ID"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  map[string]string
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	q, err := h.svc.Get(c.Request.Context(), currentUser(c), isAdmin(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteToResponse(q, h.base))
}

// PostMessage godoc
// @Summary      Add a message to a quote thread
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                      true  "Quote ID"
// @Param        body  body      dto.QuoteMessageRequest  true  "Message"
// @Success      201   {object}  dto.QuoteMessageResponse
// @Failure      404   {object}  map[string]string
// @Router       /quotes/{id}/messages [post]
func (h *QuoteHandler) PostMessage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.QuoteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.svc.PostMessage(c.Request.Context(), currentUser(c), isAdmin(c), id, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quoteMessageToResponse(m))
}

// Offer godoc
// @Summary      Make a price offer on a quote
// @Description  expires_at defaults to seven days from now.
// @Tags         admin-quotes
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                    true  "Quote ID"
// @Param        body  body      dto.OfferQuoteRequest  true  "Offer"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      409   {object}  map[string]string
// @Router       /admin/quotes/{id}/offer [post]
func (h *QuoteHandler) Offer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.OfferQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	q, err := h.svc.Offer(c.Request.Context(), id, req.UnitPrice, req.ExpiresAt.Ptr())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteToResponse(q, h.base))
}

// Accept godoc
// @Summary      Accept an offer, creating an order
// @Tags         quotes
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Quote ID"
// @Success      200  {object}  dto.AcceptQuoteResponse
// @Failure      409  {object}  map[string]string
// @Router       /quotes/{id}/accept [post]
func (h *QuoteHandler) Accept(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	q, o, err := h.svc.Accept(c.Request.Context(), currentUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AcceptQuoteResponse{Quote: quoteToResponse(q, h.base), Order: orderToResponse(o)})
}

// Reject godoc
// @Summary      Reject an offer
// @Tags         quotes
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Quote ID"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      409  {object}  map[string]string
// @Router       /quotes/{id}/reject [post]
func (h *QuoteHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	q, err := h.svc.Reject(c.Request.Context(), currentUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteToResponse(q, h.base))
}
