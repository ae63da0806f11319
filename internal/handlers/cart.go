package handlers

import (
	"net/http"

	dom "storefront/internal/domain"
	"storefront/internal/dto"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	svc  CartService
	base string
}

func NewCartHandler(svc CartService, baseCurrency string) *CartHandler {
	return &CartHandler{svc: svc, base: baseCurrency}
}

// Get godoc
// @Summary      Get my cart
// @Tags         cart
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.CartResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.svc.Get(c.Request.Context(), currentUser(c))
	h.respond(c, cart, err)
}

// Add godoc
// @Summary      Add a product to my cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.AddCartItemRequest  true  "Item"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := h.svc.Add(c.Request.Context(), currentUser(c), req.ProductID, req.Quantity)
	h.respond(c, cart, err)
}

// SetQuantity godoc
// @Summary      Set the quantity of a cart line (0 removes it)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        productId  path      int                         true  "Product ID"
// @Param        body       body      dto.SetCartQuantityRequest  true  "Quantity"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  map[string]string
// @Router       /cart/items/{productId} [patch]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	var req dto.SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := h.svc.SetQuantity(c.Request.Context(), currentUser(c), productID, *req.Quantity)
	h.respond(c, cart, err)
}

// Remove godoc
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     CookieAuth
// @Param        productId  path  int  true  "Product ID"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  map[string]string
// @Router       /cart/items/{productId} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	cart, err := h.svc.Remove(c.Request.Context(), currentUser(c), productID)
	h.respond(c, cart, err)
}

// Clear godoc
// @Summary      Empty my cart
// @Tags         cart
// @Security     CookieAuth
// @Success      204
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), currentUser(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary      Turn my cart into an order
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CheckoutRequest  false  "Notes"
// @Success      201   {object}  dto.OrderResponse
// @Failure      409   {object}  map[string]string
// @Router       /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	o, err := h.svc.Checkout(c.Request.Context(), currentUser(c), req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderToResponse(o))
}

func (h *CartHandler) respond(c *gin.Context, cart dom.Cart, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartToResponse(cart, h.base))
}
