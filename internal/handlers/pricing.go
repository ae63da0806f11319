package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PricingHandler struct {
	svc PricingService
}

func NewPricingHandler(svc PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// ListRates godoc
// @Summary      List exchange rates against the base currency
// @Tags         pricing
// @Produce      json
// @Success      200  {object}  dto.ListRatesResponse
// @Router       /rates [get]
func (h *PricingHandler) ListRates(c *gin.Context) {
	list, err := h.svc.Rates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.RateResponse, len(list))
	for i, r := range list {
		items[i] = rateToResponse(r)
	}
	c.JSON(http.StatusOK, dto.ListRatesResponse{Base: h.svc.Base(), Items: items})
}

// Convert godoc
// @Summary      Convert a base-currency amount
// @Tags         pricing
// @Produce      json
// @Param        amount    query     int     true  "Amount in base minor units"
// @Param        currency  query     string  true  "Target ISO 4217 code"
// @Success      200  {object}  dto.ConvertResponse
// @Failure      400  {object}  map[string]string
// @Router       /rates/convert [get]
func (h *PricingHandler) Convert(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	m, err := h.svc.Convert(c.Request.Context(), amount, c.Query("currency"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConvertResponse{From: money(amount, h.svc.Base()), To: money(m.Amount, m.Currency)})
}

// SetRate godoc
// @Summary      Set the exchange rate of a currency
// @Tags         admin-pricing
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        currency  path      string              true  "ISO 4217 code"
// @Param        body      body      dto.SetRateRequest  true  "Units of currency per one base unit"
// @Success      200  {object}  dto.RateResponse
// @Failure      400  {object}  map[string]string
// @Router       /admin/rates/{currency} [put]
func (h *PricingHandler) SetRate(c *gin.Context) {
	var req dto.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		writeError(c, fmt.Errorf("%w: rate must be a decimal", service.ErrInvalidInput))
		return
	}
	r, err := h.svc.SetRate(c.Request.Context(), c.Param("currency"), rate)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rateToResponse(r))
}
