package handlers

import (
	"net/http"

	dom "storefront/internal/domain"
	"storefront/internal/dto"

	"github.com/gin-gonic/gin"
)

type AuctionHandler struct {
	svc  AuctionService
	base string
}

func NewAuctionHandler(svc AuctionService, baseCurrency string) *AuctionHandler {
	return &AuctionHandler{svc: svc, base: baseCurrency}
}

// List godoc
// @Summary      List auctions
// @Tags         auctions
// @Produce      json
// @Param        status  query     string  false  "open or closed"
// @Success      200  {object}  dto.ListAuctionsResponse
// @Router       /auctions [get]
func (h *AuctionHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), dom.AuctionStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.AuctionResponse, len(list))
	for i, a := range list {
		items[i] = auctionToResponse(a, h.base)
	}
	c.JSON(http.StatusOK, dto.ListAuctionsResponse{Items: items})
}

// Get godoc
// @Summary      Get an auction with its bids
// @Tags         auctions
// @Produce      json
// @Param        id   path      int  true  "Auction ID"
// @Success      200  {object}  dto.AuctionDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /auctions/{id} [get]
func (h *AuctionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	out := dto.AuctionDetailResponse{
		AuctionResponse: auctionToResponse(d.Auction, h.base),
		MinimumBid:      money(d.MinimumBid, h.base),
		Bids:            make([]dto.BidResponse, len(d.Bids)),
	}
	for i, b := range d.Bids {
		out.Bids[i] = bidToResponse(b, h.base)
	}
	c.JSON(http.StatusOK, out)
}

// Bid godoc
// @Summary      Place a bid
// @Tags         auctions
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int             true  "Auction ID"
// @Param        body  body      dto.BidRequest  true  "Bid"
// @Success      201   {object}  dto.BidResponse
// @Failure      409   {object}  map[string]string
// @Router       /auctions/{id}/bids [post]
func (h *AuctionHandler) Bid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.Bid(c.Request.Context(), currentUser(c), id, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bidToResponse(b, h.base))
}

// Create godoc
// @Summary      Open an auction for a product
// @Tags         admin-auctions
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateAuctionRequest  true  "Auction"
// @Success      201   {object}  dto.AuctionResponse
// @Failure      400   {object}  map[string]string
// @Router       /admin/auctions [post]
func (h *AuctionHandler) Create(c *gin.Context) {
	var req dto.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.svc.Create(c.Request.Context(), dom.Auction{
		ProductID:     req.ProductID,
		StartingPrice: req.StartingPrice,
		MinIncrement:  req.MinIncrement,
		StartsAt:      req.StartsAt.Time(),
		EndsAt:        req.EndsAt.Time(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, auctionToResponse(a, h.base))
}

// Close godoc
// @Summary      Close an auction and order the winning bid
// @Tags         admin-auctions
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Auction ID"
// @Success      200  {object}  dto.AuctionResponse
// @Failure      409  {object}  map[string]string
// @Router       /admin/auctions/{id}/close [post]
func (h *AuctionHandler) Close(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.Close(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, auctionToResponse(a, h.base))
}
