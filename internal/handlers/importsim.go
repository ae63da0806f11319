package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	svc  ImportService
	base string
}

func NewImportHandler(svc ImportService, baseCurrency string) *ImportHandler {
	return &ImportHandler{svc: svc, base: baseCurrency}
}

// Simulate godoc
// @Summary      Simulate the landed cost of an import
// @Description  Signed-in users get the run stored in their history.
// @Tags         import
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ImportSimulationRequest  true  "Goods and optional rate overrides"
// @Success      200   {object}  dto.ImportSimulationResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /import-simulations [post]
func (h *ImportHandler) Simulate(c *gin.Context) {
	var req dto.ImportSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.Simulate(c.Request.Context(), currentUser(c), service.ImportRequest{
		ProductID:     req.ProductID,
		UnitPrice:     req.UnitPrice,
		WeightKg:      req.WeightKg,
		Quantity:      req.Quantity,
		Currency:      req.Currency,
		FreightPerKg:  req.FreightPerKg,
		InsuranceRate: req.InsuranceRate,
		DutyRate:      req.DutyRate,
		VATRate:       req.VATRate,
		HandlingFee:   req.HandlingFee,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	resp := importSimToResponse(res.Simulation, res.Base)
	if res.Converted != nil {
		resp.Converted = moneyPtr(*res.Converted)
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary      List my stored import simulations
// @Tags         import
// @Produce      json
// @Security     CookieAuth
// @Param        limit  query     int  false  "Max results"
// @Success      200  {object}  dto.ListImportSimulationsResponse
// @Router       /import-simulations [get]
func (h *ImportHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.History(c.Request.Context(), currentUser(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.ImportSimulationResponse, len(list))
	for i, s := range list {
		items[i] = importSimToResponse(s, h.base)
	}
	c.JSON(http.StatusOK, dto.ListImportSimulationsResponse{Items: items})
}

// Defaults godoc
// @Summary      Show the default import cost rates
// @Tags         import
// @Produce      json
// @Success      200  {object}  dto.ImportRatesResponse
// @Router       /import-simulations/defaults [get]
func (h *ImportHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, importRatesToResponse(h.svc.Defaults()))
}
