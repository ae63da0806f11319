package handlers

import (
	"net/http"

	dom "storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc     CatalogService
	pricing PricingService
}

func NewCatalogHandler(svc CatalogService, pricing PricingService) *CatalogHandler {
	return &CatalogHandler{svc: svc, pricing: pricing}
}

// List godoc
// @Summary      List products and services
// @Tags         catalog
// @Produce      json
// @Param        kind      query     string  false  "product or service"
// @Param        q         query     string  false  "Search in name and description"
// @Param        currency  query     string  false  "Also show prices in this ISO 4217 currency"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Param        offset    query     int     false  "Offset"
// @Success      200  {object}  dto.ListProductsResponse
// @Failure      400  {object}  map[string]string
// @Router       /products [get]
func (h *CatalogHandler) List(c *gin.Context) {
	h.list(c, false)
}

// AdminList godoc
// @Summary      List the catalog including inactive entries
// @Tags         admin-catalog
// @Produce      json
// @Security     CookieAuth
// @Param        kind   query     string  false  "product or service"
// @Param        q      query     string  false  "Search"
// @Success      200  {object}  dto.ListProductsResponse
// @Router       /admin/products [get]
func (h *CatalogHandler) AdminList(c *gin.Context) {
	h.list(c, true)
}

func (h *CatalogHandler) list(c *gin.Context, includeInactive bool) {
	limit, offset := parsePage(c)
	f := dom.ProductFilter{
		Kind:            dom.ProductKind(c.Query("kind")),
		Query:           c.Query("q"),
		IncludeInactive: includeInactive,
		Limit:           limit,
		Offset:          offset,
	}
	convert, ok := h.converter(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.ProductResponse, len(list))
	for i, p := range list {
		if items[i], err = h.toResponse(p, convert); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, dto.ListProductsResponse{Items: items, Limit: limit, Offset: offset})
}

// Get godoc
// @Summary      Get a product or service
// @Tags         catalog
// @Produce      json
// @Param        id        path      int     true   "Product ID"
// @Param        currency  query     string  false  "Display currency"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	convert, ok := h.converter(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id, isAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.toResponse(p, convert)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a product or service
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateProductRequest  true  "Product"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/products [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	kind := dom.KindProduct
	if req.Kind != "" {
		kind = dom.ProductKind(req.Kind)
	}
	in := service.ProductInput{
		Kind:        &kind,
		SKU:         &req.SKU,
		Name:        &req.Name,
		Description: &req.Description,
		Price:       &req.Price,
		Stock:       &req.Stock,
		WeightGrams: &req.WeightGrams,
		Active:      req.Active,
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productToResponse(p, h.pricing.Base()))
}

// Update godoc
// @Summary      Update a product or service
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Product ID"
// @Param        body  body      dto.UpdateProductRequest  true  "Partial update"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/products/{id} [patch]
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in := service.ProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		WeightGrams: req.WeightGrams,
		Active:      req.Active,
	}
	if req.Kind != nil {
		kind := dom.ProductKind(*req.Kind)
		in.Kind = &kind
	}
	p, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, productToResponse(p, h.pricing.Base()))
}

// Delete godoc
// @Summary      Soft delete a product or service
// @Tags         admin-catalog
// @Security     CookieAuth
// @Param        id   path  int  true  "Product ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/products/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// converter resolves the optional currency query; nil means no conversion.
func (h *CatalogHandler) converter(c *gin.Context) (func(int64) (dom.Money, error), bool) {
	code := c.Query("currency")
	if code == "" {
		return nil, true
	}
	convert, err := h.pricing.Converter(c.Request.Context(), code)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return convert, true
}

func (h *CatalogHandler) toResponse(p dom.Product, convert func(int64) (dom.Money, error)) (dto.ProductResponse, error) {
	resp := productToResponse(p, h.pricing.Base())
	if convert != nil {
		m, err := convert(p.Price)
		if err != nil {
			return dto.ProductResponse{}, err
		}
		resp.Converted = moneyPtr(m)
	}
	return resp, nil
}
