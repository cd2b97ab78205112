package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"rooneyform-backend/internal/dto"
	"rooneyform-backend/internal/model"
	"rooneyform-backend/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	products, err := h.catalogService.ListProducts(
		ctx,
		c.QueryParam("search"),
		c.QueryParam("category_slug"),
		limit,
		offset,
	)
	if err != nil {
		return httpError(err)
	}

	resp := make([]*dto.ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, toProductResponse(product))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}

	product, err := h.catalogService.GetProduct(ctx, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *CatalogHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.ProductCreate
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	product, err := h.catalogService.CreateProduct(ctx, &payload)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}

	var payload dto.ProductUpdate
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	product, err := h.catalogService.UpdateProduct(ctx, id, &payload)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}

	if err := h.catalogService.DeleteProduct(ctx, id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

// toProductResponse flattens the gallery the way the storefront expects it:
// primary image first, then the extra images.
func toProductResponse(product *model.Product) *dto.ProductResponse {
	gallery := make([]string, 0, len(product.GalleryImages)+1)
	if product.ImageURL != "" {
		gallery = append(gallery, product.ImageURL)
	}
	for _, image := range product.GalleryImages {
		gallery = append(gallery, image.ImageURL)
	}

	return &dto.ProductResponse{
		Product: *product,
		Gallery: gallery,
	}
}
