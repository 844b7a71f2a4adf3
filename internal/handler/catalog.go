package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.catalogService.CreateProduct(ctx, req.SKU, req.Name, req.Price, req.CostPrice, req.InitialStock)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.GetProduct(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	customer, err := h.catalogService.CreateCustomer(ctx, req.Name, req.Email, req.Phone)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

func (h *CatalogHandler) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.catalogService.DeleteCustomer(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
