package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/middleware"
	"retail-backoffice/internal/service"
)

type ProductionHandler struct {
	productionService service.ProductionService
}

func NewProductionHandler(productionService service.ProductionService) *ProductionHandler {
	return &ProductionHandler{
		productionService: productionService,
	}
}

func (h *ProductionHandler) CreateProductionOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductionOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.productionService.CreateProductionOrder(ctx, req.RecipeID, req.WorkCenter, req.PlannedQuantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *ProductionHandler) GetProductionOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.productionService.GetProductionOrder(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *ProductionHandler) IssueMaterials(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.MaterialItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	err := h.productionService.IssueMaterials(ctx, c.Param("id"), req.Items)
	middleware.RecordOperation("issue_materials", err == nil)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductionHandler) ReceiveOutput(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.MaterialItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	err := h.productionService.ReceiveOutput(ctx, c.Param("id"), req.Items)
	middleware.RecordOperation("receive_output", err == nil)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductionHandler) ChangeOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ChangeProductionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.productionService.ChangeOrderStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
