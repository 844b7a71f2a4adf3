package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/middleware"
	"retail-backoffice/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.CreateOrder(ctx, &req)
	middleware.RecordOperation("create_order", err == nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.CancelOrder(ctx, c.Param("id"))
	middleware.RecordOperation("cancel_order", err == nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
