package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/middleware"
	"retail-backoffice/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	payment, err := h.paymentService.CreatePayment(ctx, &req)
	middleware.RecordOperation("create_payment", err == nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	payment, err := h.paymentService.UpdatePayment(ctx, c.Param("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.paymentService.DeletePayment(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RefundPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	refund, err := h.paymentService.RefundPayment(ctx, c.Param("id"), req.Notes)
	middleware.RecordOperation("refund_payment", err == nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, refund)
}

func (h *PaymentHandler) SearchPayments(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SearchPaymentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query params")
	}

	page, err := h.paymentService.SearchPayments(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}
