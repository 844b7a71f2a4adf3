package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/handler"
	"retail-backoffice/internal/middleware"
	"retail-backoffice/internal/service"
)

type Server struct {
	echo              *echo.Echo
	orderHandler      *handler.OrderHandler
	paymentHandler    *handler.PaymentHandler
	productionHandler *handler.ProductionHandler
	catalogHandler    *handler.CatalogHandler
}

func NewServer(
	orderService service.OrderService,
	paymentService service.PaymentService,
	productionService service.ProductionService,
	catalogService service.CatalogService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.PrometheusMiddleware())
	e.Use(requestLogger())

	s := &Server{
		echo:              e,
		orderHandler:      handler.NewOrderHandler(orderService),
		paymentHandler:    handler.NewPaymentHandler(paymentService),
		productionHandler: handler.NewProductionHandler(productionService),
		catalogHandler:    handler.NewCatalogHandler(catalogService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// everything below is tenant-scoped
	scoped := api.Group("", middleware.TenantMiddleware())

	scoped.POST("/orders", s.orderHandler.CreateOrder)
	scoped.GET("/orders/:id", s.orderHandler.GetOrder)
	scoped.POST("/orders/:id/cancel", s.orderHandler.CancelOrder)

	scoped.POST("/payments", s.paymentHandler.CreatePayment)
	scoped.GET("/payments", s.paymentHandler.SearchPayments)
	scoped.PUT("/payments/:id", s.paymentHandler.UpdatePayment)
	scoped.DELETE("/payments/:id", s.paymentHandler.DeletePayment)
	scoped.POST("/payments/:id/refund", s.paymentHandler.RefundPayment)

	scoped.POST("/production-orders", s.productionHandler.CreateProductionOrder)
	scoped.GET("/production-orders/:id", s.productionHandler.GetProductionOrder)
	scoped.POST("/production-orders/:id/issue-materials", s.productionHandler.IssueMaterials)
	scoped.POST("/production-orders/:id/receive-output", s.productionHandler.ReceiveOutput)
	scoped.PUT("/production-orders/:id/status", s.productionHandler.ChangeOrderStatus)

	scoped.POST("/products", s.catalogHandler.CreateProduct)
	scoped.GET("/products/:id", s.catalogHandler.GetProduct)
	scoped.POST("/customers", s.catalogHandler.CreateCustomer)
	scoped.DELETE("/customers/:id", s.catalogHandler.DeleteCustomer)
}

// errorHandler maps domain failures onto response codes: missing aggregates
// are 404, rejected input is 400, state conflicts are 409, everything else
// (storage failures included) is a logged 500.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, map[string]interface{}{"error": httpErr.Message})
		return
	}

	var status int
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperr.KindIllegalState:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		logrus.WithError(err).WithField("path", c.Request().URL.Path).Error("request failed")
	}

	_ = c.JSON(status, map[string]string{"error": err.Error()})
}

func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request")
			} else {
				entry.Info("request")
			}
			return nil
		},
	})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
