package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libsys/backend/internal/errs"
	"github.com/libsys/backend/internal/model"
	"github.com/libsys/backend/pkg/validate"
)

type RateConfig struct {
	CreateLoanRequests int
	CreateLoanWindow   time.Duration
}

type Handler struct {
	circulationSvc  CirculationService
	notificationSvc NotificationService
	rate            RateConfig
	log             *zap.Logger
}

func New(circulationSvc CirculationService, notificationSvc NotificationService, rate RateConfig, log *zap.Logger) *Handler {
	return &Handler{
		circulationSvc:  circulationSvc,
		notificationSvc: notificationSvc,
		rate:            rate,
		log:             log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
	)

	api.GET("/books", h.ListBooks)
	api.GET("/loans", h.ListLoans)
	api.POST("/loans", h.CreateLoan, newMutationRateLimiter(h.rate.CreateLoanRequests, h.rate.CreateLoanWindow))
	api.POST("/loans/:loanId/return", h.ReturnLoan)
	api.POST("/loans/:loanId/extend", h.ExtendLoan)
	api.POST("/notifications/dispatch", h.DispatchNotifications)
	api.GET("/analytics/dashboard", h.Dashboard)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListBooks(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page")) //nolint:errcheck
	size, _ := strconv.Atoi(c.QueryParam("size")) //nolint:errcheck
	list, err := h.circulationSvc.ListBooks(c.Request().Context(), model.BookQuery{
		Title:  c.QueryParam("title"),
		Author: c.QueryParam("author"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) ListLoans(c echo.Context) error {
	actingID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	page, _ := strconv.Atoi(c.QueryParam("page")) //nolint:errcheck
	size, _ := strconv.Atoi(c.QueryParam("size")) //nolint:errcheck
	list, err := h.circulationSvc.ListLoans(c.Request().Context(), model.LoanFilter{
		UserID: actingID,
		Status: model.LoanStatus(c.QueryParam("status")),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	actingID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	if req.UserID != actingID {
		return echo.NewHTTPError(http.StatusForbidden, "loans can only be created for yourself")
	}

	loan, err := h.circulationSvc.CreateLoan(c.Request().Context(), req.UserID, req.BookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	loanID, err := strconv.Atoi(c.Param("loanId"))
	if err != nil || loanID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid loanId")
	}
	actingID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.circulationSvc.ReturnLoan(c.Request().Context(), loanID, actingID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ExtendLoan(c echo.Context) error {
	loanID, err := strconv.Atoi(c.Param("loanId"))
	if err != nil || loanID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid loanId")
	}
	actingID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	loan, err := h.circulationSvc.ExtendLoan(c.Request().Context(), loanID, actingID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) DispatchNotifications(c echo.Context) error {
	var req model.DispatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.notificationSvc.Dispatch(c.Request().Context(), req.Channels, req.Limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Dashboard(c echo.Context) error {
	summary, err := h.circulationSvc.DashboardSummary(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrBookNotFound),
		errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrLoanNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrUserInactive):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrLoanLimit),
		errors.Is(err, errs.ErrOutstandingOverdue),
		errors.Is(err, errs.ErrOutOfStock),
		errors.Is(err, errs.ErrRenewOverdue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
