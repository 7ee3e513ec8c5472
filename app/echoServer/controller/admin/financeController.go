package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"swiftride/app/echoServer/reply"
	"swiftride/repository/query"
	"swiftride/util/apperr"
	financesvc "swiftride/service/finance"
)

type FinanceController struct {
	Svc financesvc.Service
	Log *slog.Logger
	Now func() time.Time
}

func (h *FinanceController) rng(c echo.Context) (query.DateRange, error) {
	var p RangeParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return query.DateRange{}, apperr.New(apperr.ErrBadInput, "invalid query")
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return financesvc.ResolveRange(p.Period, p.StartDate, p.EndDate, now())
}

// Revenue overview
// @Summary      Revenue overview
// @Description  Totals over paid bookings in the window. period = week | month | quarter | year (no period means all time); explicit startDate/endDate win.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        period     query  string  false  "week | month | quarter | year"
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  model.RevenueOverview
// @Failure      400  {object}  map[string]any
// @Router       /v1/admin/finance/overview [get]
func (h *FinanceController) Overview(c echo.Context) error {
	rng, err := h.rng(c)
	if err != nil {
		return reply.Error(c, h.Log, "finance overview", err)
	}
	out, err := h.Svc.Overview(c.Request().Context(), rng)
	if err != nil {
		return reply.Error(c, h.Log, "finance overview", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/admin/finance/breakdown
func (h *FinanceController) Breakdown(c echo.Context) error {
	rng, err := h.rng(c)
	if err != nil {
		return reply.Error(c, h.Log, "finance breakdown", err)
	}
	out, err := h.Svc.Breakdown(c.Request().Context(), rng)
	if err != nil {
		return reply.Error(c, h.Log, "finance breakdown", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/admin/finance/trend
func (h *FinanceController) Trend(c echo.Context) error {
	out, err := h.Svc.Trend(c.Request().Context())
	if err != nil {
		return reply.Error(c, h.Log, "finance trend", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"trend": out})
}

// GET /v1/admin/finance/top-vehicles
func (h *FinanceController) TopVehicles(c echo.Context) error {
	rng, err := h.rng(c)
	if err != nil {
		return reply.Error(c, h.Log, "top vehicles", err)
	}
	out, err := h.Svc.TopVehicles(c.Request().Context(), rng)
	if err != nil {
		return reply.Error(c, h.Log, "top vehicles", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicles": out})
}

// GET /v1/admin/finance/transactions
func (h *FinanceController) Transactions(c echo.Context) error {
	var p query.TransactionParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	q, err := p.Build()
	if err != nil {
		return reply.Error(c, h.Log, "transactions", err)
	}
	out, err := h.Svc.Transactions(c.Request().Context(), q)
	if err != nil {
		return reply.Error(c, h.Log, "transactions", err)
	}
	return c.JSON(http.StatusOK, out)
}
