package vehicle

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"swiftride/app/echoServer/jwtx"
	"swiftride/app/echoServer/reply"
	"swiftride/model"
	"swiftride/repository/query"
	"swiftride/service/pricing"
	vehiclesvc "swiftride/service/vehicle"
	"swiftride/util/apperr"
)

type Controller struct {
	Svc vehiclesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// List vehicles
// @Summary      List vehicles
// @Description  Available vehicles by default; available=false for unavailable only, available=all for both. seats=8 means 8 or more.
// @Tags         vehicles
// @Produce      json
// @Param        available     query  string  false  "true (default) | false | all"
// @Param        type          query  string  false  "category"
// @Param        fuelType      query  string  false  "fuel type"
// @Param        transmission  query  string  false  "transmission"
// @Param        seats         query  int     false  "seat count"
// @Param        location      query  string  false  "location substring"
// @Param        minPrice      query  number  false  "min daily rate"
// @Param        maxPrice      query  number  false  "max daily rate"
// @Param        sortBy        query  string  false  "price | year | createdAt"
// @Param        sortOrder     query  string  false  "asc | desc"
// @Param        page          query  int     false  "page (1-indexed)"
// @Param        limit         query  int     false  "page size (default 12)"
// @Success      200  {object}  model.VehicleList
// @Failure      400  {object}  map[string]any
// @Router       /v1/vehicles [get]
func (h *Controller) List(c echo.Context) error {
	var p query.VehicleParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	q, err := p.Build()
	if err != nil {
		return reply.Error(c, h.Log, "list vehicles", err)
	}
	out, err := h.Svc.List(c.Request().Context(), q)
	if err != nil {
		return reply.Error(c, h.Log, "list vehicles", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/vehicles/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "vehicle detail", err)
	}
	v, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return reply.Error(c, h.Log, "vehicle detail", err)
	}
	return c.JSON(http.StatusOK, v)
}

// GET /v1/vehicles/:id/quote?startDate=&endDate=
func (h *Controller) Quote(c echo.Context) error {
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "quote", err)
	}
	var p QuoteParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	start, err := pricing.ParseDate(p.StartDate)
	if err != nil {
		return reply.Error(c, h.Log, "quote", apperr.New(apperr.ErrBadInput, "invalid startDate"))
	}
	end, err := pricing.ParseDate(p.EndDate)
	if err != nil {
		return reply.Error(c, h.Log, "quote", apperr.New(apperr.ErrBadInput, "invalid endDate"))
	}
	q, err := h.Svc.Quote(c.Request().Context(), id, start, end)
	if err != nil {
		return reply.Error(c, h.Log, "quote", err)
	}
	return c.JSON(http.StatusOK, q)
}

// GET /v1/vehicles/mine  (seller, admin)
func (h *Controller) Mine(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	out, err := h.Svc.Mine(c.Request().Context(), a.ID)
	if err != nil {
		return reply.Error(c, h.Log, "my vehicles", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicles": out})
}

// POST /v1/vehicles  (seller, admin)
func (h *Controller) Create(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var in model.VehicleInput
	if err := reply.Bind(c, h.V, h.Log, &in); err != nil {
		return reply.Error(c, h.Log, "vehicle create", err)
	}
	v, err := h.Svc.Create(c.Request().Context(), a, in)
	if err != nil {
		return reply.Error(c, h.Log, "vehicle create", err)
	}
	return c.JSON(http.StatusCreated, v)
}

// PUT /v1/vehicles/:id  (owner, admin)
func (h *Controller) Update(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "vehicle update", err)
	}
	var in model.VehicleInput
	if err := reply.Bind(c, h.V, h.Log, &in); err != nil {
		return reply.Error(c, h.Log, "vehicle update", err)
	}
	v, err := h.Svc.Update(c.Request().Context(), a, id, in)
	if err != nil {
		return reply.Error(c, h.Log, "vehicle update", err)
	}
	return c.JSON(http.StatusOK, v)
}

// DELETE /v1/vehicles/:id  (owner, admin)
func (h *Controller) Delete(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "vehicle delete", err)
	}
	if err := h.Svc.Delete(c.Request().Context(), a, id); err != nil {
		return reply.Error(c, h.Log, "vehicle delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// PATCH /v1/vehicles/:id/availability  (owner, admin)
func (h *Controller) SetAvailability(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "vehicle availability", err)
	}
	var req AvailabilityReq
	if err := reply.Bind(c, h.V, h.Log, &req); err != nil {
		return reply.Error(c, h.Log, "vehicle availability", err)
	}
	v, err := h.Svc.SetAvailability(c.Request().Context(), a, id, *req.IsAvailable)
	if err != nil {
		return reply.Error(c, h.Log, "vehicle availability", err)
	}
	return c.JSON(http.StatusOK, v)
}
