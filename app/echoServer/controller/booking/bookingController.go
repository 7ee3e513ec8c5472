package booking

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"swiftride/app/echoServer/jwtx"
	"swiftride/app/echoServer/reply"
	"swiftride/model"
	bookingsvc "swiftride/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create booking
// @Summary      Book a vehicle
// @Description  Prices the rental at the vehicle's current rate and returns the booking with its payment link.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  model.BookingReq  true  "Booking payload"
// @Success      201  {object}  model.Booking
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any "vehicle not found"
// @Failure      409  {object}  map[string]any "vehicle not available"
// @Router       /v1/bookings [post]
func (h *Controller) Create(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req model.BookingReq
	if err := reply.Bind(c, h.V, h.Log, &req); err != nil {
		return reply.Error(c, h.Log, "booking create", err)
	}
	b, err := h.Svc.Create(c.Request().Context(), a.ID, req)
	if err != nil {
		return reply.Error(c, h.Log, "booking create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /v1/bookings/my
func (h *Controller) My(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	out, err := h.Svc.MyBookings(c.Request().Context(), a.ID)
	if err != nil {
		return reply.Error(c, h.Log, "my bookings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// GET /v1/bookings/:id
func (h *Controller) Detail(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "booking detail", err)
	}
	b, err := h.Svc.Detail(c.Request().Context(), a, id)
	if err != nil {
		return reply.Error(c, h.Log, "booking detail", err)
	}
	return c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "booking cancel", err)
	}
	b, err := h.Svc.Cancel(c.Request().Context(), a, id)
	if err != nil {
		return reply.Error(c, h.Log, "booking cancel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cancelled", "booking": b})
}

// GET /v1/bookings/:id/receipt
func (h *Controller) Receipt(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "receipt", err)
	}
	pdf, err := h.Svc.Receipt(c.Request().Context(), a, id)
	if err != nil {
		return reply.Error(c, h.Log, "receipt", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="receipt_%d.pdf"`, id))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// PATCH /v1/admin/bookings/:id/status  (admin)
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "booking status", err)
	}
	var req model.StatusReq
	if err := reply.Bind(c, h.V, h.Log, &req); err != nil {
		return reply.Error(c, h.Log, "booking status", err)
	}
	b, err := h.Svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return reply.Error(c, h.Log, "booking status", err)
	}
	return c.JSON(http.StatusOK, b)
}
