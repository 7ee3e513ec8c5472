package branch

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"swiftride/app/echoServer/jwtx"
	"swiftride/app/echoServer/reply"
	"swiftride/model"
	branchsvc "swiftride/service/branch"
)

type Controller struct {
	Svc branchsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// List branches
// @Summary      List active branches
// @Tags         branches
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/branches [get]
func (h *Controller) List(c echo.Context) error {
	out, err := h.Svc.List(c.Request().Context(), true)
	if err != nil {
		return reply.Error(c, h.Log, "list branches", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"branches": out})
}

// GET /v1/branches/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "branch detail", err)
	}
	b, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return reply.Error(c, h.Log, "branch detail", err)
	}
	return c.JSON(http.StatusOK, b)
}

// POST /v1/branches  (branch-manager, admin)
func (h *Controller) Create(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var in model.BranchInput
	if err := reply.Bind(c, h.V, h.Log, &in); err != nil {
		return reply.Error(c, h.Log, "branch create", err)
	}
	b, err := h.Svc.Create(c.Request().Context(), a, in)
	if err != nil {
		return reply.Error(c, h.Log, "branch create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// PUT /v1/branches/:id  (branch-manager, admin)
func (h *Controller) Update(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "branch update", err)
	}
	var in model.BranchInput
	if err := reply.Bind(c, h.V, h.Log, &in); err != nil {
		return reply.Error(c, h.Log, "branch update", err)
	}
	b, err := h.Svc.Update(c.Request().Context(), a, id, in)
	if err != nil {
		return reply.Error(c, h.Log, "branch update", err)
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /v1/branches/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "branch delete", err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return reply.Error(c, h.Log, "branch delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
