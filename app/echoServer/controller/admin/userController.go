package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"swiftride/app/echoServer/jwtx"
	"swiftride/app/echoServer/reply"
	"swiftride/model"
	"swiftride/repository/query"
	usersvc "swiftride/service/user"
)

type UserController struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// List users
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role       query  string  false  "role filter"
// @Param        isActive   query  bool    false  "active flag"
// @Param        search     query  string  false  "name or email substring"
// @Param        sortBy     query  string  false  "createdAt | name | email | role"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        page       query  int     false  "page"
// @Param        limit      query  int     false  "page size"
// @Success      200  {object}  model.UserList
// @Failure      400  {object}  map[string]any
// @Router       /v1/admin/users [get]
func (h *UserController) List(c echo.Context) error {
	var p query.UserParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	q, err := p.Build()
	if err != nil {
		return reply.Error(c, h.Log, "list users", err)
	}
	out, err := h.Svc.List(c.Request().Context(), q)
	if err != nil {
		return reply.Error(c, h.Log, "list users", err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/admin/users
func (h *UserController) Create(c echo.Context) error {
	var req model.RegisterReq
	if err := reply.Bind(c, h.V, h.Log, &req); err != nil {
		return reply.Error(c, h.Log, "user create", err)
	}
	u, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return reply.Error(c, h.Log, "user create", err)
	}
	return c.JSON(http.StatusCreated, u)
}

// PATCH /v1/admin/users/:id/status
func (h *UserController) SetStatus(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "user status", err)
	}
	var req UserStatusReq
	if err := reply.Bind(c, h.V, h.Log, &req); err != nil {
		return reply.Error(c, h.Log, "user status", err)
	}
	u, err := h.Svc.SetActive(c.Request().Context(), a, id, *req.IsActive)
	if err != nil {
		return reply.Error(c, h.Log, "user status", err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /v1/admin/users/:id
func (h *UserController) Delete(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := reply.ID(c)
	if err != nil {
		return reply.Error(c, h.Log, "user delete", err)
	}
	if err := h.Svc.Delete(c.Request().Context(), a, id); err != nil {
		return reply.Error(c, h.Log, "user delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
