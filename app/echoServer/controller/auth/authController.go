package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"swiftride/app/echoServer/jwtx"
	"swiftride/app/echoServer/reply"
	"swiftride/model"
	authsvc "swiftride/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Register user
// @Description  Register a customer, seller or branch manager. Customers need license_number, branch managers need branch_location.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      403  {object}  map[string]any "admin self-registration"
// @Failure      409  {object}  map[string]any "email already registered"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /v1/users/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := reply.Bind(c, ct.V, ct.Log, &req); err != nil {
		return reply.Error(c, ct.Log, "register", err)
	}

	u, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return reply.Error(c, ct.Log, "register", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered",
		"user":    u,
		"token":   token,
	})
}

// Login
// @Summary      Login
// @Description  Login with email + password, returns JWT
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any "account deactivated"
// @Failure      500  {object}  map[string]any
// @Router       /v1/users/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := reply.Bind(c, ct.V, ct.Log, &req); err != nil {
		return reply.Error(c, ct.Log, "login", err)
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		return reply.Error(c, ct.Log, "login", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"token":   token,
		"user":    u,
	})
}

// Me
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      401  {object}  map[string]any
// @Router       /v1/users/me [get]
func (ct *Controller) Me(c echo.Context) error {
	a, err := jwtx.Actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	u, err := ct.Svc.Me(c.Request().Context(), a.ID)
	if err != nil {
		return reply.Error(c, ct.Log, "me", err)
	}
	return c.JSON(http.StatusOK, u)
}
