package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"swiftride/model"
	jwtutil "swiftride/util/jwt"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

var ErrNoIdentity = errors.New("no authenticated user in context")

// Identify copies the verified token's subject and role into the context.
func Identify(c echo.Context) error {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(*jwtutil.Claims)
	if !ok {
		return errors.New("invalid jwt claims")
	}
	id, err := claims.UserID()
	if err != nil || id <= 0 {
		return errors.New("sub missing in claims")
	}
	role := model.Role(claims.Role)
	if !role.Valid() {
		return errors.New("unknown role in claims")
	}
	c.Set(ctxUserID, id)
	c.Set(ctxRole, role)
	return nil
}

// Actor returns the caller placed in the context by Identify.
func Actor(c echo.Context) (model.Actor, error) {
	id, ok := c.Get(ctxUserID).(int64)
	if !ok {
		return model.Actor{}, ErrNoIdentity
	}
	role, _ := c.Get(ctxRole).(model.Role)
	return model.Actor{ID: id, Role: role}, nil
}

// SetActor places a caller in the context directly.
func SetActor(c echo.Context, a model.Actor) {
	c.Set(ctxUserID, a.ID)
	c.Set(ctxRole, a.Role)
}
