package echoServer

import (
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"swiftride/app/echoServer/controller/admin"
	"swiftride/app/echoServer/controller/auth"
	"swiftride/app/echoServer/controller/booking"
	"swiftride/app/echoServer/controller/branch"
	"swiftride/app/echoServer/controller/payment"
	"swiftride/app/echoServer/controller/vehicle"
	"swiftride/model"
	jwtutil "swiftride/util/jwt"
)

type C struct {
	Auth      *auth.Controller
	Vehicle   *vehicle.Controller
	Booking   *booking.Controller
	Branch    *branch.Controller
	Users     *admin.UserController
	Finance   *admin.FinanceController
	Payment   *payment.Controller
	JWTSecret string
	Log       *slog.Logger
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)
	pub.POST("/payment/webhook", c.Payment.Webhook)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(echo.Context) jwt.Claims { return &jwtutil.Claims{} },
		TokenLookup:   "header:Authorization:Bearer ",
	}))
	auth.Use(Identify(c.Log))

	auth.GET("/users/me", c.Auth.Me)

	sellers := RequireRole(model.RoleSeller, model.RoleAdmin)
	customers := RequireRole(model.RoleCustomer)
	managers := RequireRole(model.RoleBranchManager, model.RoleAdmin)
	admins := RequireRole(model.RoleAdmin)

	// Vehicles; /mine before /:id
	auth.GET("/vehicles/mine", c.Vehicle.Mine, sellers)
	pub.GET("/vehicles", c.Vehicle.List)
	pub.GET("/vehicles/:id", c.Vehicle.Detail)
	pub.GET("/vehicles/:id/quote", c.Vehicle.Quote)
	auth.POST("/vehicles", c.Vehicle.Create, sellers)
	auth.PUT("/vehicles/:id", c.Vehicle.Update, sellers)
	auth.DELETE("/vehicles/:id", c.Vehicle.Delete, sellers)
	auth.PATCH("/vehicles/:id/availability", c.Vehicle.SetAvailability, sellers)

	// Bookings
	auth.POST("/bookings", c.Booking.Create, customers)
	auth.GET("/bookings/my", c.Booking.My, customers)
	auth.GET("/bookings/:id", c.Booking.Detail)
	auth.POST("/bookings/:id/cancel", c.Booking.Cancel)
	auth.GET("/bookings/:id/receipt", c.Booking.Receipt)

	// Branches
	pub.GET("/branches", c.Branch.List)
	pub.GET("/branches/:id", c.Branch.Detail)
	auth.POST("/branches", c.Branch.Create, managers)
	auth.PUT("/branches/:id", c.Branch.Update, managers)
	auth.DELETE("/branches/:id", c.Branch.Delete, admins)

	// Admin
	adm := auth.Group("/admin", admins)
	adm.GET("/users", c.Users.List)
	adm.POST("/users", c.Users.Create)
	adm.PATCH("/users/:id/status", c.Users.SetStatus)
	adm.DELETE("/users/:id", c.Users.Delete)
	adm.PATCH("/bookings/:id/status", c.Booking.UpdateStatus)

	adm.GET("/finance/overview", c.Finance.Overview)
	adm.GET("/finance/breakdown", c.Finance.Breakdown)
	adm.GET("/finance/trend", c.Finance.Trend)
	adm.GET("/finance/top-vehicles", c.Finance.TopVehicles)
	adm.GET("/finance/transactions", c.Finance.Transactions)
}
