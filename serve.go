package main

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"swiftride/app/echoServer"
	adminctrl "swiftride/app/echoServer/controller/admin"
	authctrl "swiftride/app/echoServer/controller/auth"
	bookingctrl "swiftride/app/echoServer/controller/booking"
	branchctrl "swiftride/app/echoServer/controller/branch"
	paymentctrl "swiftride/app/echoServer/controller/payment"
	vehiclectrl "swiftride/app/echoServer/controller/vehicle"
	"swiftride/app/echoServer/validation"
	bookingrepo "swiftride/repository/booking"
	branchrepo "swiftride/repository/branch"
	financerepo "swiftride/repository/finance"
	userrepo "swiftride/repository/user"
	vehiclerepo "swiftride/repository/vehicle"
	authsvc "swiftride/service/auth"
	bookingsvc "swiftride/service/booking"
	branchsvc "swiftride/service/branch"
	financesvc "swiftride/service/finance"
	paymentsvc "swiftride/service/payment"
	usersvc "swiftride/service/user"
	vehiclesvc "swiftride/service/vehicle"
)

func serve(ctx context.Context, log *slog.Logger) error {
	in, err := open(ctx, log)
	if err != nil {
		return err
	}
	defer in.Close()
	cfg := in.cfg

	// repos
	ur := userrepo.New(in.db)
	vr := vehiclerepo.New(in.db)
	br := bookingrepo.New(in.db)
	brr := branchrepo.New(in.db)
	fr := financerepo.New(in.db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, cfg.JWTTTLHours)
	vs := vehiclesvc.New(vr)
	bs := bookingsvc.New(bookingsvc.Deps{
		Bookings:   br,
		Vehicles:   vr,
		Users:      ur,
		Gateway:    in.gateway,
		Events:     in.events,
		Log:        log,
		InvoiceTTL: cfg.PaymentInvoiceTTL,
	})
	ps := paymentsvc.New(in.gateway, br, in.events, log)
	brs := branchsvc.New(brr, ur)
	us := usersvc.New(ur)
	fs := financesvc.New(fr, in.cache, cfg.FinanceCacheTTL)

	// controllers
	val := validation.New()
	v := val.Engine()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	vehicleC := &vehiclectrl.Controller{Svc: vs, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	branchC := &branchctrl.Controller{Svc: brs, V: v, Log: log}
	usersC := &adminctrl.UserController{Svc: us, V: v, Log: log}
	financeC := &adminctrl.FinanceController{Svc: fs, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, log)
	e.Validator = val

	e.GET("/health", func(c echo.Context) error {
		if err := in.db.Pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(503, map[string]any{"status": "degraded", "message": "database unreachable"})
		}
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Vehicle: vehicleC,
		Booking: bookingC,
		Branch:  branchC,
		Users:   usersC,
		Finance: financeC,
		Payment: paymentC,

		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)
	return e.Start(":" + port)
}
