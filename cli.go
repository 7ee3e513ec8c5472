package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"swiftride/migrations"
	"swiftride/model"
	bookingrepo "swiftride/repository/booking"
	userrepo "swiftride/repository/user"
	authsvc "swiftride/service/auth"
	bookingsvc "swiftride/service/booking"
	paymentsvc "swiftride/service/payment"
)

func migrateCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := open(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer in.Close()
			return migrations.Apply(cmd.Context(), in.db, log)
		},
	}
}

func paymentsCmd(log *slog.Logger) *cobra.Command {
	payments := &cobra.Command{Use: "payments", Short: "Payment maintenance"}
	payments.AddCommand(&cobra.Command{
		Use:   "verify",
		Short: "Reconcile pending payments with the provider and expire stale bookings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			in, err := open(ctx, log)
			if err != nil {
				return err
			}
			defer in.Close()

			br := bookingrepo.New(in.db)
			if in.gateway != nil {
				res, err := paymentsvc.New(in.gateway, br, in.events, log).VerifyPending(ctx)
				if err != nil {
					return err
				}
				log.Info("payments verified",
					"checked", res.Checked, "paid", res.Paid, "failed", res.Failed, "orphaned", res.Orphaned, "errors", res.Errors)
			}

			n, err := bookingsvc.NewCleaner(br, in.cfg.PaymentInvoiceTTL, log).ExpireUnpaid(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expired %d unpaid bookings\n", n)
			return nil
		},
	})
	return payments
}

func usersCmd(log *slog.Logger) *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "Account administration"}

	var req model.RegisterReq
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			in, err := open(ctx, log)
			if err != nil {
				return err
			}
			defer in.Close()

			req.Role = model.RoleAdmin
			u, err := authsvc.NewAccount(req)
			if err != nil {
				return err
			}
			if err := authsvc.CreateAccount(ctx, userrepo.New(in.db), u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", u.Email, u.ID)
			return nil
		},
	}
	f := createAdmin.Flags()
	f.StringVar(&req.Email, "email", "", "admin email")
	f.StringVar(&req.Password, "password", "", "admin password")
	f.StringVar(&req.FirstName, "first-name", "", "first name")
	f.StringVar(&req.LastName, "last-name", "", "last name")
	for _, name := range []string{"email", "password", "first-name", "last-name"} {
		_ = createAdmin.MarkFlagRequired(name)
	}

	users.AddCommand(createAdmin)
	return users
}
