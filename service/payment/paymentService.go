package paymentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"swiftride/model"
	bookingrepo "swiftride/repository/booking"
	xenditrepo "swiftride/repository/xendit"
	"swiftride/util/apperr"
	"swiftride/util/events"
)

// VerifyResult summarises one pass over pending payments.
type VerifyResult struct {
	Checked  int `json:"checked"`
	Paid     int `json:"paid"`
	Failed   int `json:"failed"`
	Errors   int `json:"errors"`
	Orphaned int `json:"orphaned"` // paid at the provider after the booking closed
}

type Service interface {
	// HandleWebhook applies a provider invoice callback. Replays are no-ops.
	HandleWebhook(ctx context.Context, token string, raw []byte) error
	// VerifyPending asks the provider about every booking still awaiting payment.
	VerifyPending(ctx context.Context) (VerifyResult, error)
}

type service struct {
	xv  xenditrepo.Repo
	r   bookingrepo.Repo
	pub events.Publisher
	log *slog.Logger
}

func New(xv xenditrepo.Repo, r bookingrepo.Repo, pub events.Publisher, log *slog.Logger) Service {
	if pub == nil {
		pub = events.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &service{xv: xv, r: r, pub: pub, log: log}
}

type xInvoiceEvent struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ExternalID string `json:"external_id"`
}

type outcome int

const (
	unchanged outcome = iota
	paid
	failed
	orphaned
)

func (s *service) HandleWebhook(ctx context.Context, token string, raw []byte) error {
	if s.xv == nil {
		return apperr.New(apperr.ErrNotFound, "payments are not configured")
	}
	if err := s.xv.VerifyCallbackToken(token); err != nil {
		return apperr.Wrap(apperr.ErrUnauthorized, err)
	}

	var ev xInvoiceEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return apperr.New(apperr.ErrBadInput, "bad webhook json")
	}
	if ev.ID == "" || ev.Status == "" {
		return apperr.New(apperr.ErrBadInput, "missing invoice fields")
	}

	b, err := s.r.ByInvoice(ctx, ev.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.New(apperr.ErrNotFound, "invoice not mapped to a booking")
	}
	if err != nil {
		return err
	}
	_, err = s.apply(ctx, b, ev.Status)
	return err
}

// apply moves the booking's payment according to the provider status.
func (s *service) apply(ctx context.Context, b *model.Booking, status string) (outcome, error) {
	switch status {
	case xenditrepo.StatusPaid, xenditrepo.StatusSettled:
		c, err := s.r.ConfirmPayment(ctx, b.ID)
		if err != nil {
			return unchanged, err
		}
		b.Status, b.PaymentStatus = c.Status, c.PaymentStatus
		if !c.Applied {
			// replays of a settled payment, including one already refunded
			if c.PaymentStatus == model.PaymentPaid || c.PaymentStatus == model.PaymentRefunded {
				return unchanged, nil
			}
			s.log.Warn("payment received for closed booking, refund manually",
				"booking_id", b.ID,
				"status", b.Status,
				"payment_status", b.PaymentStatus,
				"invoice_id", invoiceID(b),
				"amount", b.TotalAmount,
			)
			events.Emit(ctx, s.pub, s.log, events.PaymentOrphaned, b)
			return orphaned, nil
		}
		events.Emit(ctx, s.pub, s.log, events.BookingPaid, b)
		s.log.Info("booking paid", "booking_id", b.ID, "amount", b.TotalAmount)
		return paid, nil
	case xenditrepo.StatusExpired, xenditrepo.StatusFailed:
		changed, err := s.r.MarkPaymentFailed(ctx, b.ID)
		if err != nil || !changed {
			return unchanged, err
		}
		s.log.Info("booking payment failed", "booking_id", b.ID, "provider_status", status)
		return failed, nil
	}
	return unchanged, nil
}

func (s *service) VerifyPending(ctx context.Context) (VerifyResult, error) {
	var res VerifyResult
	if s.xv == nil {
		return res, errors.New("payment gateway is not configured")
	}
	pending, err := s.r.PendingPayments(ctx)
	if err != nil {
		return res, err
	}
	for i := range pending {
		b := &pending[i]
		if b.PaymentInvoice == nil {
			continue
		}
		res.Checked++
		inv, err := s.xv.GetInvoice(ctx, *b.PaymentInvoice)
		if err != nil {
			res.Errors++
			s.log.Warn("invoice lookup failed", "booking_id", b.ID, "invoice_id", *b.PaymentInvoice, "err", err)
			continue
		}
		out, err := s.apply(ctx, b, inv.Status)
		if err != nil {
			res.Errors++
			s.log.Error("apply invoice status", "booking_id", b.ID, "err", err)
			continue
		}
		switch out {
		case paid:
			res.Paid++
		case failed:
			res.Failed++
		case orphaned:
			res.Orphaned++
		}
	}
	return res, nil
}

func invoiceID(b *model.Booking) string {
	if b.PaymentInvoice == nil {
		return ""
	}
	return *b.PaymentInvoice
}
