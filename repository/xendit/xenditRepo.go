package xenditrepo

import (
	"context"
	"time"
)

// Invoice statuses reported by the provider.
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusSettled = "SETTLED"
	StatusExpired = "EXPIRED"
	StatusFailed  = "FAILED"
)

type CreateInvoiceReq struct {
	ExternalID  string
	Amount      float64
	PayerEmail  string
	Description string
	Expiry      time.Duration
}

type Invoice struct {
	ID         string
	ExternalID string
	URL        string
	Status     string
	ExpiresAt  time.Time
}

type Repo interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceReq) (*Invoice, error)
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	// ExpireInvoice closes an unpaid invoice so it can no longer be paid.
	ExpireInvoice(ctx context.Context, id string) (*Invoice, error)
	// VerifyCallbackToken checks the token the provider sends with every webhook.
	VerifyCallbackToken(token string) error
}
