package bookingsvc

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner cancels bookings whose invoice was never paid.
type Cleaner interface {
	ExpireUnpaid(ctx context.Context) (int64, error)
}

type cleaner struct {
	r   Repo
	ttl time.Duration
	log *slog.Logger
}

func NewCleaner(r Repo, ttl time.Duration, log *slog.Logger) Cleaner {
	return &cleaner{r: r, ttl: ttl, log: log}
}

// ExpireUnpaid cancels pending bookings created more than ttl ago.
func (c *cleaner) ExpireUnpaid(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-c.ttl)
	n, err := c.r.ExpireUnpaid(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 && c.log != nil {
		c.log.Info("expired unpaid bookings", "count", n, "cutoff", cutoff)
	}
	return n, nil
}
