package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/BoulehmiHoussem/Logient/internal/repository"

	"gorm.io/gorm"
)

// ExpiryReaper deletes links past the retention window. It owns no timer of
// its own beyond Start; the reap command invokes Run directly from cron.
type ExpiryReaper struct {
	store     *repository.LinkStore
	logger    *slog.Logger
	retention time.Duration
}

func NewExpiryReaper(db *gorm.DB, logger *slog.Logger, retention time.Duration) *ExpiryReaper {
	return &ExpiryReaper{
		store:     repository.NewLinkStore(db),
		logger:    logger,
		retention: retention,
	}
}

// Run deletes every link whose age at now is the retention window or more
// (a link exactly at the boundary is expired). Idempotent for a fixed now.
func (r *ExpiryReaper) Run(now time.Time) (int64, error) {
	cutoff := now.Add(-r.retention)
	deleted, err := r.store.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	r.logger.Info("Expiry reaper finished", "deleted", deleted, "cutoff", cutoff)
	return deleted, nil
}

// Start runs the reaper once per interval until the context is cancelled.
func (r *ExpiryReaper) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("Expiry reaper starting", "interval", interval, "retention", r.retention)
	for {
		select {
		case <-ticker.C:
			if _, err := r.Run(time.Now()); err != nil {
				r.logger.Error("Expiry reaper run failed", "error", err)
			}
		case <-ctx.Done():
			r.logger.Info("Expiry reaper stopping")
			return
		}
	}
}
