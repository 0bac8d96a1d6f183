package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fellowshipconnect/server/internal/services"
	"github.com/fellowshipconnect/server/pkg/logger"
)

const (
	defaultSpec                  = "@daily"
	defaultNotificationRetention = 30 * 24 * time.Hour
)

// Cleaner coordinates background maintenance: deactivating expired invite
// codes and purging old read notifications. Any nil dependency results in the
// corresponding job being skipped.
type Cleaner struct {
	invites       *services.InviteService
	notifications *services.NotificationService
	cron          *cron.Cron
	now           func() time.Time
	log           *zap.Logger
	schedule      string
	retention     time.Duration
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for retention comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithSchedule overrides the cron specification for both cleanup jobs.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// WithNotificationRetention adjusts how long read notifications are kept.
func WithNotificationRetention(d time.Duration) Option {
	return func(cleaner *Cleaner) {
		if d > 0 {
			cleaner.retention = d
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults.
func NewCleaner(invites *services.InviteService, notifications *services.NotificationService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		invites:       invites,
		notifications: notifications,
		now:           time.Now,
		schedule:      defaultSpec,
		retention:     defaultNotificationRetention,
		log:           logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the cleanup jobs with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.invites == nil && c.notifications == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("maintenance run failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured cleanup routines sequentially. Primarily
// used in tests and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if c.invites != nil {
		swept, err := c.invites.DeactivateExpired(ctx)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if swept > 0 {
			c.log.Info("deactivated expired invite codes", zap.Int64("count", swept))
		}
	}

	if c.notifications != nil && c.retention > 0 {
		cutoff := c.now().Add(-c.retention)
		purged, err := c.notifications.PurgeReadBefore(ctx, cutoff)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if purged > 0 {
			c.log.Info("purged read notifications", zap.Int64("count", purged))
		}
	}

	return errs
}
