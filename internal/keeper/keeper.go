// Package keeper periodically re-runs session reload so that a token
// invalidated out-of-band (the API client clears only the persisted copy on
// a 401) does not leave the in-memory session authenticated until the next
// restart. Disabled by default; the ambient 401 behavior alone matches the
// application's original contract.
package keeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/blossomapp/client/internal/session"
)

type Keeper struct {
	cron    *cron.Cron
	store   *session.Store
	timeout time.Duration
	logger  *zap.Logger
}

// New schedules a revalidation every interval.
func New(store *session.Store, interval time.Duration, logger *zap.Logger) *Keeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	k := &Keeper{
		cron:    cron.New(cron.WithSeconds()),
		store:   store,
		timeout: interval,
		logger:  logger,
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = k.cron.AddFunc(schedule, k.revalidate)

	return k
}

// Start launches the cron scheduler.
func (k *Keeper) Start() {
	k.cron.Start()
}

// Stop halts the scheduler and waits for an in-flight revalidation.
func (k *Keeper) Stop() {
	ctx := k.cron.Stop()
	<-ctx.Done()
}

func (k *Keeper) revalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	if err := k.store.Reload(ctx); err != nil {
		k.logger.Warn("session revalidation failed", zap.Error(err))
	}
}
