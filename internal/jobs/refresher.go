package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"bookingcalendar/internal/domain"
)

// Refresher periodically re-fetches the upcoming slots of a calendar so that
// optimistic booking updates are reconciled with the backend.
type Refresher struct {
	Service    domain.CalendarService
	Logger     *slog.Logger
	CalendarID string
	Days       int
	Timeout    time.Duration

	now  func() time.Time
	cron *cron.Cron
}

// NewRefresher returns a Refresher for calendarID covering the next days days.
func NewRefresher(svc domain.CalendarService, logger *slog.Logger, calendarID string, days int, timeout time.Duration) *Refresher {
	return &Refresher{
		Service:    svc,
		Logger:     logger,
		CalendarID: calendarID,
		Days:       days,
		Timeout:    timeout,
		now:        time.Now,
	}
}

// Run performs one refresh.
func (r *Refresher) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	start := time.Now()
	open, err := r.Service.RefreshUpcoming(ctx, r.CalendarID, r.now(), r.Days)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", r.CalendarID, err)
	}
	r.Logger.InfoContext(ctx, "slot cache refreshed",
		"calendar_id", r.CalendarID,
		"days", r.Days,
		"open_slots", open,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Start schedules Run on schedule, a standard five-field cron expression or a
// descriptor such as "@every 5m". Overlapping runs are skipped.
func (r *Refresher) Start(schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() {
		if err := r.Run(context.Background()); err != nil {
			r.Logger.Error("slot cache refresh failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	r.cron = c
	c.Start()
	return nil
}

// Stop stops the schedule and waits for a running refresh to finish or ctx to end.
func (r *Refresher) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}
