// internal/app/system/tasks/refresher.go
// Package tasks runs the background jobs: currently the nightly insight
// refresh, which regenerates expired insights so the morning's first
// request is served from storage instead of paying the generation cost.
package tasks

import (
	"context"
	"fmt"

	"github.com/dalemusser/studymatch/internal/app/insight"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/app/system/timeouts"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InsightRefresher schedules the daily insight sweep.
type InsightRefresher struct {
	cron     *cron.Cron
	users    *userstore.Store
	insights *insight.Service
	spec     string
	log      *zap.Logger
}

// NewInsightRefresher builds the refresher. spec is a cron expression,
// e.g. "0 3 * * *" for 3 AM daily.
func NewInsightRefresher(users *userstore.Store, insights *insight.Service, spec string, log *zap.Logger) *InsightRefresher {
	return &InsightRefresher{
		cron:     cron.New(),
		users:    users,
		insights: insights,
		spec:     spec,
		log:      log,
	}
}

// Start registers the sweep and starts the scheduler.
func (r *InsightRefresher) Start() error {
	_, err := r.cron.AddFunc(r.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Sweep())
		defer cancel()
		r.Sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule insight refresh: %w", err)
	}
	r.cron.Start()
	r.log.Info("insight refresher started", zap.String("spec", r.spec))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (r *InsightRefresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("insight refresher stopped")
}

// Sweep regenerates the insight for every profile-complete user whose
// stored insight is absent or expired. GetToday already skips users with
// a valid insight, so the sweep is safe to run at any time.
func (r *InsightRefresher) Sweep(ctx context.Context) {
	ids, err := r.users.ListCompleteIDs(ctx)
	if err != nil {
		r.log.Error("insight sweep: list users", zap.Error(err))
		return
	}

	refreshed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			r.log.Warn("insight sweep aborted", zap.Error(ctx.Err()))
			return
		}
		if _, err := r.insights.GetToday(ctx, id); err != nil {
			r.log.Error("insight sweep: refresh user",
				zap.String("user_id", id.Hex()),
				zap.Error(err))
			continue
		}
		refreshed++
	}
	r.log.Info("insight sweep complete",
		zap.Int("users", len(ids)),
		zap.Int("refreshed", refreshed))
}
