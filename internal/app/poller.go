package app

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/five82/modsnap/internal/compare"
	"github.com/five82/modsnap/internal/live"
	"github.com/five82/modsnap/internal/snapshot"
	"github.com/five82/modsnap/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 60 * time.Second
	fetchTimeout        = 10 * time.Second
)

// Check fetches the live snapshot and compares it against reference.
func Check(ctx context.Context, reference snapshot.Snapshot, src live.Source) (compare.Diff, error) {
	current, err := src.FetchSnapshot(ctx)
	if err != nil {
		return compare.Diff{}, err
	}
	return compare.Snapshots(reference, current), nil
}

// StartPoller launches a background goroutine that re-runs Check every
// interval and stores the result. The first check runs after one interval.
// After failures the interval doubles up to maxBackoff. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, reference snapshot.Snapshot, src live.Source, interval time.Duration, logger hclog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	store.SetReferenceUsable(reference.Usable())

	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			failures := refresh(ctx, store, reference, src, logger)
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, reference snapshot.Snapshot, src live.Source, logger hclog.Logger) int {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	diff, err := Check(fetchCtx, reference, src)
	if err != nil {
		store.Update(nil, err)
		logger.Warn("live snapshot poll failed", "error", err)
		return store.Result().ConsecutiveFailures
	}
	store.Update(&diff, nil)
	logger.Debug("compared live snapshot", "summary", diff.Summary())
	return 0
}

// calculateBackoff returns the wait before the next poll after the given
// number of consecutive failures.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
