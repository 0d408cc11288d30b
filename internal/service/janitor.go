package service

import (
	"context"
	"log/slog"
	"time"
)

// RunJanitor expires form sessions idle for longer than ttl, checking every
// interval, and drops their results views. It blocks until ctx is done.
// A non-positive ttl or interval disables expiry.
func RunJanitor(ctx context.Context, forms *FormService, results *ResultsService, ttl, interval time.Duration, log *slog.Logger) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	if log == nil {
		log = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			expired := forms.Expire(now.Add(-ttl))
			if len(expired) == 0 {
				continue
			}
			results.Forget(expired...)
			log.InfoContext(ctx, "expired idle sessions", "count", len(expired))
		}
	}
}
