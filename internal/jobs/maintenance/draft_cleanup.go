package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"geonest/internal/config"
	"geonest/internal/database"
	"geonest/internal/support"
)

const draftCleanupLockKey = "geonest:leader:draft_cleanup"

// StartDraftCleanupRoutine removes abandoned import drafts on a schedule.
// The Redis leadership lock keeps multi-instance deployments from running
// the sweep more than once per interval.
func StartDraftCleanupRoutine(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	err := support.RunWithLeader(ctx, draftCleanupLockKey, support.DefaultLeadershipTTL, func(leaderCtx context.Context) {
		runDraftCleanupLoop(leaderCtx)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Draft cleanup routine stopped", "error", err)
	}
}

func runDraftCleanupLoop(ctx context.Context) {
	interval := time.Duration(config.GetConfig().Maintenance.DraftCleanupMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runDraftCleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runDraftCleanup(ctx)
		}
	}
}

func runDraftCleanup(ctx context.Context) {
	start := time.Now()

	maxAge := time.Duration(config.GetConfig().Maintenance.StaleDraftHours) * time.Hour
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	cutoff := time.Now().Add(-maxAge)

	removed, err := database.DeleteStaleDrafts(ctx, cutoff)
	if err != nil {
		log.Error("Failed to cleanup stale drafts", "error", err)
		return
	}
	if removed == 0 {
		return
	}

	log.Info(
		"Stale draft cleanup completed",
		"drafts_removed", removed,
		"duration", time.Since(start),
	)
}
