package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartSweeper removes idle sessions with interval
func StartSweeper(
	ctx context.Context,
	m *Manager,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.expire(time.Now()); removed > 0 {
					log.Info("expired idle sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}
