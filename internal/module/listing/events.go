package listing

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zharkyn/carmarket/internal/domain"
)

// moderationChannel is the Redis pub/sub channel carrying listing moderation
// decisions, consumed by notification workers.
const moderationChannel = "moderation:listings"

// ModerationEvent is the payload published after a moderation decision.
type ModerationEvent struct {
	ListingID uint                    `json:"listing_id"`
	CreatorID uint                    `json:"creator_id"`
	Status    domain.ModerationStatus `json:"status"`
	Comment   string                  `json:"comment,omitempty"`
	CarID     *uint                   `json:"car_id,omitempty"`
	At        time.Time               `json:"at"`
}

// publishModerationEvent sends the event to the moderation channel.
// Notifications are best-effort: failures are logged and never surface
// to the moderation request.
func publishModerationEvent(ctx context.Context, rdb *redis.Client, event ModerationEvent) {
	if rdb == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.WarnContext(ctx, "moderation event encode failed",
			slog.Uint64("listing_id", uint64(event.ListingID)),
			slog.Any("error", err),
		)
		return
	}
	if err := rdb.Publish(ctx, moderationChannel, payload).Err(); err != nil {
		slog.WarnContext(ctx, "moderation event publish failed",
			slog.Uint64("listing_id", uint64(event.ListingID)),
			slog.Any("error", err),
		)
	}
}
