package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/inkwell-gg/backend/internal/domain"
	"github.com/inkwell-gg/backend/pkg/api/discord"
	"github.com/inkwell-gg/backend/pkg/pubsub"
	"github.com/inkwell-gg/backend/pkg/xcontext"
)

// Deliverer consumes announcement packs and posts them to their channel.
type Deliverer struct {
	discordEndpoint discord.IEndpoint
}

func NewDeliverer(discordEndpoint discord.IEndpoint) *Deliverer {
	return &Deliverer{discordEndpoint: discordEndpoint}
}

// Handle is a pubsub.SubscribeHandler. Undeliverable packs are logged and
// skipped so one bad message cannot wedge the partition.
func (d *Deliverer) Handle(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var announcement domain.Announcement
	if err := json.Unmarshal(pack.Msg, &announcement); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot parse announcement: %v", err)
		return
	}

	if announcement.ChannelID == "" || announcement.Content == "" {
		xcontext.Logger(ctx).Warnf("Skipping empty announcement for guild %s", announcement.GuildID)
		return
	}

	err := d.discordEndpoint.SendMessage(ctx, announcement.ChannelID, announcement.Content)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deliver announcement to %s: %v", announcement.ChannelID, err)
	}
}
