package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/locale"
	"github.com/inkwell-gg/backend/pkg/pubsub"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Announcement is a bot message for the gateway to deliver. It is published
// keyed by guild so one guild's messages stay ordered.
type Announcement struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
}

func guildLang(ctx context.Context, guildRepo repository.GuildRepository, guildID string) string {
	lang, err := guildRepo.GetSetting(ctx, guildID, entity.GuildSettingLanguage)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get guild language: %v", err)
		}

		return locale.Default
	}

	return lang
}

func checkCommandEnabled(
	ctx context.Context,
	guildRepo repository.GuildRepository,
	guildID, command, lang string,
) error {
	disabled, err := guildRepo.ExistSetting(ctx, guildID, entity.DisabledCommandKey(command))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check command toggle: %v", err)
		return errorx.Unknown
	}

	if disabled {
		return errorx.New(errorx.FeatureDisabled, locale.Text(lang, "err:disabled"))
	}

	return nil
}

// announce publishes a channel message. Delivery failures are logged, never
// returned, because the command that triggered the announcement already
// succeeded.
func announce(
	ctx context.Context,
	publisher pubsub.Publisher,
	guildID, channelID, content string,
) {
	if publisher == nil || content == "" {
		return
	}

	msg, err := json.Marshal(Announcement{
		GuildID:   guildID,
		ChannelID: channelID,
		Content:   content,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal announcement: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.OutgoingTopic
	err = publisher.Publish(ctx, topic, &pubsub.Pack{
		Key: []byte(guildID),
		Msg: msg,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish announcement: %v", err)
	}
}
