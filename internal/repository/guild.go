package repository

import (
	"context"
	"errors"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuildRepository interface {
	GetSetting(ctx context.Context, guildID, key string) (string, error)
	UpsertSetting(ctx context.Context, setting *entity.GuildSetting) error
	DeleteSetting(ctx context.Context, guildID, key string) error
	ExistSetting(ctx context.Context, guildID, key string) (bool, error)
}

type guildRepository struct{}

func NewGuildRepository() GuildRepository {
	return &guildRepository{}
}

func (r *guildRepository) GetSetting(ctx context.Context, guildID, key string) (string, error) {
	result := entity.GuildSetting{}
	err := xcontext.DB(ctx).
		Take(&result, "guild_id = ? AND `key` = ?", guildID, key).Error
	if err != nil {
		return "", err
	}

	return result.Value, nil
}

func (r *guildRepository) UpsertSetting(ctx context.Context, setting *entity.GuildSetting) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "guild_id"},
				{Name: "key"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(setting).Error
}

func (r *guildRepository) DeleteSetting(ctx context.Context, guildID, key string) error {
	return xcontext.DB(ctx).
		Where("guild_id = ? AND `key` = ?", guildID, key).
		Delete(&entity.GuildSetting{}).Error
}

func (r *guildRepository) ExistSetting(ctx context.Context, guildID, key string) (bool, error) {
	_, err := r.GetSetting(ctx, guildID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
