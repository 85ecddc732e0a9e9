package repository

import (
	"context"
	"errors"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetSetting(ctx context.Context, userID, guildID, key string) (string, error)
	UpsertSetting(ctx context.Context, setting *entity.UserSetting) error
	DeleteSetting(ctx context.Context, userID, guildID, key string) error
	GetUsersWithSetting(ctx context.Context, guildID, key string) ([]entity.UserSetting, error)

	IncreaseStat(ctx context.Context, userID, guildID, name string, delta int64) error
	GetStat(ctx context.Context, userID, guildID, name string) (int64, error)
	GetStats(ctx context.Context, userID, guildID string) ([]entity.UserStat, error)

	GetRecord(ctx context.Context, userID, guildID, metric string) (float64, error)
	// UpdateRecord stores value as the new personal best if it beats the
	// current one. It reports whether a new record was set.
	UpdateRecord(ctx context.Context, userID, guildID, metric string, value float64) (bool, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) GetSetting(ctx context.Context, userID, guildID, key string) (string, error) {
	result := entity.UserSetting{}
	err := xcontext.DB(ctx).
		Take(&result, "user_id = ? AND guild_id = ? AND `key` = ?", userID, guildID, key).Error
	if err != nil {
		return "", err
	}

	return result.Value, nil
}

func (r *userRepository) UpsertSetting(ctx context.Context, setting *entity.UserSetting) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "guild_id"},
				{Name: "key"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(setting).Error
}

func (r *userRepository) DeleteSetting(ctx context.Context, userID, guildID, key string) error {
	return xcontext.DB(ctx).
		Where("user_id = ? AND guild_id = ? AND `key` = ?", userID, guildID, key).
		Delete(&entity.UserSetting{}).Error
}

func (r *userRepository) GetUsersWithSetting(
	ctx context.Context, guildID, key string,
) ([]entity.UserSetting, error) {
	result := []entity.UserSetting{}
	err := xcontext.DB(ctx).
		Find(&result, "guild_id = ? AND `key` = ?", guildID, key).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) IncreaseStat(
	ctx context.Context, userID, guildID, name string, delta int64,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "guild_id"},
				{Name: "name"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"value": gorm.Expr("value + ?", delta),
			}),
		}).
		Create(&entity.UserStat{
			UserID:  userID,
			GuildID: guildID,
			Name:    name,
			Value:   delta,
		}).Error
}

func (r *userRepository) GetStat(ctx context.Context, userID, guildID, name string) (int64, error) {
	result := entity.UserStat{}
	err := xcontext.DB(ctx).
		Take(&result, "user_id = ? AND guild_id = ? AND name = ?", userID, guildID, name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return result.Value, nil
}

func (r *userRepository) GetStats(ctx context.Context, userID, guildID string) ([]entity.UserStat, error) {
	result := []entity.UserStat{}
	err := xcontext.DB(ctx).
		Find(&result, "user_id = ? AND guild_id = ?", userID, guildID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetRecord(ctx context.Context, userID, guildID, metric string) (float64, error) {
	result := entity.UserRecord{}
	err := xcontext.DB(ctx).
		Take(&result, "user_id = ? AND guild_id = ? AND metric = ?", userID, guildID, metric).Error
	if err != nil {
		return 0, err
	}

	return result.Value, nil
}

func (r *userRepository) UpdateRecord(
	ctx context.Context, userID, guildID, metric string, value float64,
) (bool, error) {
	current, err := r.GetRecord(ctx, userID, guildID, metric)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err == nil && value <= current {
		return false, nil
	}

	err = xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "guild_id"},
				{Name: "metric"},
			},
			DoUpdates: clause.Assignments(map[string]any{"value": value}),
		}).
		Create(&entity.UserRecord{
			UserID:  userID,
			GuildID: guildID,
			Metric:  metric,
			Value:   value,
		}).Error
	if err != nil {
		return false, err
	}

	return true, nil
}
