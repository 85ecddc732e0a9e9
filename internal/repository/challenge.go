package repository

import (
	"context"
	"time"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/pkg/xcontext"
)

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *entity.Challenge) error
	// GetActive returns the user's uncompleted challenge in the guild.
	GetActive(ctx context.Context, userID, guildID string) (*entity.Challenge, error)
	SetCompleted(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type challengeRepository struct{}

func NewChallengeRepository() ChallengeRepository {
	return &challengeRepository{}
}

func (r *challengeRepository) Create(ctx context.Context, challenge *entity.Challenge) error {
	return xcontext.DB(ctx).Create(challenge).Error
}

func (r *challengeRepository) GetActive(
	ctx context.Context, userID, guildID string,
) (*entity.Challenge, error) {
	result := entity.Challenge{}
	err := xcontext.DB(ctx).
		Where("user_id = ? AND guild_id = ? AND completed_at = ?", userID, guildID, time.Time{}).
		Order("id DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *challengeRepository) SetCompleted(ctx context.Context, id int64, at time.Time) error {
	return xcontext.DB(ctx).
		Model(&entity.Challenge{}).
		Where("id = ?", id).
		Update("completed_at", at).Error
}

func (r *challengeRepository) Delete(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Delete(&entity.Challenge{}, "id = ?", id).Error
}
