package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type SprintRepository interface {
	Create(ctx context.Context, sprint *entity.Sprint) error
	GetByID(ctx context.Context, id int64) (*entity.Sprint, error)
	GetActiveByGuild(ctx context.Context, guildID string) (*entity.Sprint, error)
	UpdateEndReference(ctx context.Context, id int64, endAt, endReference time.Time) error
	Delete(ctx context.Context, id int64) error

	UpsertUser(ctx context.Context, user *entity.SprintUser) error
	GetUser(ctx context.Context, sprintID int64, userID string) (*entity.SprintUser, error)
	GetUsers(ctx context.Context, sprintID int64) ([]entity.SprintUser, error)
	DeleteUser(ctx context.Context, sprintID int64, userID string) error
	CountUsers(ctx context.Context, sprintID int64) (int64, error)
	CountUndeclared(ctx context.Context, sprintID int64) (int64, error)
	UpdateCurrentWords(ctx context.Context, sprintID int64, userID string, words int) error
	UpdateEndingWords(ctx context.Context, sprintID int64, userID string, words int, projectID sql.NullInt64) error
	UpdateUserProject(ctx context.Context, sprintID int64, userID string, projectID int64) error
}

type sprintRepository struct{}

func NewSprintRepository() SprintRepository {
	return &sprintRepository{}
}

func (r *sprintRepository) Create(ctx context.Context, sprint *entity.Sprint) error {
	return xcontext.DB(ctx).Create(sprint).Error
}

func (r *sprintRepository) GetByID(ctx context.Context, id int64) (*entity.Sprint, error) {
	result := entity.Sprint{}
	err := xcontext.DB(ctx).Take(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *sprintRepository) GetActiveByGuild(ctx context.Context, guildID string) (*entity.Sprint, error) {
	result := entity.Sprint{}
	err := xcontext.DB(ctx).
		Order("id DESC").
		Take(&result, "guild_id = ?", guildID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *sprintRepository) UpdateEndReference(
	ctx context.Context, id int64, endAt, endReference time.Time,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Sprint{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"end_at":        endAt,
			"end_reference": endReference,
		}).Error
}

func (r *sprintRepository) Delete(ctx context.Context, id int64) error {
	if err := xcontext.DB(ctx).
		Where("sprint_id = ?", id).
		Delete(&entity.SprintUser{}).Error; err != nil {
		return err
	}

	return xcontext.DB(ctx).Delete(&entity.Sprint{}, "id = ?", id).Error
}

func (r *sprintRepository) UpsertUser(ctx context.Context, user *entity.SprintUser) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "sprint_id"},
				{Name: "user_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"type", "starting_words", "current_words",
				"ending_words", "project_id", "joined_at",
			}),
		}).
		Create(user).Error
}

func (r *sprintRepository) GetUser(
	ctx context.Context, sprintID int64, userID string,
) (*entity.SprintUser, error) {
	result := entity.SprintUser{}
	err := xcontext.DB(ctx).
		Take(&result, "sprint_id = ? AND user_id = ?", sprintID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *sprintRepository) GetUsers(ctx context.Context, sprintID int64) ([]entity.SprintUser, error) {
	result := []entity.SprintUser{}
	err := xcontext.DB(ctx).
		Order("joined_at ASC, user_id ASC").
		Find(&result, "sprint_id = ?", sprintID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *sprintRepository) DeleteUser(ctx context.Context, sprintID int64, userID string) error {
	return xcontext.DB(ctx).
		Where("sprint_id = ? AND user_id = ?", sprintID, userID).
		Delete(&entity.SprintUser{}).Error
}

func (r *sprintRepository) CountUsers(ctx context.Context, sprintID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.SprintUser{}).
		Where("sprint_id = ?", sprintID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *sprintRepository) CountUndeclared(ctx context.Context, sprintID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.SprintUser{}).
		Where("sprint_id = ? AND type = ? AND ending_words IS NULL",
			sprintID, entity.SprintUserCounted).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *sprintRepository) UpdateCurrentWords(
	ctx context.Context, sprintID int64, userID string, words int,
) error {
	return xcontext.DB(ctx).
		Model(&entity.SprintUser{}).
		Where("sprint_id = ? AND user_id = ?", sprintID, userID).
		Update("current_words", words).Error
}

func (r *sprintRepository) UpdateEndingWords(
	ctx context.Context, sprintID int64, userID string, words int, projectID sql.NullInt64,
) error {
	return xcontext.DB(ctx).
		Model(&entity.SprintUser{}).
		Where("sprint_id = ? AND user_id = ?", sprintID, userID).
		Updates(map[string]any{
			"current_words": words,
			"ending_words":  words,
			"project_id":    projectID,
		}).Error
}

func (r *sprintRepository) UpdateUserProject(
	ctx context.Context, sprintID int64, userID string, projectID int64,
) error {
	return xcontext.DB(ctx).
		Model(&entity.SprintUser{}).
		Where("sprint_id = ? AND user_id = ?", sprintID, userID).
		Update("project_id", projectID).Error
}
