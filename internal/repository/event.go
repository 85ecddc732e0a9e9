package repository

import (
	"context"
	"time"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type EventLeaderboardRow struct {
	UserID string
	Words  int
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	// GetCurrentByGuild returns the guild's not-yet-ended event.
	GetCurrentByGuild(ctx context.Context, guildID string) (*entity.Event, error)
	// GetLatestByGuild returns the most recent event, ended or not.
	GetLatestByGuild(ctx context.Context, guildID string) (*entity.Event, error)
	UpdateInfo(ctx context.Context, id int64, title, description, image string, colour int) error
	UpdateSchedule(ctx context.Context, id int64, startAt, endAt time.Time) error
	SetStarted(ctx context.Context, id int64, at time.Time) error
	SetEnded(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error

	GetWordcount(ctx context.Context, eventID int64, userID string) (*entity.EventWordcount, error)
	UpsertWordcount(ctx context.Context, wordcount *entity.EventWordcount) error
	Leaderboard(ctx context.Context, eventID int64, offset, limit int) ([]EventLeaderboardRow, error)
	TotalWords(ctx context.Context, eventID int64) (int64, error)
}

type eventRepository struct{}

func NewEventRepository() EventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	result := entity.Event{}
	err := xcontext.DB(ctx).Take(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetCurrentByGuild(ctx context.Context, guildID string) (*entity.Event, error) {
	result := entity.Event{}
	err := xcontext.DB(ctx).
		Where("guild_id = ? AND ended_at = ?", guildID, time.Time{}).
		Order("id DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetLatestByGuild(ctx context.Context, guildID string) (*entity.Event, error) {
	result := entity.Event{}
	err := xcontext.DB(ctx).
		Where("guild_id = ?", guildID).
		Order("id DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) UpdateInfo(
	ctx context.Context, id int64, title, description, image string, colour int,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       title,
			"description": description,
			"image":       image,
			"colour":      colour,
		}).Error
}

func (r *eventRepository) UpdateSchedule(
	ctx context.Context, id int64, startAt, endAt time.Time,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"start_at": startAt,
			"end_at":   endAt,
		}).Error
}

func (r *eventRepository) SetStarted(ctx context.Context, id int64, at time.Time) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id = ?", id).
		Update("started_at", at).Error
}

func (r *eventRepository) SetEnded(ctx context.Context, id int64, at time.Time) error {
	return xcontext.DB(ctx).
		Model(&entity.Event{}).
		Where("id = ?", id).
		Update("ended_at", at).Error
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	if err := xcontext.DB(ctx).
		Where("event_id = ?", id).
		Delete(&entity.EventWordcount{}).Error; err != nil {
		return err
	}

	return xcontext.DB(ctx).Delete(&entity.Event{}, "id = ?", id).Error
}

func (r *eventRepository) GetWordcount(
	ctx context.Context, eventID int64, userID string,
) (*entity.EventWordcount, error) {
	result := entity.EventWordcount{}
	err := xcontext.DB(ctx).
		Take(&result, "event_id = ? AND user_id = ?", eventID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) UpsertWordcount(
	ctx context.Context, wordcount *entity.EventWordcount,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "event_id"},
				{Name: "user_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"words"}),
		}).
		Create(wordcount).Error
}

func (r *eventRepository) Leaderboard(
	ctx context.Context, eventID int64, offset, limit int,
) ([]EventLeaderboardRow, error) {
	result := []EventLeaderboardRow{}
	err := xcontext.DB(ctx).
		Model(&entity.EventWordcount{}).
		Select("user_id, words").
		Where("event_id = ?", eventID).
		Order("words DESC, created_at ASC, user_id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) TotalWords(ctx context.Context, eventID int64) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).
		Model(&entity.EventWordcount{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(SUM(words), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}
