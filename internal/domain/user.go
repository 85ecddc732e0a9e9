package domain

import (
	"context"
	"strconv"
	"time"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/model"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/locale"
	"github.com/inkwell-gg/backend/pkg/xcontext"
)

type UserDomain interface {
	UpdateSetting(ctx context.Context, req *model.UpdateUserSettingRequest) (*model.UpdateUserSettingResponse, error)
	GetStats(ctx context.Context, req *model.GetUserStatsRequest) (*model.GetUserStatsResponse, error)
}

type userDomain struct {
	userRepo  repository.UserRepository
	guildRepo repository.GuildRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	guildRepo repository.GuildRepository,
) UserDomain {
	return &userDomain{
		userRepo:  userRepo,
		guildRepo: guildRepo,
	}
}

func (d *userDomain) UpdateSetting(
	ctx context.Context, req *model.UpdateUserSettingRequest,
) (*model.UpdateUserSettingResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)

	switch req.Key {
	case entity.SettingTimezone:
		if _, err := time.LoadLocation(req.Value); err != nil {
			return nil, errorx.New(errorx.BadRequest,
				locale.Text(lang, "setting:err:invalid", req.Key))
		}

	case entity.SettingMaxWPM:
		if wpm, err := strconv.Atoi(req.Value); err != nil || wpm <= 0 {
			return nil, errorx.New(errorx.BadRequest,
				locale.Text(lang, "setting:err:invalid", req.Key))
		}

	default:
		return nil, errorx.New(errorx.BadRequest,
			locale.Text(lang, "setting:err:invalid", req.Key))
	}

	// Timezone and maxwpm apply account-wide, whatever guild set them.
	err := d.userRepo.UpsertSetting(ctx, &entity.UserSetting{
		UserID: xcontext.RequestUserID(ctx),
		Key:    req.Key,
		Value:  req.Value,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save setting: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserSettingResponse{
		Reply: locale.Text(lang, "setting:updated", req.Key),
	}, nil
}

func (d *userDomain) GetStats(
	ctx context.Context, req *model.GetUserStatsRequest,
) (*model.GetUserStatsResponse, error) {
	stats, err := d.userRepo.GetStats(ctx, xcontext.RequestUserID(ctx), req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get stats: %v", err)
		return nil, errorx.Unknown
	}

	result := make(map[string]int64, len(stats))
	for _, stat := range stats {
		result[stat.Name] = stat.Value
	}

	return &model.GetUserStatsResponse{Stats: result}, nil
}
