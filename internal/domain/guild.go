package domain

import (
	"context"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/model"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/locale"
	"github.com/inkwell-gg/backend/pkg/xcontext"
)

type GuildDomain interface {
	ToggleCommand(ctx context.Context, req *model.ToggleCommandRequest) (*model.ToggleCommandResponse, error)
	SetLanguage(ctx context.Context, req *model.SetGuildLanguageRequest) (*model.SetGuildLanguageResponse, error)
}

type guildDomain struct {
	guildRepo repository.GuildRepository
}

func NewGuildDomain(guildRepo repository.GuildRepository) GuildDomain {
	return &guildDomain{guildRepo: guildRepo}
}

func (d *guildDomain) ToggleCommand(
	ctx context.Context, req *model.ToggleCommandRequest,
) (*model.ToggleCommandResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	key := entity.DisabledCommandKey(req.Command)

	if req.Enabled {
		if err := d.guildRepo.DeleteSetting(ctx, req.GuildID, key); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot enable command: %v", err)
			return nil, errorx.Unknown
		}

		return &model.ToggleCommandResponse{
			Reply: locale.Text(lang, "guild:enabled", req.Command),
		}, nil
	}

	err := d.guildRepo.UpsertSetting(ctx, &entity.GuildSetting{
		GuildID: req.GuildID,
		Key:     key,
		Value:   "1",
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot disable command: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ToggleCommandResponse{
		Reply: locale.Text(lang, "guild:disabled", req.Command),
	}, nil
}

func (d *guildDomain) SetLanguage(
	ctx context.Context, req *model.SetGuildLanguageRequest,
) (*model.SetGuildLanguageResponse, error) {
	err := d.guildRepo.UpsertSetting(ctx, &entity.GuildSetting{
		GuildID: req.GuildID,
		Key:     entity.GuildSettingLanguage,
		Value:   req.Language,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set language: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetGuildLanguageResponse{
		Reply: locale.Text(req.Language, "guild:language", req.Language),
	}, nil
}
