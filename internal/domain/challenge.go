package domain

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/model"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/locale"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const challengeCommand = "challenge"

const (
	minChallengeLength = 5
	maxChallengeLength = 60
)

// difficulty bounds as inclusive wpm ranges.
var challengeDifficulties = map[string][2]int{
	"easy":     {3, 5},
	"normal":   {10, 15},
	"hard":     {20, 30},
	"hardcore": {35, 45},
	"insane":   {50, 60},
	"":         {0, 60},
}

type ChallengeDomain interface {
	Create(ctx context.Context, req *model.CreateChallengeRequest) (*model.CreateChallengeResponse, error)
	Current(ctx context.Context, req *model.CurrentChallengeRequest) (*model.CurrentChallengeResponse, error)
	Complete(ctx context.Context, req *model.CompleteChallengeRequest) (*model.CompleteChallengeResponse, error)
	Cancel(ctx context.Context, req *model.CancelChallengeRequest) (*model.CancelChallengeResponse, error)
}

type challengeDomain struct {
	challengeRepo repository.ChallengeRepository
	userRepo      repository.UserRepository
	guildRepo     repository.GuildRepository
}

func NewChallengeDomain(
	challengeRepo repository.ChallengeRepository,
	userRepo repository.UserRepository,
	guildRepo repository.GuildRepository,
) ChallengeDomain {
	return &challengeDomain{
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
		guildRepo:     guildRepo,
	}
}

func (d *challengeDomain) Create(
	ctx context.Context, req *model.CreateChallengeRequest,
) (*model.CreateChallengeResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	if err := checkCommandEnabled(ctx, d.guildRepo, req.GuildID, challengeCommand, lang); err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)

	// An existing challenge is restated rather than replaced.
	if active, err := d.challengeRepo.GetActive(ctx, userID, req.GuildID); err == nil {
		return &model.CreateChallengeResponse{
			Goal:   active.Goal,
			Length: active.Length,
			WPM:    active.WPM,
			Reply: locale.Text(lang, "challenge:accepted") + " " +
				active.Description + " " + locale.Text(lang, "challenge:tocomplete"),
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return nil, errorx.Unknown
	}

	bounds, ok := challengeDifficulties[req.Difficulty]
	if !ok {
		bounds = challengeDifficulties[""]
	}

	wpm := bounds[0] + rand.Intn(bounds[1]-bounds[0]+1)
	length := minChallengeLength + rand.Intn(maxChallengeLength-minChallengeLength+1)
	if req.Length >= minChallengeLength && req.Length <= maxChallengeLength {
		length = req.Length
	}

	goal := wpm * length
	challenge := &entity.Challenge{
		SnowFlakeBase: entity.SnowFlakeBase{ID: entity.NewID()},
		UserID:        userID,
		GuildID:       req.GuildID,
		Description:   locale.Text(lang, "challenge:challenge", goal, length, wpm),
		WPM:           wpm,
		Length:        length,
		Goal:          goal,
		XP:            challengeXP(wpm),
	}

	if err := d.challengeRepo.Create(ctx, challenge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateChallengeResponse{
		Goal:   goal,
		Length: length,
		WPM:    wpm,
		Reply: locale.Text(lang, "challenge:accepted") + " " +
			challenge.Description + " " + locale.Text(lang, "challenge:tocomplete"),
	}, nil
}

func (d *challengeDomain) Current(
	ctx context.Context, req *model.CurrentChallengeRequest,
) (*model.CurrentChallengeResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)

	active, err := d.challengeRepo.GetActive(ctx, xcontext.RequestUserID(ctx), req.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.CurrentChallengeResponse{
				Reply: locale.Text(lang, "challenge:noactive"),
			}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CurrentChallengeResponse{
		Reply: locale.Text(lang, "challenge:accepted") + " " +
			active.Description + " " + locale.Text(lang, "challenge:tocomplete"),
	}, nil
}

func (d *challengeDomain) Complete(
	ctx context.Context, req *model.CompleteChallengeRequest,
) (*model.CompleteChallengeResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	if err := checkCommandEnabled(ctx, d.guildRepo, req.GuildID, challengeCommand, lang); err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	active, err := d.challengeRepo.GetActive(ctx, userID, req.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, locale.Text(lang, "challenge:noactive"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.challengeRepo.SetCompleted(ctx, active.ID, time.Now()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete challenge: %v", err)
		return nil, errorx.Unknown
	}

	err = d.userRepo.IncreaseStat(ctx, userID, req.GuildID, entity.StatPointsWon, int64(active.XP))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award xp: %v", err)
		return nil, errorx.Unknown
	}

	err = d.userRepo.IncreaseStat(ctx, userID, req.GuildID, entity.StatChallengesCompleted, 1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update challenge stat: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CompleteChallengeResponse{
		XP:    active.XP,
		Reply: locale.Text(lang, "challenge:completed", active.Description, active.XP),
	}, nil
}

func (d *challengeDomain) Cancel(
	ctx context.Context, req *model.CancelChallengeRequest,
) (*model.CancelChallengeResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	if err := checkCommandEnabled(ctx, d.guildRepo, req.GuildID, challengeCommand, lang); err != nil {
		return nil, err
	}

	active, err := d.challengeRepo.GetActive(ctx, xcontext.RequestUserID(ctx), req.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, locale.Text(lang, "challenge:noactive"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.challengeRepo.Delete(ctx, active.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CancelChallengeResponse{
		Reply: locale.Text(lang, "challenge:givenup"),
	}, nil
}

// challengeXP grades the award by the wpm rate, not the total goal.
func challengeXP(wpm int) int {
	switch {
	case wpm > 45:
		return 150
	case wpm > 30:
		return 100
	case wpm > 15:
		return 75
	case wpm > 5:
		return 40
	default:
		return 20
	}
}
