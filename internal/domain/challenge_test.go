package domain

import (
	"testing"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/model"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newChallengeDomain() (ChallengeDomain, repository.UserRepository) {
	userRepo := repository.NewUserRepository()
	return NewChallengeDomain(
		repository.NewChallengeRepository(),
		userRepo,
		repository.NewGuildRepository(),
	), userRepo
}

func Test_challengeDomain_Create_Bounds(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	domain, _ := newChallengeDomain()

	resp, err := domain.Create(ctx, &model.CreateChallengeRequest{
		GuildID:    "guild",
		Difficulty: "hard",
	})
	require.NoError(t, err)

	require.GreaterOrEqual(t, resp.WPM, 20)
	require.LessOrEqual(t, resp.WPM, 30)
	require.GreaterOrEqual(t, resp.Length, 5)
	require.LessOrEqual(t, resp.Length, 60)
	require.Equal(t, resp.WPM*resp.Length, resp.Goal)
}

func Test_challengeDomain_Create_ExplicitLength(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	domain, _ := newChallengeDomain()

	resp, err := domain.Create(ctx, &model.CreateChallengeRequest{
		GuildID:    "guild",
		Difficulty: "easy",
		Length:     15,
	})
	require.NoError(t, err)
	require.Equal(t, 15, resp.Length)
}

func Test_challengeDomain_Create_RestatesActive(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	domain, _ := newChallengeDomain()

	first, err := domain.Create(ctx, &model.CreateChallengeRequest{GuildID: "guild"})
	require.NoError(t, err)

	// A second accept returns the same challenge instead of rolling a new one.
	second, err := domain.Create(ctx, &model.CreateChallengeRequest{GuildID: "guild"})
	require.NoError(t, err)
	require.Equal(t, first.Goal, second.Goal)
	require.Equal(t, first.Length, second.Length)
	require.Equal(t, first.WPM, second.WPM)
}

func Test_challengeDomain_Complete(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	domain, userRepo := newChallengeDomain()

	created, err := domain.Create(ctx, &model.CreateChallengeRequest{
		GuildID:    "guild",
		Difficulty: "insane",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	resp, err := domain.Complete(ctx, &model.CompleteChallengeRequest{GuildID: "guild"})
	require.NoError(t, err)
	require.Equal(t, 150, resp.XP)

	points, err := userRepo.GetStat(ctx, "writer", "guild", entity.StatPointsWon)
	require.NoError(t, err)
	require.EqualValues(t, 150, points)

	completed, err := userRepo.GetStat(ctx, "writer", "guild", entity.StatChallengesCompleted)
	require.NoError(t, err)
	require.EqualValues(t, 1, completed)

	// Nothing active afterwards.
	_, err = domain.Complete(ctx, &model.CompleteChallengeRequest{GuildID: "guild"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_challengeDomain_Cancel(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	domain, userRepo := newChallengeDomain()

	_, err := domain.Create(ctx, &model.CreateChallengeRequest{GuildID: "guild"})
	require.NoError(t, err)

	_, err = domain.Cancel(ctx, &model.CancelChallengeRequest{GuildID: "guild"})
	require.NoError(t, err)

	// Giving up earns nothing.
	points, err := userRepo.GetStat(ctx, "writer", "guild", entity.StatPointsWon)
	require.NoError(t, err)
	require.EqualValues(t, 0, points)

	current, err := domain.Current(ctx, &model.CurrentChallengeRequest{GuildID: "guild"})
	require.NoError(t, err)
	require.NotEmpty(t, current.Reply)
}

func Test_challengeXP(t *testing.T) {
	require.Equal(t, 150, challengeXP(60))
	require.Equal(t, 100, challengeXP(45))
	require.Equal(t, 75, challengeXP(30))
	require.Equal(t, 40, challengeXP(15))
	require.Equal(t, 20, challengeXP(3))
}
