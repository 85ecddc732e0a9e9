package statistic

import (
	"strings"
	"testing"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	results := []SprintResult{
		{UserID: "a", Written: 200},
		{UserID: "b", Written: 500},
		{UserID: "c", Written: 200},
	}

	ranked := Rank(results)
	require.Equal(t, "b", ranked[0].UserID)

	// Ties keep their original order.
	require.Equal(t, "a", ranked[1].UserID)
	require.Equal(t, "c", ranked[2].UserID)

	// The input is left alone.
	require.Equal(t, "a", results[0].UserID)
}

func TestFormatLines(t *testing.T) {
	lines := []string{"header", "first entry", "second entry"}

	full := FormatLines(lines, 1000)
	require.Equal(t, "header\nfirst entry\nsecond entry", full)

	// Whole lines are dropped from the end, never truncated mid-line.
	short := FormatLines(lines, 20)
	require.Equal(t, "header\nfirst entry", short)
	require.False(t, strings.Contains(short, "second"))

	require.Equal(t, "", FormatLines(lines, 3))
}

func TestEventLeaderboard(t *testing.T) {
	ctx := testutil.MockContext(t)
	eventRepo := repository.NewEventRepository()

	event := &entity.Event{
		SnowFlakeBase: entity.SnowFlakeBase{ID: entity.NewID()},
		GuildID:       "guild",
		Title:         "Camp",
	}
	require.NoError(t, eventRepo.Create(ctx, event))

	for _, wc := range []entity.EventWordcount{
		{EventID: event.ID, UserID: "a", Words: 300},
		{EventID: event.ID, UserID: "b", Words: 900},
		{EventID: event.ID, UserID: "c", Words: 600},
	} {
		wc := wc
		require.NoError(t, eventRepo.UpsertWordcount(ctx, &wc))
	}

	board := NewEventLeaderboard(eventRepo, testutil.NewMockRedisClient())

	// First read misses the cache and loads it from the database.
	rank, err := board.MyRank(ctx, event.ID, "c")
	require.NoError(t, err)
	require.EqualValues(t, 1, rank)

	rank, err = board.MyRank(ctx, event.ID, "a")
	require.NoError(t, err)
	require.EqualValues(t, 2, rank)

	// A score change reorders the mirror.
	require.NoError(t, eventRepo.UpsertWordcount(ctx, &entity.EventWordcount{
		EventID: event.ID, UserID: "a", Words: 1200,
	}))
	require.NoError(t, board.ChangeWords(ctx, event.ID, "a", 1200))

	rank, err = board.MyRank(ctx, event.ID, "a")
	require.NoError(t, err)
	require.EqualValues(t, 0, rank)

	rows, err := board.Top(ctx, event.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "a", rows[0].UserID)
	require.Equal(t, 1200, rows[0].Words)

	require.NoError(t, board.Clear(ctx, event.ID))

	// Cleared cache reloads transparently.
	rank, err = board.MyRank(ctx, event.ID, "b")
	require.NoError(t, err)
	require.EqualValues(t, 1, rank)
}
