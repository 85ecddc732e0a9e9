package statistic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"
)

// SprintResult is one participant's summary of a finished sprint.
type SprintResult struct {
	UserID    string
	Name      string
	Written   int
	WPM       float64
	NewRecord bool
}

// Rank orders sprint results by words written, most first. The sort is
// stable, so participants on equal counts keep their join order.
func Rank(results []SprintResult) []SprintResult {
	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, func(a, b SprintResult) bool {
		return a.Written > b.Written
	})

	return ranked
}

// FormatLines joins lines into a single message, dropping whole trailing
// lines once the character budget is reached.
func FormatLines(lines []string, limit int) string {
	var b strings.Builder
	for _, line := range lines {
		if b.Len()+len(line)+1 > limit {
			break
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}

	return b.String()
}

// EventLeaderboard keeps event word totals in a redis sorted set mirroring
// the database. The database stays the source of truth for ordering because
// its tie rule (earlier contributor first) cannot be expressed as a zset
// score.
type EventLeaderboard struct {
	eventRepo   repository.EventRepository
	redisClient xredis.Client
}

func NewEventLeaderboard(
	eventRepo repository.EventRepository,
	redisClient xredis.Client,
) *EventLeaderboard {
	return &EventLeaderboard{
		eventRepo:   eventRepo,
		redisClient: redisClient,
	}
}

func (l *EventLeaderboard) key(eventID int64) string {
	return fmt.Sprintf("event_leaderboard:%d", eventID)
}

// ChangeWords mirrors a user's new total into the sorted set.
func (l *EventLeaderboard) ChangeWords(ctx context.Context, eventID int64, userID string, words int) error {
	exist, err := l.redisClient.Exist(ctx, l.key(eventID))
	if err != nil {
		return err
	}

	if !exist {
		return l.reload(ctx, eventID)
	}

	return l.redisClient.ZAdd(ctx, l.key(eventID), redis.Z{
		Member: userID,
		Score:  float64(words),
	})
}

// MyRank returns the user's zero-based position, loading the set from the
// database on a cache miss.
func (l *EventLeaderboard) MyRank(ctx context.Context, eventID int64, userID string) (int64, error) {
	rank, err := l.redisClient.ZRevRank(ctx, l.key(eventID), userID)
	if err == nil {
		return int64(rank), nil
	}

	if !errors.Is(err, redis.Nil) {
		return 0, err
	}

	if err := l.reload(ctx, eventID); err != nil {
		return 0, err
	}

	rank, err = l.redisClient.ZRevRank(ctx, l.key(eventID), userID)
	if err != nil {
		return 0, err
	}

	return int64(rank), nil
}

// Top returns the leaderboard page in final order.
func (l *EventLeaderboard) Top(
	ctx context.Context, eventID int64, offset, limit int,
) ([]repository.EventLeaderboardRow, error) {
	return l.eventRepo.Leaderboard(ctx, eventID, offset, limit)
}

// Clear drops the mirror, usually after the event is deleted.
func (l *EventLeaderboard) Clear(ctx context.Context, eventID int64) error {
	return l.redisClient.Del(ctx, l.key(eventID))
}

func (l *EventLeaderboard) reload(ctx context.Context, eventID int64) error {
	rows, err := l.eventRepo.Leaderboard(ctx, eventID, 0, -1)
	if err != nil {
		return err
	}

	members := make([]redis.Z, 0, len(rows))
	for _, row := range rows {
		members = append(members, redis.Z{
			Member: row.UserID,
			Score:  float64(row.Words),
		})
	}

	if len(members) == 0 {
		return nil
	}

	return l.redisClient.ZAdd(ctx, l.key(eventID), members...)
}
