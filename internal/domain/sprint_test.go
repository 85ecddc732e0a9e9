package domain

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/inkwell-gg/backend/internal/domain/task"
	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/model"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/testutil"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type sprintTestEnv struct {
	domain     SprintDomain
	sprintRepo repository.SprintRepository
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	scheduler  *task.Scheduler
	publisher  *testutil.MockPublisher
	messenger  *testutil.MockMessenger
}

func newSprintTestEnv(members map[string]string) *sprintTestEnv {
	env := &sprintTestEnv{
		sprintRepo: repository.NewSprintRepository(),
		taskRepo:   repository.NewTaskRepository(),
		userRepo:   repository.NewUserRepository(),
		publisher:  testutil.NewMockPublisher(),
		messenger:  testutil.NewMockMessenger(members),
	}

	env.scheduler = task.NewScheduler(env.taskRepo)
	env.domain = NewSprintDomain(
		env.sprintRepo,
		env.userRepo,
		repository.NewGuildRepository(),
		repository.NewProjectRepository(),
		env.scheduler,
		env.messenger,
		env.publisher,
	)

	return env
}

// rewind moves a sprint back in time so tests can reach later states without
// sleeping.
func rewindSprint(ctx context.Context, id int64, start, end time.Time) {
	xcontext.DB(ctx).
		Model(&entity.Sprint{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"start_at":      start,
			"end_at":        end,
			"end_reference": end,
		})
}

func asUser(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

func Test_sprintDomain_Create_OnlyOnePerGuild(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "creator")
	env := newSprintTestEnv(map[string]string{"creator": "Creator"})

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{
		GuildID:   "guild",
		ChannelID: "channel",
		Length:    20,
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	_, err = env.domain.Create(ctx, &model.CreateSprintRequest{
		GuildID:   "guild",
		ChannelID: "channel",
	})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)

	// Another guild is unaffected.
	_, err = env.domain.Create(ctx, &model.CreateSprintRequest{
		GuildID:   "other",
		ChannelID: "channel",
	})
	require.NoError(t, err)
}

func Test_sprintDomain_Create_ExclusiveDelayArguments(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "creator")
	env := newSprintTestEnv(nil)

	_, err := env.domain.Create(ctx, &model.CreateSprintRequest{
		GuildID: "guild",
		In:      5,
		At:      30,
	})
	require.Error(t, err)
	require.Equal(t, errorx.ExclusiveArguments, err.(errorx.Error).Code)
}

func Test_sprintDomain_Create_LengthOutOfRangeUsesDefault(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "creator")
	env := newSprintTestEnv(nil)

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{
		GuildID: "guild",
		Length:  500,
	})
	require.NoError(t, err)

	length := xcontext.Configs(ctx).Sprint.DefaultLength
	require.Equal(t, time.Duration(length)*time.Minute, resp.EndAt.Sub(resp.StartAt))
}

func Test_sprintDomain_Join_RejoinResetsCounts(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	env := newSprintTestEnv(map[string]string{"writer": "Writer"})

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild", Initial: 100})
	require.NoError(t, err)

	user, err := env.sprintRepo.GetUser(ctx, resp.ID, "writer")
	require.NoError(t, err)
	require.Equal(t, 100, user.StartingWords)
	require.Equal(t, 100, user.CurrentWords)

	// Rejoining replaces the stale starting count. Words written can
	// never go negative afterwards.
	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild", Initial: 40})
	require.NoError(t, err)

	user, err = env.sprintRepo.GetUser(ctx, resp.ID, "writer")
	require.NoError(t, err)
	require.Equal(t, 40, user.StartingWords)
	require.Equal(t, 40, user.CurrentWords)
	require.GreaterOrEqual(t, user.CurrentWords-user.StartingWords, 0)
}

func Test_sprintDomain_Declare_BelowStartingCount(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	env := newSprintTestEnv(map[string]string{"writer": "Writer"})

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild", Initial: 500})
	require.NoError(t, err)

	_, err = env.domain.Declare(ctx, &model.DeclareWordcountRequest{GuildID: "guild", Words: 400})
	require.Error(t, err)
	require.Equal(t, errorx.BelowStartingCount, err.(errorx.Error).Code)

	// Nothing was written through.
	user, err := env.sprintRepo.GetUser(ctx, resp.ID, "writer")
	require.NoError(t, err)
	require.Equal(t, 500, user.CurrentWords)
	require.False(t, user.EndingWords.Valid)
}

func Test_sprintDomain_Declare_AnomalousWPMIdempotentRejection(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	env := newSprintTestEnv(map[string]string{"writer": "Writer"})

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{GuildID: "guild", Length: 20})
	require.NoError(t, err)

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild", Initial: 500})
	require.NoError(t, err)

	// Five minutes in, a declaration implying 500 wpm.
	now := time.Now()
	rewindSprint(ctx, resp.ID, now.Add(-5*time.Minute), now.Add(15*time.Minute))

	declare := &model.DeclareWordcountRequest{GuildID: "guild", Words: 3000}
	_, err = env.domain.Declare(ctx, declare)
	require.Error(t, err)
	require.Equal(t, errorx.AnomalousWPM, err.(errorx.Error).Code)

	// Resubmitting the identical value changes nothing.
	_, err = env.domain.Declare(ctx, declare)
	require.Error(t, err)
	require.Equal(t, errorx.AnomalousWPM, err.(errorx.Error).Code)

	user, err := env.sprintRepo.GetUser(ctx, resp.ID, "writer")
	require.NoError(t, err)
	require.Equal(t, 500, user.CurrentWords)

	// A believable value goes through.
	_, err = env.domain.Declare(ctx, &model.DeclareWordcountRequest{GuildID: "guild", Words: 1000})
	require.NoError(t, err)
}

func Test_sprintDomain_ImmediateStartScenario(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "alice")
	env := newSprintTestEnv(map[string]string{"alice": "Alice"})

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{
		GuildID:   "guild",
		ChannelID: "channel",
		Length:    20,
	})
	require.NoError(t, err)

	// No delay given, the sprint is immediately running.
	require.False(t, time.Now().Before(resp.StartAt))

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild", Initial: 500})
	require.NoError(t, err)

	// Jump past the end, then declare the final total.
	now := time.Now()
	rewindSprint(ctx, resp.ID, now.Add(-21*time.Minute), now.Add(-time.Minute))

	declared, err := env.domain.Declare(ctx, &model.DeclareWordcountRequest{
		GuildID: "guild",
		Words:   900,
	})
	require.NoError(t, err)
	require.Equal(t, 400, declared.Written)

	// All counted participants declared, so the sprint completed and
	// posted its leaderboard with Alice at rank one.
	_, err = env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.Error(t, err)

	topic := xcontext.Configs(ctx).Kafka.OutgoingTopic
	require.NotEmpty(t, env.publisher.Packs[topic])
	board := string(env.publisher.Packs[topic][len(env.publisher.Packs[topic])-1].Msg)
	require.Contains(t, board, "1. Alice - 400 words")

	// The win and the completion were counted.
	won, err := env.userRepo.GetStat(ctx, "alice", "guild", entity.StatSprintsWon)
	require.NoError(t, err)
	require.EqualValues(t, 1, won)
}

func Test_sprintDomain_CompleteRefusedUntilAllDeclared(t *testing.T) {
	ctx := testutil.MockContext(t)
	env := newSprintTestEnv(map[string]string{"alice": "Alice", "bob": "Bob"})

	alice := asUser(ctx, "alice")
	bob := asUser(ctx, "bob")

	resp, err := env.domain.Create(alice, &model.CreateSprintRequest{GuildID: "guild", Length: 20})
	require.NoError(t, err)

	_, err = env.domain.Join(alice, &model.JoinSprintRequest{GuildID: "guild", Initial: 0})
	require.NoError(t, err)
	_, err = env.domain.Join(bob, &model.JoinSprintRequest{GuildID: "guild", Initial: 0})
	require.NoError(t, err)

	now := time.Now()
	rewindSprint(ctx, resp.ID, now.Add(-21*time.Minute), now.Add(-time.Minute))

	_, err = env.domain.Declare(alice, &model.DeclareWordcountRequest{GuildID: "guild", Words: 300})
	require.NoError(t, err)

	// Bob has not declared, so the sprint is still awaiting.
	sprint, err := env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.NoError(t, err)

	err = env.domain.(*sprintDomain).complete(ctx, sprint, "en")
	require.Error(t, err)
	require.Equal(t, errorx.NotAllDeclared, err.(errorx.Error).Code)

	_, err = env.domain.Declare(bob, &model.DeclareWordcountRequest{GuildID: "guild", Words: 200})
	require.NoError(t, err)

	// Bob's declaration was the last one, completion followed.
	_, err = env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.Error(t, err)
}

func Test_sprintDomain_NonCountedNeverBlocksCompletion(t *testing.T) {
	ctx := testutil.MockContext(t)
	env := newSprintTestEnv(map[string]string{"alice": "Alice", "bob": "Bob"})

	alice := asUser(ctx, "alice")
	bob := asUser(ctx, "bob")

	resp, err := env.domain.Create(alice, &model.CreateSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	_, err = env.domain.Join(alice, &model.JoinSprintRequest{GuildID: "guild", Initial: 0})
	require.NoError(t, err)
	_, err = env.domain.Join(bob, &model.JoinSprintRequest{GuildID: "guild", Type: "no_wordcount"})
	require.NoError(t, err)

	now := time.Now()
	rewindSprint(ctx, resp.ID, now.Add(-21*time.Minute), now.Add(-time.Minute))

	_, err = env.domain.Declare(alice, &model.DeclareWordcountRequest{GuildID: "guild", Words: 250})
	require.NoError(t, err)

	// Bob never declares but is exempt; the sprint completed anyway.
	_, err = env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.Error(t, err)
}

func Test_sprintDomain_CancelCascades(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "creator")
	env := newSprintTestEnv(map[string]string{"creator": "Creator"})

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{GuildID: "guild", In: 10})
	require.NoError(t, err)

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild", Initial: 10})
	require.NoError(t, err)

	_, err = env.domain.Cancel(ctx, &model.CancelSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	// Sprint, participants, and pending tasks are all gone.
	_, err = env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.Error(t, err)

	_, err = env.sprintRepo.GetUser(ctx, resp.ID, "creator")
	require.Error(t, err)

	due, err := env.taskRepo.GetDue(ctx, time.Now().Add(time.Hour), 10)
	require.NoError(t, err)
	require.Empty(t, due)
}

func Test_sprintDomain_CancelRequiresCreator(t *testing.T) {
	ctx := testutil.MockContext(t)
	env := newSprintTestEnv(nil)

	_, err := env.domain.Create(asUser(ctx, "creator"), &model.CreateSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	_, err = env.domain.Cancel(asUser(ctx, "stranger"), &model.CancelSprintRequest{GuildID: "guild"})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)
}

func Test_sprintDomain_LastLeaverCancelsSprint(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	env := newSprintTestEnv(nil)

	_, err := env.domain.Create(ctx, &model.CreateSprintRequest{GuildID: "guild", In: 5})
	require.NoError(t, err)

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	resp, err := env.domain.Leave(ctx, &model.LeaveSprintRequest{GuildID: "guild"})
	require.NoError(t, err)
	require.Contains(t, resp.Reply, "cancelled")

	_, err = env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.Error(t, err)

	due, err := env.taskRepo.GetDue(ctx, time.Now().Add(time.Hour), 10)
	require.NoError(t, err)
	require.Empty(t, due)
}

func Test_sprintDomain_StartTaskSchedulesEndTask(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	env := newSprintTestEnv(nil)

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{GuildID: "guild", Length: 20})
	require.NoError(t, err)

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	// Fire the start task. Its handler announces the start and only then
	// schedules the end.
	n, err := env.scheduler.RunDue(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	due, err := env.taskRepo.GetDue(ctx, resp.EndAt.Add(time.Second), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, entity.TaskActionEnd, due[0].Action)
}

func Test_sprintDomain_StaleTaskIsNoOp(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	env := newSprintTestEnv(nil)

	err := env.domain.OnTask(ctx, entity.Task{
		Domain:      entity.TaskDomainSprint,
		ReferenceID: 12345,
		Action:      entity.TaskActionStart,
	})
	require.NoError(t, err)
}

func Test_sprintDomain_ForceEndFreezesReference(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "creator")
	env := newSprintTestEnv(map[string]string{"creator": "Creator"})

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{GuildID: "guild", Length: 60})
	require.NoError(t, err)

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild", Initial: 0})
	require.NoError(t, err)

	// Half an hour in, the creator pulls the plug early.
	now := time.Now()
	rewindSprint(ctx, resp.ID, now.Add(-30*time.Minute), now.Add(30*time.Minute))

	_, err = env.domain.End(ctx, &model.EndSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	sprint, err := env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.NoError(t, err)
	require.WithinDuration(t, now, sprint.EndReference, 5*time.Second)
	require.True(t, sprint.IsFinished(time.Now()))

	// 600 words over the frozen 30 minutes is 20 wpm, accepted.
	declared, err := env.domain.Declare(ctx, &model.DeclareWordcountRequest{
		GuildID: "guild",
		Words:   600,
	})
	require.NoError(t, err)
	require.Equal(t, 600, declared.Written)
}

func Test_sprintDomain_DeclareDelta(t *testing.T) {
	ctx := testutil.MockContextAsUser(t, "writer")
	env := newSprintTestEnv(map[string]string{"writer": "Writer"})

	resp, err := env.domain.Create(ctx, &model.CreateSprintRequest{GuildID: "guild", Length: 30})
	require.NoError(t, err)

	_, err = env.domain.Join(ctx, &model.JoinSprintRequest{GuildID: "guild", Initial: 100})
	require.NoError(t, err)

	now := time.Now()
	rewindSprint(ctx, resp.ID, now.Add(-10*time.Minute), now.Add(20*time.Minute))

	declared, err := env.domain.Declare(ctx, &model.DeclareWordcountRequest{
		GuildID: "guild",
		Words:   150,
		Delta:   true,
	})
	require.NoError(t, err)
	require.Equal(t, 150, declared.Written)

	user, err := env.sprintRepo.GetUser(ctx, resp.ID, "writer")
	require.NoError(t, err)
	require.Equal(t, 250, user.CurrentWords)
}

func Test_sprintDomain_NotifyAndPurge(t *testing.T) {
	ctx := testutil.MockContext(t)
	env := newSprintTestEnv(map[string]string{"stayer": "Stayer"})

	_, err := env.domain.Notify(asUser(ctx, "stayer"),
		&model.NotifySprintRequest{GuildID: "guild", Notify: true})
	require.NoError(t, err)

	_, err = env.domain.Notify(asUser(ctx, "leaver"),
		&model.NotifySprintRequest{GuildID: "guild", Notify: true})
	require.NoError(t, err)

	// The leaver is no longer a guild member and gets purged.
	resp, err := env.domain.PurgeNotifications(asUser(ctx, "mod"),
		&model.PurgeNotificationsRequest{GuildID: "guild"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Purged)

	settings, err := env.userRepo.GetUsersWithSetting(ctx, "guild", entity.SettingSprintNotify)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	require.Equal(t, "stayer", settings[0].UserID)
}

func Test_sprintDomain_LeaderboardOrderAndTies(t *testing.T) {
	ctx := testutil.MockContext(t)
	env := newSprintTestEnv(map[string]string{"a": "Anna", "b": "Ben", "c": "Cleo"})

	resp, err := env.domain.Create(asUser(ctx, "a"), &model.CreateSprintRequest{GuildID: "guild", Length: 20})
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		_, err = env.domain.Join(asUser(ctx, id), &model.JoinSprintRequest{GuildID: "guild"})
		require.NoError(t, err)
	}

	now := time.Now()
	rewindSprint(ctx, resp.ID, now.Add(-21*time.Minute), now.Add(-time.Minute))

	// Anna and Ben tie, Cleo wins. Ties keep join order, so Anna stays
	// ahead of Ben.
	_, err = env.domain.Declare(asUser(ctx, "a"), &model.DeclareWordcountRequest{GuildID: "guild", Words: 200})
	require.NoError(t, err)
	_, err = env.domain.Declare(asUser(ctx, "b"), &model.DeclareWordcountRequest{GuildID: "guild", Words: 200})
	require.NoError(t, err)
	_, err = env.domain.Declare(asUser(ctx, "c"), &model.DeclareWordcountRequest{GuildID: "guild", Words: 300})
	require.NoError(t, err)

	topic := xcontext.Configs(ctx).Kafka.OutgoingTopic
	packs := env.publisher.Packs[topic]
	require.NotEmpty(t, packs)

	board := string(packs[len(packs)-1].Msg)
	first := strings.Index(board, "1. Cleo")
	second := strings.Index(board, "2. Anna")
	third := strings.Index(board, "3. Ben")
	require.True(t, first >= 0 && second > first && third > second, board)
}

func Test_sprintDomain_JoinSameRestoresTypeAndProject(t *testing.T) {
	ctx := testutil.MockContext(t)
	env := newSprintTestEnv(map[string]string{"alice": "Alice", "bob": "Bob"})

	alice := asUser(ctx, "alice")
	bob := asUser(ctx, "bob")

	project := &entity.Project{
		SnowFlakeBase: entity.SnowFlakeBase{ID: entity.NewID()},
		UserID:        "alice",
		Shortname:     "novel",
		Name:          "The Novel",
	}
	require.NoError(t, repository.NewProjectRepository().Create(ctx, project))

	resp, err := env.domain.Create(alice, &model.CreateSprintRequest{GuildID: "guild", Length: 20})
	require.NoError(t, err)

	_, err = env.domain.Join(alice, &model.JoinSprintRequest{
		GuildID: "guild",
		Initial: 300,
		Project: "novel",
	})
	require.NoError(t, err)
	_, err = env.domain.Join(bob, &model.JoinSprintRequest{GuildID: "guild", Type: "no_wordcount"})
	require.NoError(t, err)

	now := time.Now()
	rewindSprint(ctx, resp.ID, now.Add(-21*time.Minute), now.Add(-time.Minute))

	_, err = env.domain.Declare(alice, &model.DeclareWordcountRequest{GuildID: "guild", Words: 700})
	require.NoError(t, err)

	_, err = env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.Error(t, err)

	// The next sprint joined with "same" picks up the final count, the
	// project, and the sprint type of the previous one.
	next, err := env.domain.Create(alice, &model.CreateSprintRequest{GuildID: "guild", Length: 20})
	require.NoError(t, err)

	_, err = env.domain.Join(alice, &model.JoinSprintRequest{GuildID: "guild", Type: "same"})
	require.NoError(t, err)

	user, err := env.sprintRepo.GetUser(ctx, next.ID, "alice")
	require.NoError(t, err)
	require.Equal(t, entity.SprintUserCounted, user.Type)
	require.Equal(t, 700, user.StartingWords)
	require.True(t, user.ProjectID.Valid)
	require.Equal(t, project.ID, user.ProjectID.Int64)

	_, err = env.domain.Join(bob, &model.JoinSprintRequest{GuildID: "guild", Type: "same"})
	require.NoError(t, err)

	user, err = env.sprintRepo.GetUser(ctx, next.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, entity.SprintUserNoWordcount, user.Type)
	require.Equal(t, 0, user.StartingWords)
}

func Test_sprintDomain_ModeratorCanCancel(t *testing.T) {
	ctx := testutil.MockContext(t)
	env := newSprintTestEnv(nil)

	_, err := env.domain.Create(asUser(ctx, "creator"), &model.CreateSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	// Without moderation rights another member is refused, with them the
	// cancel goes through.
	_, err = env.domain.Cancel(asUser(ctx, "stranger"), &model.CancelSprintRequest{GuildID: "guild"})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)

	_, err = env.domain.Cancel(asUser(ctx, "mod"), &model.CancelSprintRequest{
		GuildID:   "guild",
		Moderator: true,
	})
	require.NoError(t, err)

	_, err = env.sprintRepo.GetActiveByGuild(ctx, "guild")
	require.Error(t, err)
}

func Test_sprintDomain_ModeratorCanForceEnd(t *testing.T) {
	ctx := testutil.MockContext(t)
	env := newSprintTestEnv(map[string]string{"creator": "Creator"})

	_, err := env.domain.Create(asUser(ctx, "creator"), &model.CreateSprintRequest{GuildID: "guild", Length: 20})
	require.NoError(t, err)

	_, err = env.domain.Join(asUser(ctx, "creator"), &model.JoinSprintRequest{GuildID: "guild"})
	require.NoError(t, err)

	_, err = env.domain.End(asUser(ctx, "stranger"), &model.EndSprintRequest{GuildID: "guild"})
	require.Error(t, err)
	require.Equal(t, errorx.PermissionDenied, err.(errorx.Error).Code)

	_, err = env.domain.End(asUser(ctx, "mod"), &model.EndSprintRequest{
		GuildID:   "guild",
		Moderator: true,
	})
	require.NoError(t, err)
}
