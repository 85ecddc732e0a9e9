package domain

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/inkwell-gg/backend/internal/domain/statistic"
	"github.com/inkwell-gg/backend/internal/domain/task"
	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/model"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/api/discord"
	"github.com/inkwell-gg/backend/pkg/dateutil"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/locale"
	"github.com/inkwell-gg/backend/pkg/pubsub"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"github.com/pkg/math"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

const sprintCommand = "sprint"

type SprintDomain interface {
	Create(ctx context.Context, req *model.CreateSprintRequest) (*model.CreateSprintResponse, error)
	Join(ctx context.Context, req *model.JoinSprintRequest) (*model.JoinSprintResponse, error)
	Leave(ctx context.Context, req *model.LeaveSprintRequest) (*model.LeaveSprintResponse, error)
	Cancel(ctx context.Context, req *model.CancelSprintRequest) (*model.CancelSprintResponse, error)
	End(ctx context.Context, req *model.EndSprintRequest) (*model.EndSprintResponse, error)
	Declare(ctx context.Context, req *model.DeclareWordcountRequest) (*model.DeclareWordcountResponse, error)
	Status(ctx context.Context, req *model.SprintStatusRequest) (*model.SprintStatusResponse, error)
	TimeLeft(ctx context.Context, req *model.SprintTimeRequest) (*model.SprintTimeResponse, error)
	PersonalBest(ctx context.Context, req *model.SprintPersonalBestRequest) (*model.SprintPersonalBestResponse, error)
	Notify(ctx context.Context, req *model.NotifySprintRequest) (*model.NotifySprintResponse, error)
	PurgeNotifications(ctx context.Context, req *model.PurgeNotificationsRequest) (*model.PurgeNotificationsResponse, error)
	SetProject(ctx context.Context, req *model.SetSprintProjectRequest) (*model.SetSprintProjectResponse, error)
	OnTask(ctx context.Context, t entity.Task) error
}

type sprintDomain struct {
	sprintRepo      repository.SprintRepository
	userRepo        repository.UserRepository
	guildRepo       repository.GuildRepository
	projectRepo     repository.ProjectRepository
	taskScheduler   *task.Scheduler
	discordEndpoint discord.IEndpoint
	publisher       pubsub.Publisher

	// guildLocks serializes state-mutating operations per guild.
	guildLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewSprintDomain(
	sprintRepo repository.SprintRepository,
	userRepo repository.UserRepository,
	guildRepo repository.GuildRepository,
	projectRepo repository.ProjectRepository,
	taskScheduler *task.Scheduler,
	discordEndpoint discord.IEndpoint,
	publisher pubsub.Publisher,
) SprintDomain {
	d := &sprintDomain{
		sprintRepo:      sprintRepo,
		userRepo:        userRepo,
		guildRepo:       guildRepo,
		projectRepo:     projectRepo,
		taskScheduler:   taskScheduler,
		discordEndpoint: discordEndpoint,
		publisher:       publisher,
		guildLocks:      xsync.NewMapOf[*sync.Mutex](),
	}

	taskScheduler.Register(entity.TaskDomainSprint, d.OnTask)
	return d
}

func (d *sprintDomain) lockGuild(guildID string) func() {
	mutex, _ := d.guildLocks.LoadOrCompute(guildID, func() *sync.Mutex {
		return &sync.Mutex{}
	})

	mutex.Lock()
	return mutex.Unlock
}

// getActive loads the guild's sprint or reports that none exists.
func (d *sprintDomain) getActive(ctx context.Context, guildID, lang string) (*entity.Sprint, error) {
	sprint, err := d.sprintRepo.GetActiveByGuild(ctx, guildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, locale.Text(lang, "sprint:err:noexists"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get active sprint: %v", err)
		return nil, errorx.Unknown
	}

	return sprint, nil
}

func (d *sprintDomain) Create(
	ctx context.Context, req *model.CreateSprintRequest,
) (*model.CreateSprintResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	if err := checkCommandEnabled(ctx, d.guildRepo, req.GuildID, sprintCommand, lang); err != nil {
		return nil, err
	}

	if _, err := d.sprintRepo.GetActiveByGuild(ctx, req.GuildID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, locale.Text(lang, "sprint:err:alreadyexists"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check active sprint: %v", err)
		return nil, errorx.Unknown
	}

	if req.In != 0 && req.At != 0 {
		return nil, errorx.New(errorx.ExclusiveArguments, locale.Text(lang, "sprint:err:exclusive"))
	}

	cfg := xcontext.Configs(ctx).Sprint
	length := req.Length
	if length <= 0 || length > cfg.MaxLength {
		length = cfg.DefaultLength
	}

	userID := xcontext.RequestUserID(ctx)
	now := time.Now()

	var delay time.Duration
	switch {
	case req.At != 0:
		// At counts minutes past the hour, with 60 standing in for the
		// top of the hour since 0 means "not given".
		if req.At < 0 || req.At > 60 {
			return nil, errorx.New(errorx.BadRequest, locale.Text(lang, "sprint:err:at"))
		}

		tzName, err := d.userRepo.GetSetting(ctx, userID, "", entity.SettingTimezone)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.BadRequest, locale.Text(lang, "err:notimezone"))
			}

			xcontext.Logger(ctx).Errorf("Cannot get timezone setting: %v", err)
			return nil, errorx.Unknown
		}

		loc, err := time.LoadLocation(tzName)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, locale.Text(lang, "err:notimezone"))
		}

		delay = dateutil.MinutePastHour(now, req.At%60, loc)

	case req.In > 0:
		delay = time.Duration(math.MinInt(req.In, cfg.MaxDelay)) * time.Minute
	}

	startAt := now.Add(delay)
	endAt := startAt.Add(time.Duration(length) * time.Minute)

	sprint := &entity.Sprint{
		SnowFlakeBase: entity.SnowFlakeBase{ID: entity.NewID()},
		GuildID:       req.GuildID,
		ChannelID:     req.ChannelID,
		CreatedBy:     userID,
		StartAt:       startAt,
		EndAt:         endAt,
		EndReference:  endAt,
		Length:        length,
	}

	if err := d.sprintRepo.Create(ctx, sprint); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create sprint: %v", err)
		return nil, errorx.Unknown
	}

	// Even an immediate start goes through the scheduler so a restart
	// during the delay window never loses the transition.
	err := d.taskScheduler.Schedule(
		ctx, entity.TaskDomainSprint, sprint.ID, entity.TaskActionStart, startAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot schedule sprint start: %v", err)
		return nil, errorx.Unknown
	}

	err = d.userRepo.IncreaseStat(ctx, userID, req.GuildID, entity.StatSprintsStarted, 1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update started stat: %v", err)
		return nil, errorx.Unknown
	}

	delayMinutes, _ := dateutil.SplitMinutes(delay)
	return &model.CreateSprintResponse{
		ID:      sprint.ID,
		StartAt: startAt,
		EndAt:   endAt,
		Reply:   locale.Text(lang, "sprint:scheduled", delayMinutes, length),
	}, nil
}

func (d *sprintDomain) Join(
	ctx context.Context, req *model.JoinSprintRequest,
) (*model.JoinSprintResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	if err := checkCommandEnabled(ctx, d.guildRepo, req.GuildID, sprintCommand, lang); err != nil {
		return nil, err
	}

	sprint, err := d.getActive(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)

	userType := entity.SprintUserCounted
	initial := req.Initial
	switch req.Type {
	case "no_wordcount":
		userType = entity.SprintUserNoWordcount
		initial = 0

	case "same":
		lastType, err := d.userRepo.GetSetting(ctx, userID, req.GuildID, entity.SettingSprintType)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get previous sprint type: %v", err)
			return nil, errorx.Unknown
		}

		// A user who last sprinted without a word count joins the same
		// way again.
		if entity.SprintUserType(lastType) == entity.SprintUserNoWordcount {
			userType = entity.SprintUserNoWordcount
			initial = 0
			break
		}

		last, err := d.userRepo.GetSetting(ctx, userID, req.GuildID, entity.SettingSprintFinal)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get previous final count: %v", err)
			return nil, errorx.Unknown
		}

		initial, _ = strconv.Atoi(last)
	}

	initial = math.MaxInt(initial, 0)

	var projectID sql.NullInt64
	if req.Project != "" {
		project, err := d.projectRepo.GetByShortname(ctx, userID, req.Project)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound,
					locale.Text(lang, "project:err:noexists", req.Project))
			}

			xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
			return nil, errorx.Unknown
		}

		projectID = sql.NullInt64{Int64: project.ID, Valid: true}
	}

	if req.Project == "" && req.Type == "same" && userType == entity.SprintUserCounted {
		projectID = d.lastProject(ctx, userID, req.GuildID)
	}

	_, err = d.sprintRepo.GetUser(ctx, sprint.ID, userID)
	rejoined := err == nil

	// Rejoining resets both counts so a stale starting value can never
	// show negative words written.
	err = d.sprintRepo.UpsertUser(ctx, &entity.SprintUser{
		SprintID:      sprint.ID,
		UserID:        userID,
		Type:          userType,
		StartingWords: initial,
		CurrentWords:  initial,
		ProjectID:     projectID,
		JoinedAt:      time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot join sprint: %v", err)
		return nil, errorx.Unknown
	}

	switch {
	case userType == entity.SprintUserNoWordcount:
		return &model.JoinSprintResponse{Reply: locale.Text(lang, "sprint:join:nowordcount")}, nil
	case rejoined:
		return &model.JoinSprintResponse{Reply: locale.Text(lang, "sprint:join:update", initial)}, nil
	default:
		return &model.JoinSprintResponse{Reply: locale.Text(lang, "sprint:join", initial)}, nil
	}
}

func (d *sprintDomain) Leave(
	ctx context.Context, req *model.LeaveSprintRequest,
) (*model.LeaveSprintResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	sprint, err := d.getActive(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.sprintRepo.GetUser(ctx, sprint.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotParticipating, locale.Text(lang, "sprint:err:notjoined"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.sprintRepo.DeleteUser(ctx, sprint.ID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove participant: %v", err)
		return nil, errorx.Unknown
	}

	remaining, err := d.sprintRepo.CountUsers(ctx, sprint.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	// The last leaver takes the sprint down with them.
	if remaining == 0 {
		if err := d.discard(ctx, sprint); err != nil {
			return nil, err
		}

		// A sprint nobody stayed for never counts as started.
		err = d.userRepo.IncreaseStat(
			ctx, sprint.CreatedBy, req.GuildID, entity.StatSprintsStarted, -1)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot revert started stat: %v", err)
		}

		return &model.LeaveSprintResponse{Reply: locale.Text(lang, "sprint:leave:cancelled")}, nil
	}

	return &model.LeaveSprintResponse{Reply: locale.Text(lang, "sprint:leave")}, nil
}

func (d *sprintDomain) Cancel(
	ctx context.Context, req *model.CancelSprintRequest,
) (*model.CancelSprintResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	sprint, err := d.getActive(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	if xcontext.RequestUserID(ctx) != sprint.CreatedBy && !req.Moderator {
		return nil, errorx.New(errorx.PermissionDenied, locale.Text(lang, "sprint:err:cannotcancel"))
	}

	users, err := d.sprintRepo.GetUsers(ctx, sprint.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.discard(ctx, sprint); err != nil {
		return nil, err
	}

	reply := locale.Text(lang, "sprint:cancelled", mentionAll(users))
	announce(ctx, d.publisher, sprint.GuildID, sprint.ChannelID, reply)

	return &model.CancelSprintResponse{Reply: reply}, nil
}

// discard removes the sprint, its participants, and its pending tasks in
// one transaction.
func (d *sprintDomain) discard(ctx context.Context, sprint *entity.Sprint) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.taskScheduler.Cancel(ctx, entity.TaskDomainSprint, sprint.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cancel sprint tasks: %v", err)
		return errorx.Unknown
	}

	if err := d.sprintRepo.Delete(ctx, sprint.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete sprint: %v", err)
		return errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}

func (d *sprintDomain) End(
	ctx context.Context, req *model.EndSprintRequest,
) (*model.EndSprintResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	sprint, err := d.getActive(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	if xcontext.RequestUserID(ctx) != sprint.CreatedBy && !req.Moderator {
		return nil, errorx.New(errorx.PermissionDenied, locale.Text(lang, "sprint:err:cannotend"))
	}

	now := time.Now()
	if !sprint.HasStarted(now) {
		return nil, errorx.New(errorx.NotStartedYet, locale.Text(lang, "sprint:err:notstarted"))
	}

	// Freeze wpm math at the manual end and stop the pending end task.
	if err := d.sprintRepo.UpdateEndReference(ctx, sprint.ID, now, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot end sprint: %v", err)
		return nil, errorx.Unknown
	}

	err = d.taskScheduler.CancelAction(
		ctx, entity.TaskDomainSprint, sprint.ID, entity.TaskActionEnd)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cancel end task: %v", err)
		return nil, errorx.Unknown
	}

	sprint.EndAt = now
	sprint.EndReference = now
	if err := d.finishOrWait(ctx, sprint, lang); err != nil {
		return nil, err
	}

	return &model.EndSprintResponse{Reply: locale.Text(lang, "sprint:waitingforwc")}, nil
}

func (d *sprintDomain) Declare(
	ctx context.Context, req *model.DeclareWordcountRequest,
) (*model.DeclareWordcountResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	sprint, err := d.getActive(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.sprintRepo.GetUser(ctx, sprint.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotParticipating, locale.Text(lang, "sprint:err:notjoined"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	if user.Type == entity.SprintUserNoWordcount {
		return nil, errorx.New(errorx.BadRequest, locale.Text(lang, "sprint:err:nonwordcount"))
	}

	now := time.Now()
	if !sprint.HasStarted(now) {
		return nil, errorx.New(errorx.NotStartedYet, locale.Text(lang, "sprint:err:notstarted"))
	}

	amount := req.Words
	if req.Delta {
		amount = user.CurrentWords + req.Words
	}

	if amount < user.StartingWords {
		return nil, errorx.New(errorx.BelowStartingCount,
			locale.Text(lang, "sprint:err:wclessthanstart", amount, user.StartingWords))
	}

	written := amount - user.StartingWords
	wpm := wordsPerMinute(written, sprint.StartAt, minTime(now, sprint.EndReference))

	threshold := d.wpmThreshold(ctx, userID)
	if wpm > float64(threshold) {
		return nil, errorx.New(errorx.AnomalousWPM,
			locale.Text(lang, "sprint:err:wpm", written, wpm, threshold))
	}

	// Still running writes the current count; after the end it is the
	// final declaration.
	if sprint.IsFinished(now) {
		err = d.sprintRepo.UpdateEndingWords(ctx, sprint.ID, userID, amount, user.ProjectID)
	} else {
		err = d.sprintRepo.UpdateCurrentWords(ctx, sprint.ID, userID, amount)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record word count: %v", err)
		return nil, errorx.Unknown
	}

	if sprint.IsFinished(now) {
		if err := d.finishOrWait(ctx, sprint, lang); err != nil {
			return nil, err
		}
	}

	return &model.DeclareWordcountResponse{
		Written: written,
		Reply:   locale.Text(lang, "sprint:declared", amount, written),
	}, nil
}

// wpmThreshold is the configured ceiling, unless the user raised their own.
func (d *sprintDomain) wpmThreshold(ctx context.Context, userID string) int {
	threshold := xcontext.Configs(ctx).Sprint.MaxWordsPerMinute

	value, err := d.userRepo.GetSetting(ctx, userID, "", entity.SettingMaxWPM)
	if err != nil {
		return threshold
	}

	if custom, err := strconv.Atoi(value); err == nil && custom > 0 {
		return custom
	}

	return threshold
}

func (d *sprintDomain) Status(
	ctx context.Context, req *model.SprintStatusRequest,
) (*model.SprintStatusResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	sprint, err := d.getActive(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.sprintRepo.GetUser(ctx, sprint.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotParticipating, locale.Text(lang, "sprint:err:notjoined"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	switch {
	case !sprint.HasStarted(now):
		minutes, seconds := dateutil.SplitMinutes(sprint.StartAt.Sub(now))
		return &model.SprintStatusResponse{
			Reply: locale.Text(lang, "sprint:startsin", minutes, seconds),
		}, nil

	case sprint.IsFinished(now):
		return &model.SprintStatusResponse{
			Reply: locale.Text(lang, "sprint:waitingforwc"),
		}, nil
	}

	written := user.CurrentWords - user.StartingWords
	elapsed := now.Sub(sprint.StartAt).Minutes()
	left := sprint.EndAt.Sub(now).Minutes()
	wpm := wordsPerMinute(written, sprint.StartAt, now)

	return &model.SprintStatusResponse{
		Reply: locale.Text(lang, "sprint:status", user.CurrentWords, written, elapsed, wpm, left),
	}, nil
}

func (d *sprintDomain) TimeLeft(
	ctx context.Context, req *model.SprintTimeRequest,
) (*model.SprintTimeResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	sprint, err := d.getActive(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch {
	case !sprint.HasStarted(now):
		minutes, seconds := dateutil.SplitMinutes(sprint.StartAt.Sub(now))
		return &model.SprintTimeResponse{
			Reply: locale.Text(lang, "sprint:startsin", minutes, seconds),
		}, nil

	case !sprint.IsFinished(now):
		minutes, seconds := dateutil.SplitMinutes(sprint.EndAt.Sub(now))
		return &model.SprintTimeResponse{
			Reply: locale.Text(lang, "sprint:timeleft", minutes, seconds),
		}, nil
	}

	return &model.SprintTimeResponse{
		Reply: locale.Text(lang, "sprint:waitingforwc"),
	}, nil
}

func (d *sprintDomain) PersonalBest(
	ctx context.Context, req *model.SprintPersonalBestRequest,
) (*model.SprintPersonalBestResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	userID := xcontext.RequestUserID(ctx)

	record, err := d.userRepo.GetRecord(ctx, userID, req.GuildID, entity.RecordWPM)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.SprintPersonalBestResponse{
				Reply: locale.Text(lang, "sprint:pb:none"),
			}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get personal best: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SprintPersonalBestResponse{
		WPM:   record,
		Reply: locale.Text(lang, "sprint:pb", int(record)),
	}, nil
}

func (d *sprintDomain) Notify(
	ctx context.Context, req *model.NotifySprintRequest,
) (*model.NotifySprintResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	userID := xcontext.RequestUserID(ctx)

	if req.Notify {
		err := d.userRepo.UpsertSetting(ctx, &entity.UserSetting{
			UserID:  userID,
			GuildID: req.GuildID,
			Key:     entity.SettingSprintNotify,
			Value:   "1",
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save notify setting: %v", err)
			return nil, errorx.Unknown
		}

		return &model.NotifySprintResponse{Reply: locale.Text(lang, "sprint:notified")}, nil
	}

	err := d.userRepo.DeleteSetting(ctx, userID, req.GuildID, entity.SettingSprintNotify)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete notify setting: %v", err)
		return nil, errorx.Unknown
	}

	return &model.NotifySprintResponse{Reply: locale.Text(lang, "sprint:forgot")}, nil
}

// PurgeNotifications drops notification subscriptions of users who are no
// longer members of the guild.
func (d *sprintDomain) PurgeNotifications(
	ctx context.Context, req *model.PurgeNotificationsRequest,
) (*model.PurgeNotificationsResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)

	settings, err := d.userRepo.GetUsersWithSetting(ctx, req.GuildID, entity.SettingSprintNotify)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list notify settings: %v", err)
		return nil, errorx.Unknown
	}

	purged := 0
	for _, setting := range settings {
		isMember, err := d.discordEndpoint.CheckMember(ctx, req.GuildID, setting.UserID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot check member %s: %v", setting.UserID, err)
			continue
		}

		if isMember {
			continue
		}

		err = d.userRepo.DeleteSetting(ctx, setting.UserID, req.GuildID, entity.SettingSprintNotify)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot purge notify setting: %v", err)
			return nil, errorx.Unknown
		}

		purged++
	}

	reply := locale.Text(lang, "sprint:purged:none")
	if purged > 0 {
		reply = locale.Text(lang, "sprint:purged", purged)
	}

	return &model.PurgeNotificationsResponse{Purged: purged, Reply: reply}, nil
}

func (d *sprintDomain) SetProject(
	ctx context.Context, req *model.SetSprintProjectRequest,
) (*model.SetSprintProjectResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	sprint, err := d.getActive(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.sprintRepo.GetUser(ctx, sprint.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotParticipating, locale.Text(lang, "sprint:err:notjoined"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	project, err := d.projectRepo.GetByShortname(ctx, userID, req.Shortname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound,
				locale.Text(lang, "project:err:noexists", req.Shortname))
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.sprintRepo.UpdateUserProject(ctx, sprint.ID, userID, project.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set sprint project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetSprintProjectResponse{
		Reply: locale.Text(lang, "sprint:project", project.Name),
	}, nil
}

// OnTask fires scheduled sprint transitions. Tasks for sprints that no
// longer exist are stale and succeed without doing anything.
func (d *sprintDomain) OnTask(ctx context.Context, t entity.Task) error {
	sprint, err := d.sprintRepo.GetByID(ctx, t.ReferenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}

	defer d.lockGuild(sprint.GuildID)()

	lang := guildLang(ctx, d.guildRepo, sprint.GuildID)
	switch t.Action {
	case entity.TaskActionStart:
		return d.onStart(ctx, sprint, lang)
	case entity.TaskActionEnd:
		return d.onEnd(ctx, sprint, lang)
	default:
		xcontext.Logger(ctx).Warnf("Unknown sprint task action %s", t.Action)
		return nil
	}
}

// onStart announces the sprint and schedules the end task. Scheduling the
// end here rather than at creation means a sprint cancelled during its
// countdown never leaves an end task behind.
func (d *sprintDomain) onStart(ctx context.Context, sprint *entity.Sprint, lang string) error {
	err := d.taskScheduler.Schedule(
		ctx, entity.TaskDomainSprint, sprint.ID, entity.TaskActionEnd, sprint.EndAt)
	if err != nil {
		return err
	}

	users, err := d.sprintRepo.GetUsers(ctx, sprint.ID)
	if err != nil {
		return err
	}

	mentions := d.withNotifyMentions(ctx, sprint.GuildID, users)
	announce(ctx, d.publisher, sprint.GuildID, sprint.ChannelID,
		locale.Text(lang, "sprint:begin", mentions))

	return nil
}

func (d *sprintDomain) onEnd(ctx context.Context, sprint *entity.Sprint, lang string) error {
	// A force-end may have moved the end while this task was in flight.
	if !sprint.IsFinished(time.Now()) {
		return nil
	}

	users, err := d.sprintRepo.GetUsers(ctx, sprint.ID)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		return d.discardPlain(ctx, sprint)
	}

	announce(ctx, d.publisher, sprint.GuildID, sprint.ChannelID,
		locale.Text(lang, "sprint:end", mentionAll(users)))

	return d.finishOrWait(ctx, sprint, lang)
}

func (d *sprintDomain) discardPlain(ctx context.Context, sprint *entity.Sprint) error {
	err := d.taskScheduler.Cancel(ctx, entity.TaskDomainSprint, sprint.ID)
	if err != nil {
		return err
	}

	return d.sprintRepo.Delete(ctx, sprint.ID)
}

// finishOrWait completes the sprint when every counted participant has
// declared, and otherwise leaves it awaiting declarations.
func (d *sprintDomain) finishOrWait(ctx context.Context, sprint *entity.Sprint, lang string) error {
	undeclared, err := d.sprintRepo.CountUndeclared(ctx, sprint.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count undeclared participants: %v", err)
		return errorx.Unknown
	}

	if undeclared > 0 {
		return nil
	}

	return d.complete(ctx, sprint, lang)
}

// complete posts the final leaderboard, updates records and stats, credits
// projects, and removes the sprint.
func (d *sprintDomain) complete(ctx context.Context, sprint *entity.Sprint, lang string) error {
	users, err := d.sprintRepo.GetUsers(ctx, sprint.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return errorx.Unknown
	}

	undeclared := 0
	for _, u := range users {
		if !u.HasDeclared() {
			undeclared++
		}
	}
	if undeclared > 0 {
		return errorx.New(errorx.NotAllDeclared, locale.Text(lang, "sprint:err:notalldeclared"))
	}

	results := []statistic.SprintResult{}
	for _, u := range users {
		if err := d.rememberJoin(ctx, sprint.GuildID, &u); err != nil {
			return err
		}

		if u.Type == entity.SprintUserNoWordcount {
			continue
		}

		written := u.WrittenWords()
		wpm := wordsPerMinute(written, sprint.StartAt, sprint.EndReference)

		newRecord, err := d.userRepo.UpdateRecord(
			ctx, u.UserID, sprint.GuildID, entity.RecordWPM, wpm)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update record: %v", err)
			return errorx.Unknown
		}

		if err := d.recordCompletion(ctx, sprint.GuildID, &u, written); err != nil {
			return err
		}

		name := u.UserID
		member, err := d.discordEndpoint.GetMember(ctx, sprint.GuildID, u.UserID)
		if err != nil {
			if errors.Is(err, discord.ErrUnknownMember) {
				// Left the guild since joining, drop from the board.
				continue
			}

			xcontext.Logger(ctx).Warnf("Cannot resolve member %s: %v", u.UserID, err)
		} else {
			name = member.DisplayName
		}

		results = append(results, statistic.SprintResult{
			UserID:    u.UserID,
			Name:      name,
			Written:   written,
			WPM:       wpm,
			NewRecord: newRecord,
		})
	}

	ranked := statistic.Rank(results)
	lines := []string{locale.Text(lang, "sprint:completed")}
	for i, result := range ranked {
		line := locale.Text(lang, "sprint:leaderboard:entry",
			i+1, result.Name, result.Written, result.WPM)
		if result.NewRecord {
			line += " " + locale.Text(lang, "sprint:pb:new", int(result.WPM))
		}

		lines = append(lines, line)
	}

	if i := indexOfWinner(ranked); i >= 0 {
		err := d.userRepo.IncreaseStat(
			ctx, ranked[i].UserID, sprint.GuildID, entity.StatSprintsWon, 1)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update winner stat: %v", err)
			return errorx.Unknown
		}
	}

	limit := xcontext.Configs(ctx).Discord.MessageCharacterLimit
	announce(ctx, d.publisher, sprint.GuildID, sprint.ChannelID,
		statistic.FormatLines(lines, limit))

	return d.discardPlain(ctx, sprint)
}

// rememberJoin stores how the participant sprinted so a later join with
// type "same" can restore the type and project, not just the final count.
func (d *sprintDomain) rememberJoin(
	ctx context.Context, guildID string, u *entity.SprintUser,
) error {
	err := d.userRepo.UpsertSetting(ctx, &entity.UserSetting{
		UserID:  u.UserID,
		GuildID: guildID,
		Key:     entity.SettingSprintType,
		Value:   string(u.Type),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save sprint type: %v", err)
		return errorx.Unknown
	}

	if u.ProjectID.Valid {
		err = d.userRepo.UpsertSetting(ctx, &entity.UserSetting{
			UserID:  u.UserID,
			GuildID: guildID,
			Key:     entity.SettingSprintProject,
			Value:   strconv.FormatInt(u.ProjectID.Int64, 10),
		})
	} else {
		err = d.userRepo.DeleteSetting(ctx, u.UserID, guildID, entity.SettingSprintProject)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save sprint project: %v", err)
		return errorx.Unknown
	}

	return nil
}

// lastProject resolves the project the user sprinted in last time, if it
// still exists.
func (d *sprintDomain) lastProject(
	ctx context.Context, userID, guildID string,
) sql.NullInt64 {
	value, err := d.userRepo.GetSetting(ctx, userID, guildID, entity.SettingSprintProject)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get previous project: %v", err)
		}

		return sql.NullInt64{}
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}

	if _, err := d.projectRepo.GetByID(ctx, id); err != nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: id, Valid: true}
}

// recordCompletion updates the participant's counters and remembers their
// final count for a later join-with-same.
func (d *sprintDomain) recordCompletion(
	ctx context.Context, guildID string, u *entity.SprintUser, written int,
) error {
	err := d.userRepo.IncreaseStat(ctx, u.UserID, guildID, entity.StatSprintsCompleted, 1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update completion stat: %v", err)
		return errorx.Unknown
	}

	if written > 0 {
		err = d.userRepo.IncreaseStat(
			ctx, u.UserID, guildID, entity.StatTotalSprintWords, int64(written))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update words stat: %v", err)
			return errorx.Unknown
		}
	}

	if u.EndingWords.Valid {
		err = d.userRepo.UpsertSetting(ctx, &entity.UserSetting{
			UserID:  u.UserID,
			GuildID: guildID,
			Key:     entity.SettingSprintFinal,
			Value:   strconv.FormatInt(u.EndingWords.Int64, 10),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save final count: %v", err)
			return errorx.Unknown
		}
	}

	if u.ProjectID.Valid && written > 0 {
		if err := d.projectRepo.AddWords(ctx, u.ProjectID.Int64, written); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit project: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

// withNotifyMentions combines participant mentions with users subscribed to
// sprint notifications, without mentioning anyone twice.
func (d *sprintDomain) withNotifyMentions(
	ctx context.Context, guildID string, users []entity.SprintUser,
) string {
	seen := map[string]bool{}
	mentions := []string{}
	for _, u := range users {
		seen[u.UserID] = true
		mentions = append(mentions, discord.Mention(u.UserID))
	}

	settings, err := d.userRepo.GetUsersWithSetting(ctx, guildID, entity.SettingSprintNotify)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot list notify settings: %v", err)
		return strings.Join(mentions, " ")
	}

	for _, setting := range settings {
		if seen[setting.UserID] {
			continue
		}

		mentions = append(mentions, discord.Mention(setting.UserID))
	}

	return strings.Join(mentions, " ")
}

func mentionAll(users []entity.SprintUser) string {
	mentions := make([]string, 0, len(users))
	for _, u := range users {
		mentions = append(mentions, discord.Mention(u.UserID))
	}

	return strings.Join(mentions, " ")
}

// wordsPerMinute guards against sub-minute elapsed times so a quick first
// declaration is not flagged as anomalous by a tiny denominator.
func wordsPerMinute(written int, startAt, until time.Time) float64 {
	minutes := until.Sub(startAt).Minutes()
	if minutes < 1 {
		minutes = 1
	}

	return float64(written) / minutes
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}

func indexOfWinner(ranked []statistic.SprintResult) int {
	if len(ranked) == 0 || ranked[0].Written <= 0 {
		return -1
	}

	return 0
}
