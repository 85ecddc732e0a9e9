package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/inkwell-gg/backend/internal/domain/statistic"
	"github.com/inkwell-gg/backend/internal/domain/task"
	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/model"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/api/discord"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/locale"
	"github.com/inkwell-gg/backend/pkg/pubsub"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"github.com/pkg/math"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

const eventCommand = "event"

const eventTimeFormat = "Mon 2 Jan 2006 15:04 MST"

type EventDomain interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.CreateEventResponse, error)
	Schedule(ctx context.Context, req *model.ScheduleEventRequest) (*model.ScheduleEventResponse, error)
	Start(ctx context.Context, req *model.StartEventRequest) (*model.StartEventResponse, error)
	End(ctx context.Context, req *model.EndEventRequest) (*model.EndEventResponse, error)
	Delete(ctx context.Context, req *model.DeleteEventRequest) (*model.DeleteEventResponse, error)
	UpdateInfo(ctx context.Context, req *model.UpdateEventInfoRequest) (*model.UpdateEventInfoResponse, error)
	AddWords(ctx context.Context, req *model.AddEventWordsRequest) (*model.AddEventWordsResponse, error)
	SetWords(ctx context.Context, req *model.SetEventWordsRequest) (*model.SetEventWordsResponse, error)
	MyWords(ctx context.Context, req *model.MyEventWordsRequest) (*model.MyEventWordsResponse, error)
	Leaderboard(ctx context.Context, req *model.EventLeaderboardRequest) (*model.EventLeaderboardResponse, error)
	OnTask(ctx context.Context, t entity.Task) error
}

type eventDomain struct {
	eventRepo       repository.EventRepository
	userRepo        repository.UserRepository
	guildRepo       repository.GuildRepository
	taskScheduler   *task.Scheduler
	leaderboard     *statistic.EventLeaderboard
	discordEndpoint discord.IEndpoint
	publisher       pubsub.Publisher

	guildLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	guildRepo repository.GuildRepository,
	taskScheduler *task.Scheduler,
	leaderboard *statistic.EventLeaderboard,
	discordEndpoint discord.IEndpoint,
	publisher pubsub.Publisher,
) EventDomain {
	d := &eventDomain{
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		guildRepo:       guildRepo,
		taskScheduler:   taskScheduler,
		leaderboard:     leaderboard,
		discordEndpoint: discordEndpoint,
		publisher:       publisher,
		guildLocks:      xsync.NewMapOf[*sync.Mutex](),
	}

	taskScheduler.Register(entity.TaskDomainEvent, d.OnTask)
	return d
}

func (d *eventDomain) lockGuild(guildID string) func() {
	mutex, _ := d.guildLocks.LoadOrCompute(guildID, func() *sync.Mutex {
		return &sync.Mutex{}
	})

	mutex.Lock()
	return mutex.Unlock
}

func (d *eventDomain) getCurrent(ctx context.Context, guildID, lang string) (*entity.Event, error) {
	event, err := d.eventRepo.GetCurrentByGuild(ctx, guildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NoActiveEvent, locale.Text(lang, "event:err:noexists"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get current event: %v", err)
		return nil, errorx.Unknown
	}

	return event, nil
}

func (d *eventDomain) Create(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	if err := checkCommandEnabled(ctx, d.guildRepo, req.GuildID, eventCommand, lang); err != nil {
		return nil, err
	}

	if _, err := d.eventRepo.GetCurrentByGuild(ctx, req.GuildID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, locale.Text(lang, "event:err:exists"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check current event: %v", err)
		return nil, errorx.Unknown
	}

	colour := req.Colour
	if colour == 0 {
		colour = xcontext.Configs(ctx).Event.DefaultColour
	}

	event := &entity.Event{
		SnowFlakeBase: entity.SnowFlakeBase{ID: entity.NewID()},
		GuildID:       req.GuildID,
		ChannelID:     req.ChannelID,
		CreatedBy:     xcontext.RequestUserID(ctx),
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		Colour:        colour,
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateEventResponse{
		ID:    event.ID,
		Reply: locale.Text(lang, "event:created", event.Title),
	}, nil
}

func (d *eventDomain) Schedule(
	ctx context.Context, req *model.ScheduleEventRequest,
) (*model.ScheduleEventResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	event, err := d.getCurrent(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	if event.IsRunning() {
		return nil, errorx.New(errorx.AlreadyStarted, locale.Text(lang, "event:err:alreadystarted"))
	}

	if !req.StartAt.Before(req.EndAt) || req.StartAt.Before(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, locale.Text(lang, "event:err:dates"))
	}

	if err := d.eventRepo.UpdateSchedule(ctx, event.ID, req.StartAt, req.EndAt); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot schedule event: %v", err)
		return nil, errorx.Unknown
	}

	// The end task is scheduled by the start handler when it fires.
	err = d.taskScheduler.Schedule(
		ctx, entity.TaskDomainEvent, event.ID, entity.TaskActionStart, req.StartAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot schedule event start: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ScheduleEventResponse{
		Reply: locale.Text(lang, "event:scheduled", event.Title,
			req.StartAt.Format(eventTimeFormat), req.EndAt.Format(eventTimeFormat)),
	}, nil
}

func (d *eventDomain) Start(
	ctx context.Context, req *model.StartEventRequest,
) (*model.StartEventResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	event, err := d.getCurrent(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	if event.IsRunning() {
		return nil, errorx.New(errorx.AlreadyStarted, locale.Text(lang, "event:err:alreadystarted"))
	}

	if err := d.start(ctx, event, lang); err != nil {
		return nil, err
	}

	err = d.taskScheduler.CancelAction(
		ctx, entity.TaskDomainEvent, event.ID, entity.TaskActionStart)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cancel event start task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.StartEventResponse{
		Reply: locale.Text(lang, "event:begin", event.Title),
	}, nil
}

func (d *eventDomain) start(ctx context.Context, event *entity.Event, lang string) error {
	if err := d.eventRepo.SetStarted(ctx, event.ID, time.Now()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot start event: %v", err)
		return errorx.Unknown
	}

	if !event.EndAt.IsZero() {
		err := d.taskScheduler.Schedule(
			ctx, entity.TaskDomainEvent, event.ID, entity.TaskActionEnd, event.EndAt)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot schedule event end: %v", err)
			return errorx.Unknown
		}
	}

	announce(ctx, d.publisher, event.GuildID, event.ChannelID,
		locale.Text(lang, "event:begin", event.Title))

	return nil
}

func (d *eventDomain) End(
	ctx context.Context, req *model.EndEventRequest,
) (*model.EndEventResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	event, err := d.getCurrent(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	if !event.IsRunning() {
		return nil, errorx.New(errorx.BadRequest, locale.Text(lang, "event:err:notstarted"))
	}

	if err := d.end(ctx, event, lang); err != nil {
		return nil, err
	}

	return &model.EndEventResponse{
		Reply: locale.Text(lang, "event:ended", event.Title),
	}, nil
}

func (d *eventDomain) end(ctx context.Context, event *entity.Event, lang string) error {
	if err := d.eventRepo.SetEnded(ctx, event.ID, time.Now()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot end event: %v", err)
		return errorx.Unknown
	}

	err := d.taskScheduler.Cancel(ctx, entity.TaskDomainEvent, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cancel event tasks: %v", err)
		return errorx.Unknown
	}

	announce(ctx, d.publisher, event.GuildID, event.ChannelID,
		locale.Text(lang, "event:ended", event.Title))

	if board, err := d.renderLeaderboard(ctx, event, lang, 0); err == nil {
		announce(ctx, d.publisher, event.GuildID, event.ChannelID, board.Reply)
	}

	return nil
}

func (d *eventDomain) Delete(
	ctx context.Context, req *model.DeleteEventRequest,
) (*model.DeleteEventResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	event, err := d.eventRepo.GetLatestByGuild(ctx, req.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NoActiveEvent, locale.Text(lang, "event:err:noexists"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.taskScheduler.Cancel(ctx, entity.TaskDomainEvent, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cancel event tasks: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.eventRepo.Delete(ctx, event.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.leaderboard.Clear(ctx, event.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear leaderboard cache: %v", err)
	}

	return &model.DeleteEventResponse{
		Reply: locale.Text(lang, "event:deleted", event.Title),
	}, nil
}

func (d *eventDomain) UpdateInfo(
	ctx context.Context, req *model.UpdateEventInfoRequest,
) (*model.UpdateEventInfoResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	event, err := d.getCurrent(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = event.Title
	}

	description := req.Description
	if description == "" {
		description = event.Description
	}

	image := req.Image
	if image == "" {
		image = event.Image
	}

	colour := req.Colour
	if colour == 0 {
		colour = event.Colour
	}

	if err := d.eventRepo.UpdateInfo(ctx, event.ID, title, description, image, colour); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateEventInfoResponse{
		Reply: locale.Text(lang, "event:updated", title),
	}, nil
}

func (d *eventDomain) AddWords(
	ctx context.Context, req *model.AddEventWordsRequest,
) (*model.AddEventWordsResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	event, total, err := d.changeWords(ctx, req.GuildID, lang, req.Words, true)
	if err != nil {
		return nil, err
	}

	return &model.AddEventWordsResponse{
		Total: total,
		Reply: locale.Text(lang, "event:wordsadded", req.Words, event.Title, total),
	}, nil
}

func (d *eventDomain) SetWords(
	ctx context.Context, req *model.SetEventWordsRequest,
) (*model.SetEventWordsResponse, error) {
	defer d.lockGuild(req.GuildID)()

	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	event, total, err := d.changeWords(ctx, req.GuildID, lang, req.Words, false)
	if err != nil {
		return nil, err
	}

	return &model.SetEventWordsResponse{
		Reply: locale.Text(lang, "event:wordsset", event.Title, total),
	}, nil
}

// changeWords reads the user's current total, applies the change, and writes
// it back. Last writer wins.
func (d *eventDomain) changeWords(
	ctx context.Context, guildID, lang string, words int, delta bool,
) (*entity.Event, int, error) {
	event, err := d.getCurrent(ctx, guildID, lang)
	if err != nil {
		return nil, 0, err
	}

	if !event.IsRunning() {
		return nil, 0, errorx.New(errorx.BadRequest, locale.Text(lang, "event:err:notstarted"))
	}

	userID := xcontext.RequestUserID(ctx)
	current := 0
	wordcount, err := d.eventRepo.GetWordcount(ctx, event.ID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get wordcount: %v", err)
		return nil, 0, errorx.Unknown
	}
	if err == nil {
		current = wordcount.Words
	}

	total := words
	if delta {
		total = current + words
	}
	total = math.MaxInt(total, 0)

	err = d.eventRepo.UpsertWordcount(ctx, &entity.EventWordcount{
		EventID: event.ID,
		UserID:  userID,
		Words:   total,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save wordcount: %v", err)
		return nil, 0, errorx.Unknown
	}

	if err := d.leaderboard.ChangeWords(ctx, event.ID, userID, total); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard cache: %v", err)
	}

	if added := total - current; added > 0 {
		err = d.userRepo.IncreaseStat(ctx, userID, guildID, entity.StatTotalWords, int64(added))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update words stat: %v", err)
			return nil, 0, errorx.Unknown
		}
	}

	return event, total, nil
}

func (d *eventDomain) MyWords(
	ctx context.Context, req *model.MyEventWordsRequest,
) (*model.MyEventWordsResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)
	event, err := d.getCurrent(ctx, req.GuildID, lang)
	if err != nil {
		return nil, err
	}

	words := 0
	wordcount, err := d.eventRepo.GetWordcount(ctx, event.ID, xcontext.RequestUserID(ctx))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get wordcount: %v", err)
		return nil, errorx.Unknown
	}
	if err == nil {
		words = wordcount.Words
	}

	return &model.MyEventWordsResponse{
		Words: words,
		Reply: locale.Text(lang, "event:progress", words, event.Title),
	}, nil
}

func (d *eventDomain) Leaderboard(
	ctx context.Context, req *model.EventLeaderboardRequest,
) (*model.EventLeaderboardResponse, error) {
	lang := guildLang(ctx, d.guildRepo, req.GuildID)

	event, err := d.eventRepo.GetLatestByGuild(ctx, req.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NoActiveEvent, locale.Text(lang, "event:err:noexists"))
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	return d.renderLeaderboard(ctx, event, lang, req.Limit)
}

func (d *eventDomain) renderLeaderboard(
	ctx context.Context, event *entity.Event, lang string, limit int,
) (*model.EventLeaderboardResponse, error) {
	cfg := xcontext.Configs(ctx).Event
	if limit <= 0 {
		limit = cfg.DefaultLeaderboardLimit
	}
	limit = math.MinInt(limit, cfg.MaxLeaderboardLimit)

	rows, err := d.leaderboard.Top(ctx, event.ID, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	title := locale.Text(lang, "event:leaderboard", event.Title)
	lines := []string{title}
	entries := []model.EventLeaderboardEntry{}
	rank := 0
	for _, row := range rows {
		member, err := d.discordEndpoint.GetMember(ctx, event.GuildID, row.UserID)
		if err != nil {
			if errors.Is(err, discord.ErrUnknownMember) {
				// Users who left the guild are dropped, not zeroed.
				continue
			}

			xcontext.Logger(ctx).Warnf("Cannot resolve member %s: %v", row.UserID, err)
			continue
		}

		rank++
		entries = append(entries, model.EventLeaderboardEntry{
			Rank:  rank,
			Name:  member.DisplayName,
			Words: row.Words,
		})
		lines = append(lines,
			locale.Text(lang, "event:leaderboard:entry", rank, member.DisplayName, row.Words))
	}

	total, err := d.eventRepo.TotalWords(ctx, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot total words: %v", err)
		return nil, errorx.Unknown
	}

	lines = append(lines, locale.Text(lang, "event:total", total, event.Title))

	return &model.EventLeaderboardResponse{
		Title:   title,
		Total:   total,
		Entries: entries,
		Reply:   statistic.FormatLines(lines, xcontext.Configs(ctx).Discord.MessageCharacterLimit),
	}, nil
}

// OnTask fires scheduled event transitions. Stale tasks succeed silently.
func (d *eventDomain) OnTask(ctx context.Context, t entity.Task) error {
	event, err := d.eventRepo.GetByID(ctx, t.ReferenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}

	defer d.lockGuild(event.GuildID)()

	lang := guildLang(ctx, d.guildRepo, event.GuildID)
	switch t.Action {
	case entity.TaskActionStart:
		if !event.StartedAt.IsZero() {
			return nil
		}

		return d.start(ctx, event, lang)

	case entity.TaskActionEnd:
		if !event.IsRunning() {
			return nil
		}

		return d.end(ctx, event, lang)

	default:
		xcontext.Logger(ctx).Warnf("Unknown event task action %s", t.Action)
		return nil
	}
}
