package main

import (
	"context"
	"net/http"

	"github.com/inkwell-gg/backend/config"
	"github.com/inkwell-gg/backend/internal/domain"
	"github.com/inkwell-gg/backend/internal/domain/statistic"
	"github.com/inkwell-gg/backend/internal/domain/task"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/api/discord"
	"github.com/inkwell-gg/backend/pkg/kafka"
	"github.com/inkwell-gg/backend/pkg/logger"
	"github.com/inkwell-gg/backend/pkg/pubsub"
	"github.com/inkwell-gg/backend/pkg/router"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"github.com/inkwell-gg/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient     xredis.Client
	publisher       pubsub.Publisher
	discordEndpoint discord.IEndpoint

	sprintRepo    repository.SprintRepository
	taskRepo      repository.TaskRepository
	eventRepo     repository.EventRepository
	userRepo      repository.UserRepository
	guildRepo     repository.GuildRepository
	projectRepo   repository.ProjectRepository
	challengeRepo repository.ChallengeRepository

	taskScheduler    *task.Scheduler
	eventLeaderboard *statistic.EventLeaderboard

	sprintDomain    domain.SprintDomain
	eventDomain     domain.EventDomain
	challengeDomain domain.ChallengeDomain
	projectDomain   domain.ProjectDomain
	userDomain      domain.UserDomain
	guildDomain     domain.GuildDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(ct *cli.Context) {
	var err error
	s.configs, err = config.Load(ct.String("config"))
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

// loadContext assembles the base context every request and worker derives
// from. Call after config, logger, and database are loaded.
func (s *srv) loadContext() {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	s.ctx = ctx
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher("backend", []string{s.configs.Kafka.Addr})
}

func (s *srv) loadEndpoint() {
	s.discordEndpoint = discord.New(s.configs.Discord)
}

func (s *srv) loadRepos() {
	s.sprintRepo = repository.NewSprintRepository()
	s.taskRepo = repository.NewTaskRepository()
	s.eventRepo = repository.NewEventRepository()
	s.userRepo = repository.NewUserRepository()
	s.guildRepo = repository.NewGuildRepository()
	s.projectRepo = repository.NewProjectRepository()
	s.challengeRepo = repository.NewChallengeRepository()
}

func (s *srv) loadDomains() {
	s.taskScheduler = task.NewScheduler(s.taskRepo)
	s.eventLeaderboard = statistic.NewEventLeaderboard(s.eventRepo, s.redisClient)

	s.sprintDomain = domain.NewSprintDomain(
		s.sprintRepo,
		s.userRepo,
		s.guildRepo,
		s.projectRepo,
		s.taskScheduler,
		s.discordEndpoint,
		s.publisher,
	)
	s.eventDomain = domain.NewEventDomain(
		s.eventRepo,
		s.userRepo,
		s.guildRepo,
		s.taskScheduler,
		s.eventLeaderboard,
		s.discordEndpoint,
		s.publisher,
	)
	s.challengeDomain = domain.NewChallengeDomain(s.challengeRepo, s.userRepo, s.guildRepo)
	s.projectDomain = domain.NewProjectDomain(s.projectRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.guildRepo)
	s.guildDomain = domain.NewGuildDomain(s.guildRepo)
}
