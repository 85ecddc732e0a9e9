package main

import (
	"fmt"
	"net/http"

	"github.com/inkwell-gg/backend/internal/middleware"
	"github.com/inkwell-gg/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadDatabase()
	s.loadContext()
	s.loadRedis()
	s.loadPublisher()
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting api server on port %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.VerifySignature)

	// Every command is issued by a chat user.
	userRouter := s.router.Branch()
	userRouter.Before(middleware.WithUserID)
	{
		// Sprint API
		router.POST(userRouter, "/createSprint", s.sprintDomain.Create)
		router.POST(userRouter, "/joinSprint", s.sprintDomain.Join)
		router.POST(userRouter, "/leaveSprint", s.sprintDomain.Leave)
		router.POST(userRouter, "/cancelSprint", s.sprintDomain.Cancel)
		router.POST(userRouter, "/endSprint", s.sprintDomain.End)
		router.POST(userRouter, "/declareWordcount", s.sprintDomain.Declare)
		router.GET(userRouter, "/getSprintStatus", s.sprintDomain.Status)
		router.GET(userRouter, "/getSprintTime", s.sprintDomain.TimeLeft)
		router.GET(userRouter, "/getPersonalBest", s.sprintDomain.PersonalBest)
		router.POST(userRouter, "/notifySprint", s.sprintDomain.Notify)
		router.POST(userRouter, "/purgeNotifications", s.sprintDomain.PurgeNotifications)
		router.POST(userRouter, "/setSprintProject", s.sprintDomain.SetProject)

		// Event API
		router.POST(userRouter, "/createEvent", s.eventDomain.Create)
		router.POST(userRouter, "/scheduleEvent", s.eventDomain.Schedule)
		router.POST(userRouter, "/startEvent", s.eventDomain.Start)
		router.POST(userRouter, "/endEvent", s.eventDomain.End)
		router.POST(userRouter, "/deleteEvent", s.eventDomain.Delete)
		router.POST(userRouter, "/updateEvent", s.eventDomain.UpdateInfo)
		router.POST(userRouter, "/addEventWords", s.eventDomain.AddWords)
		router.POST(userRouter, "/setEventWords", s.eventDomain.SetWords)
		router.GET(userRouter, "/getMyEventWords", s.eventDomain.MyWords)
		router.GET(userRouter, "/getEventLeaderboard", s.eventDomain.Leaderboard)

		// Challenge API
		router.POST(userRouter, "/createChallenge", s.challengeDomain.Create)
		router.GET(userRouter, "/getChallenge", s.challengeDomain.Current)
		router.POST(userRouter, "/completeChallenge", s.challengeDomain.Complete)
		router.POST(userRouter, "/cancelChallenge", s.challengeDomain.Cancel)

		// Project API
		router.POST(userRouter, "/createProject", s.projectDomain.Create)
		router.GET(userRouter, "/getMyProjects", s.projectDomain.List)
		router.POST(userRouter, "/renameProject", s.projectDomain.Rename)
		router.POST(userRouter, "/completeProject", s.projectDomain.Complete)
		router.POST(userRouter, "/deleteProject", s.projectDomain.Delete)

		// Settings API
		router.POST(userRouter, "/updateSetting", s.userDomain.UpdateSetting)
		router.GET(userRouter, "/getMyStats", s.userDomain.GetStats)
		router.POST(userRouter, "/toggleCommand", s.guildDomain.ToggleCommand)
		router.POST(userRouter, "/setGuildLanguage", s.guildDomain.SetLanguage)
	}
}
