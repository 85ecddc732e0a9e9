package main

import (
	"github.com/inkwell-gg/backend/internal/domain/task"
	"github.com/urfave/cli/v2"
)

func (s *srv) startRunner(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadDatabase()
	s.loadContext()
	s.loadRedis()
	s.loadPublisher()
	s.loadEndpoint()
	s.loadRepos()
	s.loadDomains()

	runner := task.NewRunner(s.taskScheduler, s.configs.Runner.PollInterval)
	runner.Start(s.ctx)
	return nil
}
