package main

import (
	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/urfave/cli/v2"
)

func (s *srv) migrate(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadDatabase()
	s.loadContext()

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	s.logger.Infof("Database migration complete")
	return nil
}
