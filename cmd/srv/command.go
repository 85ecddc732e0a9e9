package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Inkwell"
	app.Usage = "Writing community backend"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path of the toml config file",
			Value: "config.toml",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api server",
			Category:    "Api",
			Description: `Serves the command endpoints the chat gateway calls.`,
		},
		{
			Action:      server.startRunner,
			Name:        "runner",
			Usage:       "Start the task runner",
			Category:    "Worker",
			Description: `Polls and fires scheduled sprint and event transitions. Run exactly one instance.`,
		},
		{
			Action:      server.startNotifier,
			Name:        "notifier",
			Usage:       "Start the announcement deliverer",
			Category:    "Worker",
			Description: `Consumes queued announcements and posts them to their channels.`,
		},
		{
			Action:      server.migrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Category:    "Database",
			Description: `Creates or updates the database schema.`,
		},
	}

	s.app = app
}
