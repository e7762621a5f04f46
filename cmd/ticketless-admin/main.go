package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "ticketless-admin",
		Usage: "Admin moderation service for permit documents and property tax bills",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			nanoidCommand,
			passwordHashCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
