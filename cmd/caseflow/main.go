package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env for local development; the real environment wins.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "caseflow",
		Usage: "Case records and file attachment services",
		Commands: []*cli.Command{
			serveFileCommand,
			serveCaseCommand,
			migrateCommand,
			seedCommand,
			configCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
