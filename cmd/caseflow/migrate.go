package main

import (
	"database/sql"
	"fmt"

	"caseflow/internal/db/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply database migrations",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "down",
			Usage: "Roll back the most recent migration instead",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer sqlDB.Close()

		if c.Bool("down") {
			if err := migrations.Down(sqlDB); err != nil {
				return err
			}
			logrus.Info("rolled back one migration")
			return nil
		}

		if err := migrations.Up(sqlDB); err != nil {
			return err
		}

		version, dirty, err := migrations.Version(sqlDB)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"version": version,
			"dirty":   dirty,
		}).Info("migrations applied")

		return nil
	},
}
