package main

import (
	"context"
	"fmt"

	"caseflow/internal/db"
	"caseflow/internal/seed"
	"caseflow/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the country reference table",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		countryRepo := store.NewCountryRepository(pool)

		logrus.Info("Seeding countries...")
		if err := seed.SeedCountries(ctx, countryRepo); err != nil {
			return fmt.Errorf("failed to seed countries: %w", err)
		}

		logrus.Info("Countries seeded successfully")

		return nil
	},
}
