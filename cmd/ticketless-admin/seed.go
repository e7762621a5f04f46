package main

import (
	"context"
	"fmt"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/db"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/seed"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with sample moderation data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		logger := logrus.New()
		if err := db.Migrate(cfg, logger); err != nil {
			return err
		}

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		logrus.Info("Seeding permit documents...")
		if err := seed.SeedPermitDocuments(ctx, store.NewPermitDocumentRepository(pool)); err != nil {
			return fmt.Errorf("failed to seed permit documents: %w", err)
		}

		logrus.Info("Seeding residency proofs...")
		if err := seed.SeedResidencyProofs(ctx, store.NewResidencyProofRepository(pool)); err != nil {
			return fmt.Errorf("failed to seed residency proofs: %w", err)
		}

		logrus.Info("Seeding property tax queue...")
		if err := seed.SeedTaxQueue(ctx, store.NewPropertyTaxQueueRepository(pool)); err != nil {
			return fmt.Errorf("failed to seed property tax queue: %w", err)
		}

		logrus.Info("Seed data loaded")

		return nil
	},
}
