package main

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/globeview/globeview/internal/seed"
	"github.com/globeview/globeview/internal/store"
)

func newSeedCmd() *cobra.Command {
	var (
		count         int
		webhookSecret string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate randomized demo updates and a demo webhook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(count, webhookSecret)
		},
	}
	cmd.Flags().IntVar(&count, "count", 60, "number of updates to generate")
	cmd.Flags().StringVar(&webhookSecret, "webhook-secret", "", "register a demo webhook with this secret")
	return cmd
}

func runSeed(count int, webhookSecret string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Data.Dir)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created, err := seed.Updates(st, count, rng)
	if err != nil {
		return err
	}
	logger.Info("updates seeded", "count", created)

	if webhookSecret != "" {
		hook, err := seed.Webhook(st, webhookSecret)
		if err != nil {
			return err
		}
		logger.Info("demo webhook registered", "id", hook.ID, "name", hook.Name)
	}

	return nil
}
