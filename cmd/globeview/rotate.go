package main

import (
	"context"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/globeview/globeview/internal/rotation"
	"github.com/globeview/globeview/internal/store"
)

func newRotateCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Run the feed rotation loop as a standalone process",
		Long: `Continuously archives the oldest active update and promotes the
oldest archived update with a fresh timestamp, keeping the live set
constant. Runs until interrupted. Note this process and a serving
process are uncoordinated writers against the same files.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRotate(once)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "rotate a single update and exit")
	return cmd
}

func runRotate(once bool) error {
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
	rot := rotation.New(st,
		time.Duration(cfg.Rotation.MinDelayMS)*time.Millisecond,
		time.Duration(cfg.Rotation.MaxDelayMS)*time.Millisecond,
		rng, logger)

	if once {
		return rot.RotateOnce(time.Now())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rot.Start(ctx)
	return nil
}
