package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/globeview/globeview/internal/api"
	"github.com/globeview/globeview/internal/feed"
	"github.com/globeview/globeview/internal/ingest"
	"github.com/globeview/globeview/internal/reply"
	"github.com/globeview/globeview/internal/rotation"
	"github.com/globeview/globeview/internal/seed"
	"github.com/globeview/globeview/internal/store"
)

func newServeCmd() *cobra.Command {
	var withRotation bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with the in-process rotation loop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(withRotation)
		},
	}
	cmd.Flags().BoolVar(&withRotation, "rotate", true, "run the rotation loop in-process")
	return cmd
}

func runServe(withRotation bool) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Data.Dir)
	if err != nil {
		return err
	}

	// Every component gets its own rand.Rand: the type is not safe for
	// concurrent use and these run on separate goroutines.
	baseSeed := time.Now().UnixNano()
	newRng := func() *rand.Rand {
		baseSeed++
		return rand.New(rand.NewSource(baseSeed))
	}

	sampler := feed.NewSampler(newRng())
	synth := reply.NewSynthesizer(newRng(), reply.DefaultThinkingDelay)
	threads := reply.NewThreads(synth, logger)
	defer threads.Close()

	srv := api.New(st, sampler, threads, seed.Reports(), newRng(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Surface rewrites made by a separate rotate or import process.
	go func() {
		if err := st.Watch(ctx, logger, nil); err != nil {
			logger.Error("store watch failed", "error", err)
		}
	}()

	if withRotation {
		rot := rotation.New(st,
			time.Duration(cfg.Rotation.MinDelayMS)*time.Millisecond,
			time.Duration(cfg.Rotation.MaxDelayMS)*time.Millisecond,
			newRng(), logger)
		go rot.Start(ctx)
	}

	if cfg.Ingest.Enabled && len(cfg.Ingest.Sources) > 0 {
		ing := ingest.New(st, cfg.Ingest.Sources,
			time.Duration(cfg.Ingest.IntervalSecs)*time.Second, logger)
		go ing.Start(ctx)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "port", cfg.HTTP.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
