package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/yaghiashraf/pet-alert/internal/components"
	"github.com/yaghiashraf/pet-alert/internal/config"
)

func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := components.SetupLogger(cfg.Env)

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	comps, err := components.InitComponents(appCtx, cfg, logger)
	if err != nil {
		logger.Error("could not init components", "err", err)
		return err
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := comps.HttpServer.Run(gctx)
		logger.Info("http server stopped")
		return err
	})

	if comps.NotifySender != nil {
		g.Go(func() error {
			comps.NotifySender.Run(gctx)
			return nil
		})
	}

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quitChan:
		logger.Info("captured signal, initiating shutdown", "signal", sig.String())
	case <-gctx.Done():
		logger.Error("component failed, initiating shutdown")
	}

	stop()
	if err := g.Wait(); err != nil {
		logger.Error("run group error", "err", err)
	}

	logger.Info("shutting down the services...")
	comps.ShutdownAll()
	logger.Info("gracefully shutting down the servers")

	return nil
}
