// Command nexus-server serves the site API and streams the animated
// background network over websockets.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/A5-Website/atom-5-nexus/config"
	"github.com/A5-Website/atom-5-nexus/contact"
	"github.com/A5-Website/atom-5-nexus/logging"
	"github.com/A5-Website/atom-5-nexus/metrics"
	"github.com/A5-Website/atom-5-nexus/scene"
	"github.com/A5-Website/atom-5-nexus/site"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	logger := logging.New()
	if err := run(*configPath, logger); err != nil {
		logger.Error("server failed", logging.Err(err))
		os.Exit(1)
	}
}

func run(configPath string, logger *logging.JSONLogger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel())

	reg := metrics.NewRegistry()
	sc, err := scene.Build(cfg.SceneParams())
	if err != nil {
		return err
	}
	driver, err := scene.NewDriver(sc, cfg.DriverOptions(logger, reg)...)
	if err != nil {
		return err
	}
	relay := contact.NewRelay(contact.LogMailer{Log: logger}, cfg.ContactOptions(logger)...)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: site.NewServer(driver, relay,
			site.WithLogger(logger),
			site.WithMetrics(reg),
			site.WithAllowOrigin(cfg.Server.AllowOrigin)).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driverDone := make(chan error, 1)
	go func() { driverDone <- driver.Run(ctx) }()
	go func() {
		auto := scene.NewSpontaneous(driver, cfg.Spontaneous.Interval, cfg.Scene.Seed+4, logger)
		if err := auto.Run(ctx); err != nil {
			logger.Warn("spontaneous triggers stopped", logging.Err(err))
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", logging.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			stop()
			<-driverDone
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	// Stopping the driver first closes frame streams so Shutdown can finish.
	stop()
	<-driverDone
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
