package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caseflow/internal/caseservice"
	"caseflow/internal/db"
	"caseflow/internal/notify"
	"caseflow/internal/server"
	"caseflow/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCaseCommand = &cli.Command{
	Name:   "serve-case",
	Usage:  "Start the case record HTTP service",
	Action: serveCase,
}

func serveCase(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	caseRepo := store.NewCaseRepository(pool)
	countryRepo := store.NewCountryRepository(pool)

	var notifier notify.Notifier
	if config.SMTPHost != "" {
		notifier = notify.NewSMTPNotifier(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.NotifyFromAddress,
			config.NotifyToAddress,
		)
	} else {
		logger.Warn("SMTP_HOST not set, case notifications go to the log")
		notifier = notify.NewLogNotifier(logger)
	}

	cases := caseservice.New(caseRepo, countryRepo, notifier, logger)

	srv := server.NewCaseServer(config, logger, cases)

	go func() {
		logger.WithField("port", config.ServerPort).Infof("case service starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
