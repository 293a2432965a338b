package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caseflow/internal/blobstore"
	"caseflow/internal/caseclient"
	"caseflow/internal/db"
	"caseflow/internal/fileservice"
	"caseflow/internal/server"
	"caseflow/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveFileCommand = &cli.Command{
	Name:   "serve-file",
	Usage:  "Start the file attachment HTTP service",
	Action: serveFile,
}

func serveFile(cCtx *cli.Context) error {
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

	docRepo := store.NewDocRepository(pool)
	metadataRepo := store.NewFileMetadataRepository(pool)

	var blobs blobstore.Store
	switch config.StorageBackend {
	case "s3":
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}
		blobs = blobstore.NewS3(docRepo, s3.NewFromConfig(awsConfig), config.S3BucketName, logger)
	default:
		blobs = blobstore.NewPostgres(docRepo)
	}

	caseClient := caseclient.New(config.CaseServiceBaseURL, time.Duration(config.CaseClientTimeoutSec)*time.Second)
	oracle := caseclient.NewExistenceOracle(caseClient, logger)

	files := fileservice.New(metadataRepo, blobs, oracle, logger)

	srv := server.NewFileServer(config, logger, files)

	go func() {
		logger.WithField("port", config.ServerPort).Infof("file service starting http://localhost:%d", config.ServerPort)
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
