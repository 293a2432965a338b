package main

import (
	"context"
	"fmt"

	"caseflow/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/k0kubun/pp/v3"
	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v2"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.StorageBackend != "postgres" && c.StorageBackend != "s3" {
		return nil, fmt.Errorf("STORAGE_BACKEND must be postgres or s3, got %q", c.StorageBackend)
	}

	if c.StorageBackend == "s3" && c.S3BucketName == "" {
		return nil, fmt.Errorf("set S3_BUCKET_NAME when STORAGE_BACKEND is s3")
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return cfg, nil
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Print the effective configuration",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cfg.SMTPPassword = "" // never print credentials
		pp.Println(cfg)
		return nil
	},
}
