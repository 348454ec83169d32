// Package aws connects the console to a real account through the EC2 API.
package aws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsec2 "tasnim.dev/cloud-console/internal/aws/ec2"
)

// ErrNoRegion means neither the flags nor the shared config named a region.
var ErrNoRegion = errors.New("no AWS region configured (use --region or default_region)")

// Account describes who the console is talking to.
type Account struct {
	ID      string
	Region  string
	Profile string
}

// NewRepository builds the read-only EC2 backend for the profile and region.
func NewRepository(ctx context.Context, profile, region string, logger *slog.Logger) (*awsec2.Repository, Account, error) {
	cfg, err := loadConfig(ctx, profile, region)
	if err != nil {
		return nil, Account{}, err
	}

	acct := Account{ID: accountID(ctx, cfg, logger), Region: cfg.Region, Profile: profile}
	logger.Info("aws backend ready", "account", acct.ID, "region", acct.Region, "profile", profile)
	return awsec2.NewRepository(ec2.NewFromConfig(cfg), cfg.Region, logger), acct, nil
}

func loadConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	if cfg.Region == "" {
		return aws.Config{}, ErrNoRegion
	}
	return cfg, nil
}

// accountID is best effort; the header shows an empty account on failure.
func accountID(ctx context.Context, cfg aws.Config, logger *slog.Logger) string {
	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		logger.Warn("caller identity unavailable", "err", err)
		return ""
	}
	return aws.ToString(out.Account)
}
