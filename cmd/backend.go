package cmd

import (
	"context"
	"errors"
	"fmt"

	awsclient "tasnim.dev/cloud-console/internal/aws"
	"tasnim.dev/cloud-console/internal/config"
	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/store/sqlite"
)

// openRepository builds the configured backend. A sqlite database is seeded
// with the built-in fixtures only the first time it is opened.
func (a *app) openRepository(ctx context.Context) (store.Repository, error) {
	opts := []store.Option{store.WithLatency(a.cfg.Latency()), store.WithLogger(a.logger)}

	switch a.cfg.BackendOrDefault() {
	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, a.cfg.DatabasePath(), opts...)
		if err != nil {
			return nil, err
		}
		if err := seedFixtures(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil

	case config.BackendEC2:
		profile, region := a.cfg.Merge("", "")
		repo, acct, err := awsclient.NewRepository(ctx, profile, region, a.logger)
		if err != nil {
			return nil, fmt.Errorf("initializing AWS client: %w", err)
		}
		a.logger.Debug("ec2 backend", "account", acct.ID, "region", acct.Region)
		return repo, nil
	}

	return store.NewSeededStore(opts...)
}

func seedFixtures(ctx context.Context, db *sqlite.Store) error {
	fx, err := store.LoadFixtures()
	if err != nil {
		return err
	}
	err = db.Import(ctx, fx)
	switch {
	case err == nil, errors.Is(err, sqlite.ErrSeeded), errors.Is(err, sqlite.ErrNotEmpty):
		return nil
	}
	return fmt.Errorf("seeding database: %w", err)
}
