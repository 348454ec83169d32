package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tasnim.dev/cloud-console/internal/config"
	"tasnim.dev/cloud-console/internal/logging"
	"tasnim.dev/cloud-console/internal/userdata"
)

// app is the state every subcommand shares once the root pre-run resolved
// config, logging and the user type.
type app struct {
	configPath string
	v          *viper.Viper

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
	userType userdata.UserType
}

func NewRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "cloud-console",
		Short:         "Browse and manage VPCs, subnets, security groups, static IPs and storage",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.String("backend", "", "storage backend: memory, sqlite or ec2")
	flags.String("database", "", "sqlite database path")
	flags.String("user-type", "", "simulated account state: new, existing or regular")
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region to use")

	for key, name := range map[string]string{
		"backend":         "backend",
		"database":        "database",
		"user_type":       "user-type",
		"default_profile": "profile",
		"default_region":  "region",
	} {
		// Lookup cannot fail for flags registered above.
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newConsoleCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newSeedCmd(a),
		newUserTypeCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Overlay(a.v)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, closeLog, err := logging.Init(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog

	a.userType, err = a.resolveUserType()
	return err
}

// resolveUserType prefers --user-type or CLOUD_CONSOLE_USER_TYPE over the
// user data file.
func (a *app) resolveUserType() (userdata.UserType, error) {
	if a.v.IsSet("user_type") {
		s := a.v.GetString("user_type")
		if !userdata.Valid(s) {
			return "", fmt.Errorf("invalid user type %q (want new, existing or regular)", s)
		}
		return userdata.UserType(s), nil
	}
	ud, err := userdata.Load(a.cfg.UserDataPath())
	if err != nil {
		a.logger.Warn("user data unreadable, using regular user", "path", a.cfg.UserDataPath(), "err", err)
	}
	return ud.UserType, nil
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}
