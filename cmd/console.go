package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tasnim.dev/cloud-console/internal/tui/console"
)

func newConsoleCmd(a *app) *cobra.Command {
	var open string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Long: `Open the interactive console. --open starts on a page, for example
/networking/vpc/vpc-1 or /storage/volumes/create.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo, err := a.openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			deps := console.Deps{
				Repo:            repo,
				UserType:        a.userType,
				Backend:         a.cfg.BackendOrDefault(),
				PageSize:        a.cfg.PageSizeOrDefault(),
				RefreshInterval: a.cfg.RefreshInterval(),
			}
			stack, err := console.Resolve(ctx, deps, open)
			if err != nil {
				return err
			}

			a.logger.Info("console started", "backend", deps.Backend, "user_type", deps.UserType, "open", open)
			p := tea.NewProgram(console.NewModel(deps, stack...), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running console: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&open, "open", "/", "page to open, e.g. /networking/subnets")

	return cmd
}
