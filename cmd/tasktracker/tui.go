package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/internal/config"
	"task-tracker/internal/service"
	"task-tracker/internal/store"
	"task-tracker/internal/timezone"
	"task-tracker/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
}

// buildServices wires the session the way every mode needs it: config,
// resolved zone, store client, controller, reminder view.
func buildServices() (*service.Controller, *service.ReminderService, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("config: %w", err)
	}

	zone := timezone.Resolve(cfg.DefaultTimezone)
	client := store.New(cfg.APIURL, cfg.HTTPTimeout)
	ctrl := service.NewController(client, zone)
	reminders := service.NewReminderService(zone)

	return ctrl, reminders, cfg, nil
}

func runTUI() error {
	ctrl, reminders, _, err := buildServices()
	if err != nil {
		return err
	}
	return tui.Run(ctrl, reminders)
}
