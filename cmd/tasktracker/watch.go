package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"task-tracker/internal/service"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Periodically refresh tasks and print the due-soon report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}
}

func runWatch() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl, reminders, cfg, err := buildServices()
	if err != nil {
		return err
	}

	report := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := ctrl.Refresh(jobCtx); err != nil {
			// Stale-but-available: keep reporting on the last good
			// collection until a refresh succeeds again.
			log.Printf("[warn] %v", err)
		}
		log.Printf("[info] %s", reminders.Summary(ctrl.Tasks(), time.Now()))
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, report); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("[info] watching tasks every %s (zone %s)", cfg.ReminderInterval, ctrl.Zone())
	report()

	<-ctx.Done()
	log.Println("[info] shutdown complete")
	return nil
}
