package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inventory_manager/config"
	"inventory_manager/httpapi"
	"inventory_manager/logger"
	"inventory_manager/scheduler"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Named(baseLogger, "serve")
			addr := appConfig.HTTP.Addr
			schedule := appConfig.Report.Schedule

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if schedule != "" {
				sched := scheduler.NewScheduler(schedule, inventorySvc, logger.Named(baseLogger, "scheduler"))
				if err := sched.Start(); err != nil {
					return err
				}
				defer sched.Stop()
			} else {
				log.Debug("report schedule disabled")
			}

			handler := httpapi.NewHandler(inventorySvc, logger.Named(baseLogger, "handlers"))
			engine := httpapi.NewRouter(handler, logger.Named(baseLogger, "router"))
			if err := httpapi.Serve(ctx, addr, engine, log); err != nil {
				log.Error("http server failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	serveCmd.Flags().String(config.KeyHTTPAddr, ":8080", "listen address")
	serveCmd.Flags().String(config.KeyReportSchedule, "", "cron schedule for the periodic summary report (empty disables)")
	_ = v.BindPFlag(config.KeyHTTPAddr, serveCmd.Flags().Lookup(config.KeyHTTPAddr))
	_ = v.BindPFlag(config.KeyReportSchedule, serveCmd.Flags().Lookup(config.KeyReportSchedule))
	rootCmd.AddCommand(serveCmd)
}
