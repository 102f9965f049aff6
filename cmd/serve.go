package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/shelld/internal/activitylog"
	"github.com/nextlevelbuilder/shelld/internal/config"
	"github.com/nextlevelbuilder/shelld/internal/monitor"
	"github.com/nextlevelbuilder/shelld/internal/scheduler"
	"github.com/nextlevelbuilder/shelld/internal/server"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduler, pipeline executor, and client listener",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "shelld.json5", "path to a JSON5 config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	setupLogging()

	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	cfg := watcher.Current()

	dash := monitor.New()
	log := activitylog.New(io.MultiWriter(os.Stdout, dash))
	sched := scheduler.New(log, watcher.Current)
	srv := server.New(sched, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go watcher.Run(ctx)
	go sched.Run(ctx)
	go func() {
		if err := dash.Serve(ctx, cfg.MonitorAddr); err != nil {
			slog.Error("serve: monitor dashboard failed", "error", err)
		}
	}()

	slog.Info("shelld: listening", "addr", cfg.ListenAddr, "monitor_addr", cfg.MonitorAddr,
		"config", configPath)
	return srv.Start(ctx, cfg.ListenAddr)
}
