package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/config"
	"github.com/sandeepkv93/dayplan/internal/export"
	"github.com/sandeepkv93/dayplan/internal/logging"
	"github.com/sandeepkv93/dayplan/internal/notify"
	"github.com/sandeepkv93/dayplan/internal/planner"
	"github.com/sandeepkv93/dayplan/internal/reminders"
	"github.com/sandeepkv93/dayplan/internal/scheduler"
	"github.com/sandeepkv93/dayplan/internal/storage"
	"github.com/sandeepkv93/dayplan/internal/update"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dayplan failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("dayplan", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, err := storage.OpenSQLite(ctx, cfg.DBPath, log)
	cancel()
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			log.Error("task store unavailable", zap.String("db_path", cfg.DBPath), zap.Error(err))
		}
		return err
	}
	defer func() { _ = repo.Close() }()

	svc := planner.NewService(repo, planner.WithLogger(log))

	if rest := fs.Args(); len(rest) > 0 {
		switch rest[0] {
		case "export":
			return runExport(svc, rest[1:], loc, os.Stdout)
		default:
			return fmt.Errorf("unknown subcommand %q", rest[0])
		}
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	rem := reminders.New(engine, reminders.WithLocation(loc), reminders.WithLogger(log))
	model := update.NewModel(update.Deps{
		Service:              svc,
		Reminders:            rem,
		Events:               engine.C(),
		Notifier:             notify.ExecDesktopNotifier{},
		DesktopNotifications: cfg.DesktopNotifications,
		Location:             loc,
		ToastDuration:        cfg.ToastDuration(),
		Logger:               log,
	})

	log.Info("dayplan started", zap.String("db_path", cfg.DBPath), zap.String("timezone", loc.String()))
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	if dropped := engine.Dropped(); dropped > 0 {
		log.Warn("reminders dropped", zap.Uint64("count", dropped))
	}
	return nil
}

func runExport(svc *planner.Service, args []string, loc *time.Location, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	formatRaw := fs.String("format", "json", "json, yaml or ics")
	outPath := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	format, err := export.ParseFormat(*formatRaw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	tasks, err := svc.All(ctx)
	if err != nil {
		return err
	}

	w := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer f.Close()
		w = f
	}
	return export.Write(w, format, tasks, export.Options{Location: loc})
}
