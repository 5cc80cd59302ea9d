package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"gitirc/internal/config"
	"gitirc/internal/deliver"
	"gitirc/internal/logger"
	"gitirc/internal/queue"
	"gitirc/internal/server"
	"gitirc/internal/shorten"
	"gitirc/internal/storage"
)

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the webhook receiver daemon",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "no-store",
				Usage: "Do not log notifications to the database",
			},
		},
		Action: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("debug") {
				level = slog.LevelDebug
			}
			return Serve(level, !c.Bool("no-store"))
		},
	}
}

// Serve wires the daemon together and blocks until interrupted. Lines are
// written to stdout as "<channel> <line>"; an external chat client pipes
// them onto the network.
func Serve(level slog.Level, withStore bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}

	log, err := logger.NewFileLogger(dataDir, level)
	if err != nil {
		return err
	}
	defer log.Close()

	var store *storage.Storage
	if withStore {
		store, err = storage.New(filepath.Join(dataDir, "notifications.db"))
		if err != nil {
			return err
		}
		defer store.Close()
	}

	queueDir, err := config.QueueDir()
	if err != nil {
		return err
	}
	spool, err := queue.New(queueDir)
	if err != nil {
		return err
	}

	router := deliver.NewRouter(cfg.Routing.DefaultChannels, cfg.Routing.Repos)
	sender := deliver.NewWriterSender(os.Stdout)
	dispatcher := deliver.NewDispatcher(sender, router, spool, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	watcher, err := config.NewWatcher(configPath, func(next *config.Config) {
		router.Update(next.Routing.DefaultChannels, next.Routing.Repos)
	}, log.Logger)
	if err != nil {
		return err
	}
	go watcher.Start(ctx)

	srv := server.New(server.Config{
		Port:          cfg.HTTP.Port,
		WebhookSecret: cfg.HTTP.WebhookSecret,
	}, shorten.New(cfg.Shortener.Endpoint), dispatcher, store, log.Logger)

	return srv.Run(ctx)
}
