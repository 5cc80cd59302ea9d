package commands

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"gitirc/internal/config"
	"gitirc/internal/deliver"
	"gitirc/internal/logger"
	"gitirc/internal/queue"
)

func FlushCommand() *cli.Command {
	return &cli.Command{
		Name:  "flush",
		Usage: "Resend spooled notifications that failed delivery",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			queueDir, err := config.QueueDir()
			if err != nil {
				return err
			}
			spool, err := queue.New(queueDir)
			if err != nil {
				return err
			}

			count, err := spool.Count()
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Println("Spool is empty")
				return nil
			}

			log := logger.Default()
			router := deliver.NewRouter(cfg.Routing.DefaultChannels, cfg.Routing.Repos)
			dispatcher := deliver.NewDispatcher(deliver.NewWriterSender(os.Stdout), router, spool, log.Logger)

			if err := dispatcher.Flush(); err != nil {
				return err
			}

			fmt.Printf("Flushed %d notification(s)\n", count)
			return nil
		},
	}
}
