package commands

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"gitirc/internal/config"
	"gitirc/internal/storage"
)

func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the config file and notification database",
		Action: func(c *cli.Context) error {
			if err := config.InitConfig(); err != nil {
				return err
			}

			dataDir, err := config.DataDir()
			if err != nil {
				return err
			}

			dbPath := filepath.Join(dataDir, "notifications.db")
			if err := storage.InitDB(dbPath); err != nil {
				return err
			}

			fmt.Println("\nInitialization complete. Start the daemon with: gitirc serve")
			return nil
		},
	}
}
