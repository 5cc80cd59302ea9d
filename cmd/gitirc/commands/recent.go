package commands

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"gitirc/internal/config"
	"gitirc/internal/storage"
)

func RecentCommand() *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "Show recently relayed notifications",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "number",
				Aliases: []string{"n"},
				Usage:   "Number of notifications to display",
				Value:   10,
			},
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Filter by event kind",
			},
		},
		Action: func(c *cli.Context) error {
			dataDir, err := config.DataDir()
			if err != nil {
				return err
			}

			store, err := storage.New(filepath.Join(dataDir, "notifications.db"))
			if err != nil {
				return err
			}
			defer store.Close()

			notifications, err := store.Recent(c.Int("number"), c.String("kind"))
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Println("No notifications yet")
				return nil
			}

			for _, n := range notifications {
				fmt.Printf("%s  %-28s %s\n", n.ReceivedAt, n.Kind, n.Repo)
				for _, line := range n.Lines {
					fmt.Printf("    %s\n", line)
				}
			}
			return nil
		},
	}
}
