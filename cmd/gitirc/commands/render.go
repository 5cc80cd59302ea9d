package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"gitirc/internal/config"
	"gitirc/internal/format"
	"gitirc/internal/shorten"
)

func RenderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Format a webhook payload from a file (or stdin) and print the lines",
		ArgsUsage: "[payload.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "kind",
				Aliases:  []string{"k"},
				Usage:    "Event kind (e.g. push, pull_request_review_comment)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "shorten",
				Usage: "Use the configured URL shortener",
			},
		},
		Action: func(c *cli.Context) error {
			var data []byte
			var err error
			if c.NArg() > 0 {
				data, err = os.ReadFile(c.Args().First())
			} else {
				data, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			var payload map[string]interface{}
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("decode payload: %w", err)
			}

			var shortener *shorten.Client
			if c.Bool("shorten") {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				shortener = shorten.New(cfg.Shortener.Endpoint)
			}

			lines, err := format.Render(c.String("kind"), payload, shortener)
			if errors.Is(err, format.ErrUnsupportedKind) {
				fmt.Fprintf(os.Stderr, "No formatter for kind %q. Supported kinds: %v\n",
					c.String("kind"), format.Kinds())
				return nil
			}
			if err != nil {
				return err
			}

			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}
}
