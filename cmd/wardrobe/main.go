package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"wardrobe101/pkg/logger"
)

func main() {
	logger.SetOutput(os.Stderr)

	app := &cli.App{
		Name:  "wardrobe",
		Usage: "buy, rent and list luxury fashion on the wardrobe101 marketplace",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "marketplace API base URL (overrides MARKETPLACE_URL)",
				EnvVars: []string{"WARDROBE_API"},
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			signupCommand(),
			whoamiCommand(),
			browseCommand(),
			showCommand(),
			myListingsCommand(),
			sellCommand(),
			checkoutCommand(),
			ordersCommand(),
			chatCommand(),
			themeCommand(),
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err != nil {
				fmt.Fprintln(os.Stderr, describeError(err))
				os.Exit(1)
			}
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
