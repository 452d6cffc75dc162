package api

import (
	"github.com/cenkalti/backoff/v4"
	"github.com/fleetlens/fleetlens/pkg/alerts"
	"github.com/fleetlens/fleetlens/pkg/dashboard"
	"github.com/fleetlens/fleetlens/pkg/database"
	"github.com/fleetlens/fleetlens/pkg/redis_client"
	"github.com/fleetlens/fleetlens/pkg/upstream"
	"github.com/fleetlens/fleetlens/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Provides the fleet dashboard web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run dashboard api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "group",
						Value: "LINE_17FEET",
						Usage: "default fleet group served by the dashboard",
					},
					&cli.StringFlag{
						Name:  "rules",
						Value: "",
						Usage: "path to an alert rules YAML file",
					},
				},
				Action: func(c *cli.Context) error {
					// Infra connects retry so the service doesn't flap when
					// it races redis/mongo at boot. Data-path fetches are
					// never retried.
					if err := backoff.Retry(database.Connect, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)); err != nil {
						return err
					}
					if err := backoff.Retry(redis_client.Connect, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)); err != nil {
						return err
					}

					client := upstream.NewClient("")

					documentCache := &upstream.DocumentCache{Client: client}
					documentCache.Setup()

					builder := &dashboard.Builder{
						Upstream:  client,
						Documents: documentCache,
					}

					rulesPath := c.String("rules")
					if rulesPath == "" {
						rulesPath = util.GetEnvironmentVariable("FLEETLENS_ALERT_RULES", "")
					}

					rules, err := alerts.LoadRules(rulesPath)
					if err != nil {
						return err
					}

					publisher := &alerts.Publisher{Rules: rules}
					if err := publisher.Setup(); err != nil {
						return err
					}

					return SetupServer(c.String("listen"), Dependencies{
						Builder:      builder,
						Upstream:     client,
						Alerts:       publisher,
						DefaultGroup: c.String("group"),
					})
				},
			},
		},
	}
}
