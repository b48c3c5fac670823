package api

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/abfahrt/abfahrt/pkg/dashboard"
	"github.com/abfahrt/abfahrt/pkg/favourites"
	"github.com/abfahrt/abfahrt/pkg/mvg"
	"github.com/abfahrt/abfahrt/pkg/redis_client"
	"github.com/abfahrt/abfahrt/pkg/stations"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the dashboard web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: mvg.DefaultDepartureLimit,
						Usage: "departures fetched per station",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					client := mvg.NewClient()

					directory := stations.NewDirectory(client)
					directory.UseCache(redis_client.Client)

					store := favourites.NewStore(&favourites.RedisKV{
						Client: redis_client.Client,
					})

					controller := dashboard.NewController(client, c.Int("limit"))
					controller.SetStations(context.Background(), store.List(context.Background()))

					return SetupServer(c.String("listen"), Dependencies{
						Directory:  directory,
						Favourites: store,
						Dashboard:  controller,
						MVG:        client,
					})
				},
			},
		},
	}
}
