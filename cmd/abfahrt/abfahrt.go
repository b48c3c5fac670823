package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/abfahrt/abfahrt/pkg/api"
	"github.com/abfahrt/abfahrt/pkg/board"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("ABFAHRT_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("ABFAHRT_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "abfahrt",
		Description: "MVG departure dashboard - station search, favourites and departure boards",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			board.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
