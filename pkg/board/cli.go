package board

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"

	"github.com/abfahrt/abfahrt/pkg/mvg"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Departure board tools",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the departure board for a station",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "station",
						Usage:    "global station identifier (eg. de:09162:2)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: mvg.DefaultDepartureLimit,
						Usage: "maximum number of departures",
					},
					&cli.BoolFlag{
						Name:  "absolute",
						Usage: "show clock times instead of minutes until departure",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "dump the raw operator records",
					},
				},
				Action: func(c *cli.Context) error {
					client := mvg.NewClient()

					departures, err := client.GetDepartures(c.Context, c.String("station"), c.Int("limit"))
					if err != nil {
						return err
					}

					if c.Bool("debug") {
						pretty.Println(departures)
					}

					display := TimeDisplayRelative
					if c.Bool("absolute") {
						display = TimeDisplayAbsolute
					}

					rendered := RenderRows(BuildRows(departures), display, time.Now())

					if len(rendered) == 0 {
						fmt.Println("No departures available")
						return nil
					}

					writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
					fmt.Fprintln(writer, "LINE\tDESTINATION\tDEPARTURE")
					for _, row := range rendered {
						fmt.Fprintf(writer, "%s\t%s\t%s\n", row.Line, row.Destination, row.Time)
					}

					return writer.Flush()
				},
			},
		},
	}
}
