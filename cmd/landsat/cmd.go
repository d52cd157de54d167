package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/pkg/utils"
	"github.com/landsat-viewer/internal/usecase"
	cli "gopkg.in/urfave/cli.v1"
)

type services struct {
	landsat  *usecase.LandsatUseCase
	location *usecase.LocationUseCase
	report   *usecase.ReportUseCase
}

var locationFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "lat",
		Value: fmt.Sprint(domain.DefaultCoordinate.Lat),
		Usage: "Latitude in decimal degrees",
	},
	cli.StringFlag{
		Name:  "lon",
		Value: fmt.Sprint(domain.DefaultCoordinate.Lon),
		Usage: "Longitude in decimal degrees",
	},
	cli.StringFlag{
		Name:  "place",
		Usage: "Place name to geocode instead of --lat/--lon",
	},
	cli.BoolFlag{
		Name:  "auto-ip",
		Usage: "Locate this machine by its public IP address",
	},
}

func createCliApp(svc *services) (app *cli.App) {
	app = cli.NewApp()
	app.Name = "landsat"
	app.Usage = "Find the latest Landsat overpass for a location and list or email its assets"
	app.Commands = cli.Commands{
		cli.Command{
			Name:    "overpass",
			Aliases: []string{"o"},
			Usage:   "Print the most recent overpass date",
			Flags:   locationFlags,
			Action:  svc.overpassAction,
		},
		cli.Command{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "List imagery assets for the latest overpass or for --date",
			Flags: append(locationFlags,
				cli.StringFlag{Name: "date", Usage: "Day to search (YYYY-MM-DD)"},
				cli.BoolFlag{Name: "csv", Usage: "Print CSV instead of a table"},
			),
			Action: svc.searchAction,
		},
		cli.Command{
			Name:    "report",
			Aliases: []string{"r"},
			Usage:   "Email the asset list for the latest overpass",
			Flags: append(locationFlags,
				cli.StringFlag{Name: "email", Usage: "Recipient address"},
			),
			Action: svc.reportAction,
		},
	}
	return
}

func (svc *services) resolveLocation(ctx context.Context, c *cli.Context) (domain.Coordinate, error) {
	switch {
	case c.String("place") != "":
		loc, err := svc.location.Geocode(ctx, c.String("place"))
		if err != nil {
			return domain.Coordinate{}, err
		}
		return loc.Coordinate, nil
	case c.Bool("auto-ip"):
		loc, err := svc.location.LocateIP(ctx, "")
		if err != nil {
			return domain.Coordinate{}, err
		}
		return loc.Coordinate, nil
	default:
		return utils.ParseCoordinate(c.String("lat"), c.String("lon"))
	}
}

func (svc *services) overpassAction(c *cli.Context) error {
	ctx := context.Background()
	coord, err := svc.resolveLocation(ctx, c)
	if err != nil {
		return err
	}

	overpass, err := svc.landsat.Overpass(ctx, coord)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Location: %s\n", coord)
	fmt.Fprintf(c.App.Writer, "Most Recent Landsat Overpass Date: %s\n", overpass.Message())
	return nil
}

func (svc *services) searchAction(c *cli.Context) error {
	ctx := context.Background()
	coord, err := svc.resolveLocation(ctx, c)
	if err != nil {
		return err
	}

	var assets domain.AssetSet
	if date := c.String("date"); date != "" {
		assets, err = svc.landsat.SearchAssets(ctx, coord, date)
		if err != nil {
			return err
		}
	} else {
		result, err := svc.landsat.Resolve(ctx, coord)
		if err != nil {
			return err
		}
		if !result.Overpass.Available {
			fmt.Fprintln(c.App.Writer, domain.NoRecentDataMessage)
			return nil
		}
		fmt.Fprintf(c.App.Writer, "Most Recent Landsat Overpass Date: %s\n", result.Overpass.Date)
		assets = result.Assets
	}

	if assets.Empty() {
		fmt.Fprintln(c.App.Writer, domain.NoAssetsMessage)
		return nil
	}

	table := domain.NewAssetTable(assets.Records)
	if c.Bool("csv") {
		data, err := table.CSV()
		if err != nil {
			return err
		}
		_, err = c.App.Writer.Write(data)
		return err
	}
	return writeTable(c.App.Writer, table)
}

func (svc *services) reportAction(c *cli.Context) error {
	recipient := c.String("email")
	if recipient == "" {
		return errors.New("--email is required")
	}

	ctx := context.Background()
	coord, err := svc.resolveLocation(ctx, c)
	if err != nil {
		return err
	}

	result, err := svc.landsat.Resolve(ctx, coord)
	if err != nil {
		return err
	}
	if msg := result.Message(); msg != "" {
		return errors.New(msg)
	}

	sent, message := svc.report.Dispatch(ctx, recipient, result.Overpass.Date, result.Table())
	fmt.Fprintln(c.App.Writer, message)
	if !sent {
		return errors.New("report was not sent")
	}
	return nil
}

func writeTable(w io.Writer, table domain.AssetTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", table.Columns[0], table.Columns[1])
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
