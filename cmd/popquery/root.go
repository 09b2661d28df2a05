package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/geocommerce/geopop/internal/adapters/gdalraster"
	"github.com/geocommerce/geopop/internal/core/ports"
	"github.com/geocommerce/geopop/internal/core/usecases"
	"github.com/geocommerce/geopop/internal/pkg/logging"
)

type rootOptions struct {
	raster   string
	band     int
	logLevel string

	newSource func(path string) ports.RasterSource
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(func(path string) ports.RasterSource {
		return gdalraster.NewSource(path)
	})
}

func buildRootCmd(newSource func(path string) ports.RasterSource) *cobra.Command {
	opts := &rootOptions{newSource: newSource}

	cmd := &cobra.Command{
		Use:          "popquery",
		Short:        "Query total population inside a bounding box from a population raster",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(opts.logLevel, "text")
			if _, err := os.Stat(opts.raster); err != nil {
				return fmt.Errorf("raster %s not found", opts.raster)
			}
			return nil
		},
	}

	defaultRaster := os.Getenv("GEOPOP_RASTER_PATH")
	if defaultRaster == "" {
		defaultRaster = "data/population.tif"
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.raster, "raster", defaultRaster, "path to the population GeoTIFF")
	f.IntVar(&opts.band, "band", 1, "1-based band holding population counts")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newQueryCmd(opts), newInfoCmd(opts))
	return cmd
}

func (o *rootOptions) service() *usecases.PopulationService {
	return usecases.NewPopulationService(o.newSource(o.raster), nil, usecases.PopulationOptions{
		Band: o.band,
	})
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
