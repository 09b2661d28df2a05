package main

import (
	"github.com/spf13/cobra"

	"github.com/geocommerce/geopop/internal/core/usecases"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var latMin, lonMin, latMax, lonMax string

	cmd := &cobra.Command{
		Use:     "query",
		Short:   "Print the population inside a bounding box as JSON",
		Example: "  popquery query --lat-min 43.2 --lon-min -3.0 --lat-max 43.4 --lon-max -2.8",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bbox, err := usecases.ParseBBox(latMin, lonMin, latMax, lonMax)
			if err != nil {
				return err
			}
			res, err := opts.service().Population(cmd.Context(), bbox)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&latMin, "lat-min", "", "southern latitude")
	f.StringVar(&lonMin, "lon-min", "", "western longitude")
	f.StringVar(&latMax, "lat-max", "", "northern latitude")
	f.StringVar(&lonMax, "lon-max", "", "eastern longitude")
	return cmd
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print raster metadata as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := opts.service().Describe(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}
