package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geocommerce/geopop/internal/core/usecases"
)

// PopulationHandler returns the total population inside the bounding box given
// by the lat_min, lon_min, lat_max and lon_max query parameters.
func PopulationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bbox, err := usecases.ParseBBox(
			c.Query("lat_min"), c.Query("lon_min"),
			c.Query("lat_max"), c.Query("lon_max"),
		)
		if err != nil {
			return respondError(c, err)
		}

		res, err := deps.Population.Population(c.UserContext(), bbox)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(res)
	}
}

// RasterInfoHandler returns metadata of the population raster.
func RasterInfoHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := deps.Population.Describe(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(info)
	}
}
