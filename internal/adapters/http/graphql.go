package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/geocommerce/geopop/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the population service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	boundsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Bounds",
		Fields: graphql.Fields{
			"lat_min": &graphql.Field{Type: graphql.Float},
			"lon_min": &graphql.Field{Type: graphql.Float},
			"lat_max": &graphql.Field{Type: graphql.Float},
			"lon_max": &graphql.Field{Type: graphql.Float},
		},
	})

	// population is a Float: GraphQL Int is 32-bit and national totals overflow it.
	populationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Population",
		Fields: graphql.Fields{
			"population": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return float64(p.Source.(*domain.PopulationResult).Population), nil
				},
			},
			"bounds": &graphql.Field{
				Type: boundsType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.PopulationResult).Bounds, nil
				},
			},
		},
	})

	rasterType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Raster",
		Fields: graphql.Fields{
			"width":        &graphql.Field{Type: graphql.Int},
			"height":       &graphql.Field{Type: graphql.Int},
			"bands":        &graphql.Field{Type: graphql.Int},
			"crs":          &graphql.Field{Type: graphql.String},
			"nodata":       &graphql.Field{Type: graphql.Float},
			"geotransform": &graphql.Field{Type: graphql.NewList(graphql.Float)},
			"extent":       &graphql.Field{Type: boundsType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"population": &graphql.Field{
				Type:        populationType,
				Description: "Total population inside a bounding box",
				Args: graphql.FieldConfigArgument{
					"latMin": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lonMin": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"latMax": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lonMax": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					bbox := domain.BBox{
						LatMin: p.Args["latMin"].(float64),
						LonMin: p.Args["lonMin"].(float64),
						LatMax: p.Args["latMax"].(float64),
						LonMax: p.Args["lonMax"].(float64),
					}
					return deps.Population.Population(p.Context, bbox)
				},
			},
			"raster": &graphql.Field{
				Type:        rasterType,
				Description: "Metadata of the population raster",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					info, err := deps.Population.Describe(p.Context)
					if err != nil {
						return nil, err
					}
					m := map[string]interface{}{
						"width":        info.Width,
						"height":       info.Height,
						"bands":        info.Bands,
						"crs":          info.CRS,
						"geotransform": info.GeoTransform[:],
						"extent":       info.Extent,
					}
					if info.NoData != nil {
						m["nodata"] = *info.NoData
					}
					return m, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
