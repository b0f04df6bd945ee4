package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"label":       &graphql.Field{Type: graphql.String},
			"external_id": &graphql.Field{Type: graphql.String},
			"kind":        &graphql.Field{Type: graphql.String},
			"position":    &graphql.Field{Type: geoPointType},
		},
	})

	tollStationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TollStation",
		Fields: graphql.Fields{
			"name":     &graphql.Field{Type: graphql.String},
			"price":    &graphql.Field{Type: graphql.Float},
			"position": &graphql.Field{Type: geoPointType},
		},
	})

	tollChargeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TollCharge",
		Fields: graphql.Fields{
			"cost":  &graphql.Field{Type: graphql.String},
			"tolls": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	itineraryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Itinerary",
		Fields: graphql.Fields{
			"label":            &graphql.Field{Type: graphql.String},
			"duration_minutes": &graphql.Field{Type: graphql.Float},
			"distance_km":      &graphql.Field{Type: graphql.Float},
			"description":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"toll":             &graphql.Field{Type: tollChargeType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"searchLocations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "Forward-geocode free text",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					return deps.Locations.Search(p.Context, q)
				},
			},
			"transitLocations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "Resolve text against the transit gazetteer",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					return deps.Locations.SearchTransit(p.Context, q)
				},
			},
			"reverseGeocode": &graphql.Field{
				Type:        graphql.String,
				Description: "Resolve coordinates to a display label",
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lon := p.Args["lon"].(float64)
					return deps.Locations.Reverse(p.Context, domain.GeoPoint{Lat: lat, Lon: lon}), nil
				},
			},
			"planRoutes": &graphql.Field{
				Type:        graphql.NewList(itineraryType),
				Description: "Plan routes between two points for a transport mode",
				Args: graphql.FieldConfigArgument{
					"mode":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"originLat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"originLon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"destLat":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"destLon":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"originId":  &graphql.ArgumentConfig{Type: graphql.String},
					"destId":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					origin := domain.NamedLocation{
						Position: domain.GeoPoint{Lat: p.Args["originLat"].(float64), Lon: p.Args["originLon"].(float64)},
					}
					dest := domain.NamedLocation{
						Position: domain.GeoPoint{Lat: p.Args["destLat"].(float64), Lon: p.Args["destLon"].(float64)},
					}
					if id, ok := p.Args["originId"].(string); ok {
						origin.ExternalID = id
					}
					if id, ok := p.Args["destId"].(string); ok {
						dest.ExternalID = id
					}

					result, err := deps.Planner.Plan(p.Context, origin, dest, domain.TransportMode(p.Args["mode"].(string)))
					if err != nil {
						return nil, err
					}
					return result.Itineraries, nil
				},
			},
			"tollStations": &graphql.Field{
				Type:        graphql.NewList(tollStationType),
				Description: "List the static toll-station table",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Tolls.Stations(), nil
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
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
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
