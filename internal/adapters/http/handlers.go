package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/usecases"
)

// locationPayload is a resolved location as sent by clients.
type locationPayload struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Label      string  `json:"label"`
	ExternalID string  `json:"external_id,omitempty"`
	Kind       string  `json:"kind,omitempty"`
}

func (p locationPayload) toDomain() domain.NamedLocation {
	return domain.NamedLocation{
		Position:   domain.GeoPoint{Lat: p.Lat, Lon: p.Lon},
		Label:      p.Label,
		ExternalID: p.ExternalID,
		Kind:       p.Kind,
	}
}

// planRequest is the body of POST /v1/routes/plan.
type planRequest struct {
	Mode        string          `json:"mode"`
	Origin      locationPayload `json:"origin"`
	Destination locationPayload `json:"destination"`
}

// PlanRouteHandler plans routes between two resolved locations.
//
//	POST /v1/routes/plan {"mode":"car","origin":{...},"destination":{...}}
func PlanRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req planRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		mode := domain.TransportMode(req.Mode)
		if !mode.Valid() {
			return errBadRequest(c, fmt.Sprintf("unsupported mode %q (car, bike, foot, bus)", req.Mode))
		}

		result, err := deps.Planner.Plan(c.UserContext(), req.Origin.toDomain(), req.Destination.toDomain(), mode)
		if err != nil {
			return planError(c, err)
		}
		return c.JSON(result)
	}
}

// planError maps planning failures onto the API error envelope.
func planError(c *fiber.Ctx, err error) error {
	var provErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrMissingEndpoint):
		return errBadRequest(c, "origin and destination are required")
	case errors.Is(err, domain.ErrNoRoutes):
		return errNoRoutes(c)
	case errors.As(err, &provErr):
		return errUpstream(c, provErr.Error())
	default:
		return errInternal(c, "route planning failed")
	}
}

// LatestPlanHandler returns the newest applied plan view.
func LatestPlanHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, itineraries := deps.Planner.Latest()
		if itineraries == nil {
			itineraries = []domain.Itinerary{}
		}
		return c.JSON(fiber.Map{
			"token":       token,
			"itineraries": itineraries,
		})
	}
}

// SearchLocationsHandler forward-geocodes free text.
//
//	GET /v1/locations/search?q=dame+street
func SearchLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return errBadRequest(c, "query parameter q is required")
		}

		locations, err := deps.Locations.Search(c.UserContext(), q)
		if err != nil {
			return errUpstream(c, "location search failed")
		}
		return c.JSON(fiber.Map{"data": locations})
	}
}

// TransitLocationsHandler resolves text against the transit gazetteer. The
// results carry the external IDs bus-mode planning requires.
func TransitLocationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return errBadRequest(c, "query parameter q is required")
		}

		locations, err := deps.Locations.SearchTransit(c.UserContext(), q)
		if err != nil {
			return errUpstream(c, "transit location lookup failed")
		}
		return c.JSON(fiber.Map{"data": locations})
	}
}

// ReverseGeocodeHandler resolves coordinates to a display label. A failed
// reverse lookup yields an empty label, never an error.
//
//	GET /v1/locations/reverse?lat=53.35&lon=-6.26
func ReverseGeocodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parsePoint(c, "lat", "lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		label := deps.Locations.Reverse(c.UserContext(), p)
		return c.JSON(fiber.Map{"label": label})
	}
}

// ListTollsHandler returns the static toll-station table.
func ListTollsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": deps.Tolls.Stations()})
	}
}

// AQIWidgetHandler returns a live air-quality reading.
//
//	GET /v1/widgets/aqi?city=dublin
//	GET /v1/widgets/aqi?station=1679
//	GET /v1/widgets/aqi?lat=53.35&lon=-6.26
func AQIWidgetHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var feed string
		switch {
		case c.Query("city") != "":
			feed = c.Query("city")
		case c.Query("station") != "":
			feed = "@" + c.Query("station")
		default:
			p, err := parsePoint(c, "lat", "lon")
			if err != nil {
				return errBadRequest(c, "one of city, station, or lat+lon is required")
			}
			feed = fmt.Sprintf("geo:%f;%f", p.Lat, p.Lon)
		}

		reading, err := deps.Environment.AirQuality(c.UserContext(), feed)
		if err != nil {
			return errUpstream(c, "air quality lookup failed")
		}
		return c.JSON(reading)
	}
}

// WeatherWidgetHandler returns current conditions at a point.
func WeatherWidgetHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parsePoint(c, "lat", "lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		obs, err := deps.Environment.Weather(c.UserContext(), p)
		if err != nil {
			return errUpstream(c, "weather lookup failed")
		}
		return c.JSON(obs)
	}
}

// issueRequest is the body of POST /v1/issues.
type issueRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ReportIssueHandler records a citizen-reported civic issue.
func ReportIssueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req issueRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		issue := &domain.Issue{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Location:    domain.GeoPoint{Lat: req.Lat, Lon: req.Lon},
		}

		created, err := deps.Issues.Report(c.UserContext(), issue)
		if err != nil {
			if errors.Is(err, usecases.ErrInvalidIssue) {
				return errBadRequest(c, "title, category, and a non-zero location are required")
			}
			return errInternal(c, "failed to record issue")
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// ListIssuesHandler returns a page of reported issues, newest first.
func ListIssuesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 20)

		issues, total, err := deps.Issues.List(c.UserContext(), offset, limit)
		if err != nil {
			return errInternal(c, "failed to list issues")
		}

		p := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, p)
		return c.JSON(PaginatedResponse{Data: issues, Pagination: p})
	}
}

// GetIssueHandler returns one issue by ID.
func GetIssueHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		issue, err := deps.Issues.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "issue not found")
			}
			return errInternal(c, "failed to load issue")
		}
		return c.JSON(issue)
	}
}

// parsePoint reads a lat/lon query-parameter pair.
func parsePoint(c *fiber.Ctx, latKey, lonKey string) (domain.GeoPoint, error) {
	lat, err := strconv.ParseFloat(c.Query(latKey), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("invalid %s", latKey)
	}
	lon, err := strconv.ParseFloat(c.Query(lonKey), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("invalid %s", lonKey)
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}
