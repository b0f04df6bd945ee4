package http

import (
	"github.com/nats-io/nats.go"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/postgres"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/valkey"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Planner     *usecases.PlannerService
	Locations   *usecases.LocationService
	Tolls       *usecases.TollService
	Environment *usecases.EnvironmentService
	Issues      *usecases.IssueService
	NATS        *nats.Conn
	DB          *postgres.DB
	Cache       *valkey.Cache
}
