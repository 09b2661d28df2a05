package http

import (
	"github.com/geocommerce/geopop/internal/adapters/valkey"
	"github.com/geocommerce/geopop/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Population *usecases.PopulationService
	Cache      *valkey.Cache
	Version    string
}
