package ports

import (
	"context"
	"time"
)

// Entity is the hub's native representation of a state object, as returned by
// GET /api/states. Light brightness in Attributes is already on the 0-100 scale.
type Entity struct {
	EntityID    string                 `json:"entity_id"`
	State       string                 `json:"state"`
	Attributes  map[string]interface{} `json:"attributes"`
	LastChanged time.Time              `json:"last_changed"`
	LastUpdated time.Time              `json:"last_updated"`
}

// HubConfig is the subset of GET /api/config we care about.
type HubConfig struct {
	LocationName string   `json:"location_name"`
	TimeZone     string   `json:"time_zone"`
	Version      string   `json:"version"`
	State        string   `json:"state"`
	Components   []string `json:"components"`
	UnitSystem   struct {
		Temperature string `json:"temperature"`
		Length      string `json:"length"`
	} `json:"unit_system"`
}

// HubService describes the services a domain exposes.
type HubService struct {
	Domain   string                 `json:"domain"`
	Services map[string]interface{} `json:"services"`
}

type HomeAssistantPort interface {
	IsEnabled() bool
	TestConnection(ctx context.Context) (bool, error)
	GetConfig(ctx context.Context) (*HubConfig, error)
	GetServices(ctx context.Context) ([]HubService, error)

	GetAllStates(ctx context.Context) ([]Entity, error)
	GetState(ctx context.Context, entityID string) (*Entity, error)
	GetEntitiesByDomain(ctx context.Context, domain string) ([]Entity, error)

	CallService(ctx context.Context, domain, service string, payload map[string]interface{}) error
	TurnOn(ctx context.Context, entityID string, brightnessPct *int) error
	TurnOff(ctx context.Context, entityID string) error
	SetBrightness(ctx context.Context, entityID string, pct int) error
	SetTemperature(ctx context.Context, entityID string, celsius float64) error
	Lock(ctx context.Context, entityID string) error
	Unlock(ctx context.Context, entityID string) error
	SetFanSpeed(ctx context.Context, entityID string, pct int) error
}
