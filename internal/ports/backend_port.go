package ports

import (
	"context"

	"smarthome-bridge/internal/domain/model"
)

// Backend is the read/write capability the facade depends on. Get* return
// (nil, nil) for unknown ids.
type Backend interface {
	Name() string

	ListDevices(ctx context.Context) ([]*model.Device, error)
	GetDevice(ctx context.Context, id string) (*model.Device, error)
	ListDevicesByArea(ctx context.Context, area string) ([]*model.Device, error)

	ListSensors(ctx context.Context) ([]*model.Sensor, error)
	GetSensor(ctx context.Context, id string) (*model.Sensor, error)
	ListSensorsByArea(ctx context.Context, area string) ([]*model.Sensor, error)

	ListAreas(ctx context.Context) ([]string, error)

	// Apply performs cmd against device and returns the authoritative state afterwards.
	Apply(ctx context.Context, device *model.Device, cmd model.Command) (*model.Device, error)
}
