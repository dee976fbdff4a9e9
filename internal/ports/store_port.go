package ports

import (
	"context"

	"smarthome-bridge/internal/domain/model"
)

// DeviceStore is the locally persisted dataset. Lookups of unknown ids return
// (nil, nil); errors are reserved for I/O failures.
type DeviceStore interface {
	ListDevices(ctx context.Context) ([]*model.Device, error)
	GetDevice(ctx context.Context, id string) (*model.Device, error)
	ListDevicesByArea(ctx context.Context, area string) ([]*model.Device, error)
	UpdateDevice(ctx context.Context, id string, patch model.DeviceState) (*model.Device, error)

	ListSensors(ctx context.Context) ([]*model.Sensor, error)
	GetSensor(ctx context.Context, id string) (*model.Sensor, error)
	ListSensorsByArea(ctx context.Context, area string) ([]*model.Sensor, error)

	ListAreas(ctx context.Context) ([]string, error)
}
