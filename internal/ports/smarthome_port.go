package ports

import (
	"context"

	"smarthome-bridge/internal/domain/model"
)

// SmartHomePort is the operation set offered to input adapters (HTTP, CLI).
type SmartHomePort interface {
	Backend() string

	ListDevices(ctx context.Context) ([]*model.Device, error)
	ListDevicesByArea(ctx context.Context, area string) ([]*model.Device, error)
	GetDevice(ctx context.Context, id string) model.Result[*model.Device]
	ListSensors(ctx context.Context) ([]*model.Sensor, error)
	ListSensorsByArea(ctx context.Context, area string) ([]*model.Sensor, error)
	GetSensor(ctx context.Context, id string) model.Result[*model.Sensor]
	ListAreas(ctx context.Context) ([]string, error)
	GetAllData(ctx context.Context) (*model.Snapshot, error)

	GetDeviceStatus(ctx context.Context, id string) model.Result[model.DeviceStatus]
	GetSensorStatus(ctx context.Context, id string) model.Result[model.SensorStatus]

	TurnOn(ctx context.Context, id string) model.Result[*model.Device]
	TurnOff(ctx context.Context, id string) model.Result[*model.Device]
	SetBrightness(ctx context.Context, id string, brightness int) model.Result[*model.Device]
	SetTemperature(ctx context.Context, id string, celsius float64) model.Result[*model.Device]
	Lock(ctx context.Context, id string) model.Result[*model.Device]
	Unlock(ctx context.Context, id string) model.Result[*model.Device]
	SetFanSpeed(ctx context.Context, id string, speed int) model.Result[*model.Device]
	UpdateState(ctx context.Context, id string, patch model.DeviceState) model.Result[*model.Device]
}
