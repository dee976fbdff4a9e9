package service

import (
	"context"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

const (
	BackendLocal         = "local"
	BackendHomeAssistant = "home_assistant"
)

// LocalBackend serves everything from the persisted store. Commands are
// applied by merging their patch.
type LocalBackend struct {
	store ports.DeviceStore
}

func NewLocalBackend(store ports.DeviceStore) *LocalBackend {
	return &LocalBackend{store: store}
}

func (b *LocalBackend) Name() string { return BackendLocal }

func (b *LocalBackend) ListDevices(ctx context.Context) ([]*model.Device, error) {
	return b.store.ListDevices(ctx)
}

func (b *LocalBackend) GetDevice(ctx context.Context, id string) (*model.Device, error) {
	return b.store.GetDevice(ctx, id)
}

func (b *LocalBackend) ListDevicesByArea(ctx context.Context, area string) ([]*model.Device, error) {
	return b.store.ListDevicesByArea(ctx, area)
}

func (b *LocalBackend) ListSensors(ctx context.Context) ([]*model.Sensor, error) {
	return b.store.ListSensors(ctx)
}

func (b *LocalBackend) GetSensor(ctx context.Context, id string) (*model.Sensor, error) {
	return b.store.GetSensor(ctx, id)
}

func (b *LocalBackend) ListSensorsByArea(ctx context.Context, area string) ([]*model.Sensor, error) {
	return b.store.ListSensorsByArea(ctx, area)
}

func (b *LocalBackend) ListAreas(ctx context.Context) ([]string, error) {
	return b.store.ListAreas(ctx)
}

func (b *LocalBackend) Apply(ctx context.Context, device *model.Device, cmd model.Command) (*model.Device, error) {
	return b.store.UpdateDevice(ctx, device.ID, cmd.Patch)
}
