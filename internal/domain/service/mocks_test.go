package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

type MockHAPort struct {
	mock.Mock
}

func (m *MockHAPort) IsEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockHAPort) TestConnection(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockHAPort) GetConfig(ctx context.Context) (*ports.HubConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(*ports.HubConfig), args.Error(1)
}

func (m *MockHAPort) GetServices(ctx context.Context) ([]ports.HubService, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ports.HubService), args.Error(1)
}

func (m *MockHAPort) GetAllStates(ctx context.Context) ([]ports.Entity, error) {
	args := m.Called(ctx)
	states, _ := args.Get(0).([]ports.Entity)
	return states, args.Error(1)
}

func (m *MockHAPort) GetState(ctx context.Context, entityID string) (*ports.Entity, error) {
	args := m.Called(ctx, entityID)
	e, _ := args.Get(0).(*ports.Entity)
	return e, args.Error(1)
}

func (m *MockHAPort) GetEntitiesByDomain(ctx context.Context, domain string) ([]ports.Entity, error) {
	args := m.Called(ctx, domain)
	states, _ := args.Get(0).([]ports.Entity)
	return states, args.Error(1)
}

func (m *MockHAPort) CallService(ctx context.Context, domain, service string, payload map[string]interface{}) error {
	return m.Called(ctx, domain, service, payload).Error(0)
}

func (m *MockHAPort) TurnOn(ctx context.Context, entityID string, brightnessPct *int) error {
	return m.Called(ctx, entityID, brightnessPct).Error(0)
}

func (m *MockHAPort) TurnOff(ctx context.Context, entityID string) error {
	return m.Called(ctx, entityID).Error(0)
}

func (m *MockHAPort) SetBrightness(ctx context.Context, entityID string, pct int) error {
	return m.Called(ctx, entityID, pct).Error(0)
}

func (m *MockHAPort) SetTemperature(ctx context.Context, entityID string, celsius float64) error {
	return m.Called(ctx, entityID, celsius).Error(0)
}

func (m *MockHAPort) Lock(ctx context.Context, entityID string) error {
	return m.Called(ctx, entityID).Error(0)
}

func (m *MockHAPort) Unlock(ctx context.Context, entityID string) error {
	return m.Called(ctx, entityID).Error(0)
}

func (m *MockHAPort) SetFanSpeed(ctx context.Context, entityID string, pct int) error {
	return m.Called(ctx, entityID, pct).Error(0)
}

// memStore is an in-memory ports.DeviceStore.
type memStore struct {
	mu       sync.Mutex
	snap     *model.Snapshot
	updates  int
	failNext error
}

func newMemStore() *memStore {
	return &memStore{snap: &model.Snapshot{
		Areas: []string{"Living Room", "Bedroom", "Kitchen", "Bathroom", "Garage"},
		Devices: []*model.Device{
			{ID: "light-1", Name: "Living Room Ceiling Light", Type: model.DeviceTypeLight, Area: "Living Room",
				State: model.DeviceState{Power: model.Ptr(model.PowerOff), Brightness: model.Ptr(0)}},
			{ID: "light-2", Name: "Bedroom Table Lamp", Type: model.DeviceTypeLight, Area: "Bedroom",
				State: model.DeviceState{Power: model.Ptr(model.PowerOff), Brightness: model.Ptr(0)}},
			{ID: "thermostat-1", Name: "Main Thermostat", Type: model.DeviceTypeThermostat, Area: "Living Room",
				State: model.DeviceState{Power: model.Ptr(model.PowerOn), Temperature: model.Ptr(22.0)}},
			{ID: "lock-1", Name: "Front Door Lock", Type: model.DeviceTypeDoorLock, Area: "Living Room",
				State: model.DeviceState{Locked: model.Ptr(true)}},
			{ID: "fan-1", Name: "Bedroom Ceiling Fan", Type: model.DeviceTypeFan, Area: "Bedroom",
				State: model.DeviceState{Power: model.Ptr(model.PowerOff), Speed: model.Ptr(0)}},
		},
		Sensors: []*model.Sensor{
			{ID: "temp-1", Name: "Living Room Temperature Sensor", Type: model.SensorTypeTemperature, Area: "Living Room",
				State: model.SensorState{Value: 22.5, Unit: "°C"}},
			{ID: "motion-1", Name: "Garage Motion Sensor", Type: model.SensorTypeMotion, Area: "Garage",
				State: model.SensorState{Value: false}},
		},
	}}
}

func (s *memStore) ListDevices(ctx context.Context) ([]*model.Device, error) {
	return s.devices(func(*model.Device) bool { return true }), nil
}

func (s *memStore) GetDevice(ctx context.Context, id string) (*model.Device, error) {
	for _, d := range s.devices(func(d *model.Device) bool { return d.ID == id }) {
		return d, nil
	}
	return nil, nil
}

func (s *memStore) ListDevicesByArea(ctx context.Context, area string) ([]*model.Device, error) {
	return s.devices(func(d *model.Device) bool { return strings.EqualFold(d.Area, area) }), nil
}

func (s *memStore) UpdateDevice(ctx context.Context, id string, patch model.DeviceState) (*model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return nil, err
	}
	for _, d := range s.snap.Devices {
		if d.ID == id {
			d.State = d.State.Merge(patch)
			s.updates++
			return d.DeepCopy(), nil
		}
	}
	return nil, nil
}

func (s *memStore) ListSensors(ctx context.Context) ([]*model.Sensor, error) {
	return s.sensors(func(*model.Sensor) bool { return true }), nil
}

func (s *memStore) GetSensor(ctx context.Context, id string) (*model.Sensor, error) {
	for _, x := range s.sensors(func(x *model.Sensor) bool { return x.ID == id }) {
		return x, nil
	}
	return nil, nil
}

func (s *memStore) ListSensorsByArea(ctx context.Context, area string) ([]*model.Sensor, error) {
	return s.sensors(func(x *model.Sensor) bool { return strings.EqualFold(x.Area, area) }), nil
}

func (s *memStore) ListAreas(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.snap.Areas...), nil
}

func (s *memStore) devices(keep func(*model.Device) bool) []*model.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Device
	for _, d := range s.snap.Devices {
		if keep(d) {
			out = append(out, d.DeepCopy())
		}
	}
	return out
}

func (s *memStore) sensors(keep func(*model.Sensor) bool) []*model.Sensor {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Sensor
	for _, x := range s.snap.Sensors {
		if keep(x) {
			out = append(out, x.DeepCopy())
		}
	}
	return out
}

var errDiskFull = errors.New("disk full")
