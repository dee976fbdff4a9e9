package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

// SmartHomeService is the single entry point over whichever backend was
// selected at startup. It applies clamping and derived defaults before
// delegating, so both backends see identical commands.
type SmartHomeService struct {
	backend ports.Backend
	logger  *zap.Logger
}

func NewSmartHomeService(backend ports.Backend, logger *zap.Logger) *SmartHomeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SmartHomeService{
		backend: backend,
		logger:  logger.Named("smarthome").With(zap.String("backend", backend.Name())),
	}
}

// SelectBackend picks the hub when requested and configured, otherwise the
// local store. The choice is made once; callers keep the returned backend.
func SelectBackend(useHomeAssistant bool, ha ports.HomeAssistantPort, store ports.DeviceStore, logger *zap.Logger) ports.Backend {
	if useHomeAssistant {
		if ha != nil && ha.IsEnabled() {
			return NewRemoteBackend(ha)
		}
		if logger != nil {
			logger.Warn("Home Assistant requested but URL or token missing, using local store")
		}
	}
	return NewLocalBackend(store)
}

func (s *SmartHomeService) Backend() string {
	return s.backend.Name()
}

func (s *SmartHomeService) ListDevices(ctx context.Context) ([]*model.Device, error) {
	return s.backend.ListDevices(ctx)
}

func (s *SmartHomeService) ListDevicesByArea(ctx context.Context, area string) ([]*model.Device, error) {
	return s.backend.ListDevicesByArea(ctx, area)
}

func (s *SmartHomeService) ListSensors(ctx context.Context) ([]*model.Sensor, error) {
	return s.backend.ListSensors(ctx)
}

func (s *SmartHomeService) ListSensorsByArea(ctx context.Context, area string) ([]*model.Sensor, error) {
	return s.backend.ListSensorsByArea(ctx, area)
}

func (s *SmartHomeService) ListAreas(ctx context.Context) ([]string, error) {
	return s.backend.ListAreas(ctx)
}

// GetAllData returns devices, sensors and areas in one snapshot.
func (s *SmartHomeService) GetAllData(ctx context.Context) (*model.Snapshot, error) {
	devices, err := s.backend.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	sensors, err := s.backend.ListSensors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sensors: %w", err)
	}
	areas, err := s.backend.ListAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing areas: %w", err)
	}
	return &model.Snapshot{Devices: devices, Sensors: sensors, Areas: areas}, nil
}

func (s *SmartHomeService) GetDevice(ctx context.Context, id string) model.Result[*model.Device] {
	d, err := s.backend.GetDevice(ctx, id)
	if err != nil {
		s.logger.Warn("device lookup failed", zap.String("id", id), zap.Error(err))
		return model.BackendError[*model.Device](err)
	}
	if d == nil {
		return model.NotFound[*model.Device]()
	}
	return model.Ok(d)
}

func (s *SmartHomeService) GetSensor(ctx context.Context, id string) model.Result[*model.Sensor] {
	sensor, err := s.backend.GetSensor(ctx, id)
	if err != nil {
		s.logger.Warn("sensor lookup failed", zap.String("id", id), zap.Error(err))
		return model.BackendError[*model.Sensor](err)
	}
	if sensor == nil {
		return model.NotFound[*model.Sensor]()
	}
	return model.Ok(sensor)
}

// TurnOn powers any device on. A light at brightness 0 comes on at 100, a fan
// at speed 0 comes on at 50.
func (s *SmartHomeService) TurnOn(ctx context.Context, id string) model.Result[*model.Device] {
	return s.mutate(ctx, id, model.OpTurnOn, nil, func(d *model.Device) model.DeviceState {
		patch := model.DeviceState{Power: model.Ptr(model.PowerOn)}
		if d.Type == model.DeviceTypeLight && d.State.Brightness != nil && *d.State.Brightness == 0 {
			patch.Brightness = model.Ptr(model.DefaultLightBrightness)
		}
		if d.Type == model.DeviceTypeFan && d.State.Speed != nil && *d.State.Speed == 0 {
			patch.Speed = model.Ptr(model.DefaultFanSpeed)
		}
		return patch
	})
}

func (s *SmartHomeService) TurnOff(ctx context.Context, id string) model.Result[*model.Device] {
	return s.mutate(ctx, id, model.OpTurnOff, nil, func(*model.Device) model.DeviceState {
		return model.DeviceState{Power: model.Ptr(model.PowerOff)}
	})
}

func (s *SmartHomeService) SetBrightness(ctx context.Context, id string, brightness int) model.Result[*model.Device] {
	b := model.ClampPercent(brightness)
	return s.mutate(ctx, id, model.OpSetBrightness, only(model.DeviceTypeLight), func(*model.Device) model.DeviceState {
		return model.DeviceState{Brightness: model.Ptr(b), Power: powerFor(b)}
	})
}

func (s *SmartHomeService) SetTemperature(ctx context.Context, id string, celsius float64) model.Result[*model.Device] {
	t := model.ClampTemperature(celsius)
	return s.mutate(ctx, id, model.OpSetTemperature, only(model.DeviceTypeThermostat), func(*model.Device) model.DeviceState {
		return model.DeviceState{Temperature: model.Ptr(t)}
	})
}

func (s *SmartHomeService) Lock(ctx context.Context, id string) model.Result[*model.Device] {
	return s.mutate(ctx, id, model.OpLock, only(model.DeviceTypeDoorLock), func(*model.Device) model.DeviceState {
		return model.DeviceState{Locked: model.Ptr(true)}
	})
}

func (s *SmartHomeService) Unlock(ctx context.Context, id string) model.Result[*model.Device] {
	return s.mutate(ctx, id, model.OpUnlock, only(model.DeviceTypeDoorLock), func(*model.Device) model.DeviceState {
		return model.DeviceState{Locked: model.Ptr(false)}
	})
}

func (s *SmartHomeService) SetFanSpeed(ctx context.Context, id string, speed int) model.Result[*model.Device] {
	v := model.ClampPercent(speed)
	return s.mutate(ctx, id, model.OpSetFanSpeed, only(model.DeviceTypeFan), func(*model.Device) model.DeviceState {
		return model.DeviceState{Speed: model.Ptr(v), Power: powerFor(v)}
	})
}

// UpdateState merges an arbitrary patch. Percentages are clamped, and so is
// temperature when the target is a thermostat; no power is derived.
func (s *SmartHomeService) UpdateState(ctx context.Context, id string, patch model.DeviceState) model.Result[*model.Device] {
	return s.mutate(ctx, id, model.OpUpdateState, nil, func(d *model.Device) model.DeviceState {
		p := patch.Clone()
		if p.Brightness != nil {
			p.Brightness = model.Ptr(model.ClampPercent(*p.Brightness))
		}
		if p.Speed != nil {
			p.Speed = model.Ptr(model.ClampPercent(*p.Speed))
		}
		if p.Temperature != nil && d.Type == model.DeviceTypeThermostat {
			p.Temperature = model.Ptr(model.ClampTemperature(*p.Temperature))
		}
		return p
	})
}

// mutate looks the device up, checks its type, builds the patch and applies it.
// A nil allowed accepts every type. Backend failures are logged and returned
// as BackendError, never as a Go error.
func (s *SmartHomeService) mutate(ctx context.Context, id string, op model.Operation,
	allowed func(model.DeviceType) bool, patch func(*model.Device) model.DeviceState) model.Result[*model.Device] {

	log := s.logger.With(zap.String("op", string(op)), zap.String("id", id))

	device, err := s.backend.GetDevice(ctx, id)
	if err != nil {
		log.Error("device lookup failed", zap.Error(err))
		return model.BackendError[*model.Device](err)
	}
	if device == nil {
		log.Debug("device not found")
		return model.NotFound[*model.Device]()
	}
	if allowed != nil && !allowed(device.Type) {
		log.Debug("operation not supported by device type", zap.String("type", string(device.Type)))
		return model.TypeMismatch[*model.Device]()
	}

	updated, err := s.backend.Apply(ctx, device, model.Command{Op: op, Patch: patch(device)})
	if err != nil {
		log.Error("applying command failed", zap.Error(err))
		return model.BackendError[*model.Device](err)
	}
	if updated == nil {
		return model.NotFound[*model.Device]()
	}
	log.Info("device updated")
	return model.Ok(updated)
}

func only(t model.DeviceType) func(model.DeviceType) bool {
	return func(got model.DeviceType) bool { return got == t }
}

func powerFor(v int) *model.Power {
	if v > 0 {
		return model.Ptr(model.PowerOn)
	}
	return model.Ptr(model.PowerOff)
}

var (
	_ ports.SmartHomePort = (*SmartHomeService)(nil)
	_ ports.Backend       = (*LocalBackend)(nil)
	_ ports.Backend       = (*RemoteBackend)(nil)
)
