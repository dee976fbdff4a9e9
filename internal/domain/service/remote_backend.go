package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/domain/translator"
	"smarthome-bridge/internal/ports"
)

// RemoteBackend reads a fresh hub snapshot on every call and maps it. Commands
// become service calls followed by a re-fetch of the entity.
type RemoteBackend struct {
	ha     ports.HomeAssistantPort
	mapper *translator.Mapper
}

func NewRemoteBackend(ha ports.HomeAssistantPort) *RemoteBackend {
	return &RemoteBackend{ha: ha, mapper: translator.NewMapper()}
}

func (b *RemoteBackend) Name() string { return BackendHomeAssistant }

func (b *RemoteBackend) ListDevices(ctx context.Context) ([]*model.Device, error) {
	states, err := b.ha.GetAllStates(ctx)
	if err != nil {
		return nil, err
	}
	return b.mapper.MapDevices(states), nil
}

func (b *RemoteBackend) GetDevice(ctx context.Context, id string) (*model.Device, error) {
	entity, err := b.getEntity(ctx, id)
	if entity == nil || err != nil {
		return nil, err
	}
	d, ok := b.mapper.MapDevice(*entity)
	if !ok {
		return nil, nil
	}
	return d, nil
}

func (b *RemoteBackend) ListDevicesByArea(ctx context.Context, area string) ([]*model.Device, error) {
	devices, err := b.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Device, 0)
	for _, d := range devices {
		if strings.EqualFold(d.Area, area) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (b *RemoteBackend) ListSensors(ctx context.Context) ([]*model.Sensor, error) {
	states, err := b.ha.GetAllStates(ctx)
	if err != nil {
		return nil, err
	}
	return b.mapper.MapSensors(states), nil
}

func (b *RemoteBackend) GetSensor(ctx context.Context, id string) (*model.Sensor, error) {
	entity, err := b.getEntity(ctx, id)
	if entity == nil || err != nil {
		return nil, err
	}
	s, ok := b.mapper.MapSensor(*entity)
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (b *RemoteBackend) ListSensorsByArea(ctx context.Context, area string) ([]*model.Sensor, error) {
	sensors, err := b.ListSensors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Sensor, 0)
	for _, s := range sensors {
		if strings.EqualFold(s.Area, area) {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListAreas returns the distinct resolved areas of every mappable entity,
// sorted, without the "Unknown" placeholder.
func (b *RemoteBackend) ListAreas(ctx context.Context) ([]string, error) {
	states, err := b.ha.GetAllStates(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, d := range b.mapper.MapDevices(states) {
		seen[d.Area] = true
	}
	for _, s := range b.mapper.MapSensors(states) {
		seen[s.Area] = true
	}
	delete(seen, translator.UnknownArea)

	areas := make([]string, 0, len(seen))
	for a := range seen {
		areas = append(areas, a)
	}
	sort.Strings(areas)
	return areas, nil
}

// Apply issues the service call for cmd, then re-fetches and re-maps the entity.
func (b *RemoteBackend) Apply(ctx context.Context, device *model.Device, cmd model.Command) (*model.Device, error) {
	if err := b.send(ctx, device, cmd); err != nil {
		return nil, fmt.Errorf("%s %s: %w", cmd.Op, device.ID, err)
	}
	updated, err := b.GetDevice(ctx, device.ID)
	if err != nil {
		return nil, fmt.Errorf("refreshing %s: %w", device.ID, err)
	}
	return updated, nil
}

func (b *RemoteBackend) send(ctx context.Context, device *model.Device, cmd model.Command) error {
	id := device.ID
	p := cmd.Patch

	switch cmd.Op {
	case model.OpTurnOn:
		if device.Type == model.DeviceTypeFan && p.Speed != nil {
			return b.ha.SetFanSpeed(ctx, id, *p.Speed)
		}
		return b.ha.TurnOn(ctx, id, p.Brightness)
	case model.OpTurnOff:
		return b.ha.TurnOff(ctx, id)
	case model.OpSetBrightness:
		return b.sendBrightness(ctx, id, p)
	case model.OpSetTemperature:
		return b.ha.SetTemperature(ctx, id, *p.Temperature)
	case model.OpLock:
		return b.ha.Lock(ctx, id)
	case model.OpUnlock:
		return b.ha.Unlock(ctx, id)
	case model.OpSetFanSpeed:
		return b.ha.SetFanSpeed(ctx, id, *p.Speed)
	case model.OpUpdateState:
		return b.sendPatch(ctx, device, p)
	}
	return fmt.Errorf("unsupported operation %q", cmd.Op)
}

// sendBrightness handles switches, which map to lights but cannot dim.
func (b *RemoteBackend) sendBrightness(ctx context.Context, id string, p model.DeviceState) error {
	if *p.Brightness == 0 {
		return b.ha.TurnOff(ctx, id)
	}
	if domain, _, _ := strings.Cut(id, "."); domain != "light" {
		return b.ha.TurnOn(ctx, id, nil)
	}
	return b.ha.SetBrightness(ctx, id, *p.Brightness)
}

// sendPatch translates a raw state patch into one call per field.
func (b *RemoteBackend) sendPatch(ctx context.Context, device *model.Device, p model.DeviceState) error {
	id := device.ID
	var errs []error
	if p.Open != nil || p.Recording != nil {
		errs = append(errs, errors.New("open and recording cannot be set on the hub"))
	}
	if p.Power != nil && *p.Power == model.PowerOff {
		errs = append(errs, b.ha.TurnOff(ctx, id))
	}
	if p.Power != nil && *p.Power == model.PowerOn && p.Brightness == nil && p.Speed == nil {
		errs = append(errs, b.ha.TurnOn(ctx, id, nil))
	}
	if p.Brightness != nil {
		errs = append(errs, b.sendBrightness(ctx, id, p))
	}
	if p.Speed != nil {
		errs = append(errs, b.ha.SetFanSpeed(ctx, id, *p.Speed))
	}
	if p.Temperature != nil {
		errs = append(errs, b.ha.SetTemperature(ctx, id, *p.Temperature))
	}
	if p.Locked != nil {
		if *p.Locked {
			errs = append(errs, b.ha.Lock(ctx, id))
		} else {
			errs = append(errs, b.ha.Unlock(ctx, id))
		}
	}
	return errors.Join(errs...)
}

// getEntity returns (nil, nil) when the hub does not know the id.
func (b *RemoteBackend) getEntity(ctx context.Context, id string) (*ports.Entity, error) {
	entity, err := b.ha.GetState(ctx, id)
	if errors.Is(err, ports.ErrEntityNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}
