package translator

import (
	"strings"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

// Mapper converts hub entities into devices and sensors. It holds no mutable
// state and does no I/O.
type Mapper struct {
	factory *Factory
}

func NewMapper() *Mapper {
	return &Mapper{factory: NewFactory()}
}

func domainOf(entityID string) string {
	domain, _, _ := strings.Cut(entityID, ".")
	return domain
}

func displayName(e ports.Entity) string {
	if name, _ := e.Attributes["friendly_name"].(string); name != "" {
		return name
	}
	return e.EntityID
}

// MapDevice returns false for entities whose domain is not a device domain.
func (m *Mapper) MapDevice(e ports.Entity) (*model.Device, bool) {
	t, ok := m.factory.GetTranslator(domainOf(e.EntityID))
	if !ok {
		return nil, false
	}
	return &model.Device{
		ID:    e.EntityID,
		Name:  displayName(e),
		Type:  t.DeviceType(),
		Area:  ResolveArea(e.Attributes),
		State: t.ToState(e),
	}, true
}

// MapSensor returns false for anything that is not a supported sensor.
func (m *Mapper) MapSensor(e ports.Entity) (*model.Sensor, bool) {
	deviceClass, _ := e.Attributes["device_class"].(string)
	sensorType, ok := SensorTypeFor(domainOf(e.EntityID), deviceClass)
	if !ok {
		return nil, false
	}
	unit, _ := e.Attributes["unit_of_measurement"].(string)
	return &model.Sensor{
		ID:   e.EntityID,
		Name: displayName(e),
		Type: sensorType,
		Area: ResolveArea(e.Attributes),
		State: model.SensorState{
			Value:       ParseSensorValue(sensorType, e.State),
			Unit:        unit,
			LastUpdated: e.LastUpdated,
		},
	}, true
}

// MapDevices silently drops unmappable entities.
func (m *Mapper) MapDevices(entities []ports.Entity) []*model.Device {
	out := make([]*model.Device, 0, len(entities))
	for _, e := range entities {
		if d, ok := m.MapDevice(e); ok {
			out = append(out, d)
		}
	}
	return out
}

// MapSensors silently drops unmappable entities.
func (m *Mapper) MapSensors(entities []ports.Entity) []*model.Sensor {
	out := make([]*model.Sensor, 0, len(entities))
	for _, e := range entities {
		if s, ok := m.MapSensor(e); ok {
			out = append(out, s)
		}
	}
	return out
}
