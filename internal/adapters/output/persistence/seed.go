package persistence

import (
	"time"

	"smarthome-bridge/internal/domain/model"
)

// SeedData is the sample dataset written on first boot: two lights, a
// thermostat, a lock, a fan, three sensors and five areas.
func SeedData(now time.Time) *model.Snapshot {
	return &model.Snapshot{
		Areas: []string{"Living Room", "Bedroom", "Kitchen", "Bathroom", "Garage"},
		Devices: []*model.Device{
			{
				ID:    "light-1",
				Name:  "Living Room Ceiling Light",
				Type:  model.DeviceTypeLight,
				Area:  "Living Room",
				State: model.DeviceState{Power: model.Ptr(model.PowerOff), Brightness: model.Ptr(0)},
			},
			{
				ID:    "light-2",
				Name:  "Bedroom Table Lamp",
				Type:  model.DeviceTypeLight,
				Area:  "Bedroom",
				State: model.DeviceState{Power: model.Ptr(model.PowerOff), Brightness: model.Ptr(0)},
			},
			{
				ID:    "thermostat-1",
				Name:  "Main Thermostat",
				Type:  model.DeviceTypeThermostat,
				Area:  "Living Room",
				State: model.DeviceState{Power: model.Ptr(model.PowerOn), Temperature: model.Ptr(22.0)},
			},
			{
				ID:    "lock-1",
				Name:  "Front Door Lock",
				Type:  model.DeviceTypeDoorLock,
				Area:  "Living Room",
				State: model.DeviceState{Locked: model.Ptr(true)},
			},
			{
				ID:    "fan-1",
				Name:  "Bedroom Ceiling Fan",
				Type:  model.DeviceTypeFan,
				Area:  "Bedroom",
				State: model.DeviceState{Power: model.Ptr(model.PowerOff), Speed: model.Ptr(0)},
			},
		},
		Sensors: []*model.Sensor{
			{
				ID:    "temp-1",
				Name:  "Living Room Temperature Sensor",
				Type:  model.SensorTypeTemperature,
				Area:  "Living Room",
				State: model.SensorState{Value: 22.5, Unit: "°C", LastUpdated: now},
			},
			{
				ID:    "humid-1",
				Name:  "Bathroom Humidity Sensor",
				Type:  model.SensorTypeHumidity,
				Area:  "Bathroom",
				State: model.SensorState{Value: 65.0, Unit: "%", LastUpdated: now},
			},
			{
				ID:    "motion-1",
				Name:  "Garage Motion Sensor",
				Type:  model.SensorTypeMotion,
				Area:  "Garage",
				State: model.SensorState{Value: false, LastUpdated: now},
			},
		},
	}
}
