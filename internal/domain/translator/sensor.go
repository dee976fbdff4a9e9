package translator

import (
	"math"
	"strconv"
	"strings"

	"smarthome-bridge/internal/domain/model"
)

// SensorTypeFor maps a device class to a sensor type. Only the sensor and
// binary_sensor domains carry sensors.
func SensorTypeFor(domain, deviceClass string) (model.SensorType, bool) {
	if domain != "sensor" && domain != "binary_sensor" {
		return "", false
	}
	switch deviceClass {
	case "temperature":
		return model.SensorTypeTemperature, true
	case "humidity":
		return model.SensorTypeHumidity, true
	case "motion", "occupancy":
		return model.SensorTypeMotion, true
	}
	return "", false
}

// ParseSensorValue coerces the raw hub state for a sensor type: motion is a
// boolean, temperature and humidity are finite floats (0 when unparsable), anything
// else stays a string.
func ParseSensorValue(sensorType model.SensorType, raw string) interface{} {
	switch sensorType {
	case model.SensorTypeMotion:
		return raw == "on"
	case model.SensorTypeTemperature, model.SensorTypeHumidity:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0.0
		}
		return v
	default:
		return raw
	}
}
