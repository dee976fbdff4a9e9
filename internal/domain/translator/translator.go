package translator

import (
	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

// Translator turns a hub entity of one domain into device state.
type Translator interface {
	DeviceType() model.DeviceType
	ToState(entity ports.Entity) model.DeviceState
}

func powerFrom(state string) *model.Power {
	if state == "on" {
		return model.Ptr(model.PowerOn)
	}
	return model.Ptr(model.PowerOff)
}

func number(attrs map[string]interface{}, key string) (float64, bool) {
	switch v := attrs[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
