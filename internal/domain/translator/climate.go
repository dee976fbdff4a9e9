package translator

import (
	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

type ClimateStrategy struct{}

func (s *ClimateStrategy) DeviceType() model.DeviceType {
	return model.DeviceTypeThermostat
}

// ToState reads the target temperature, falling back to the measured one.
// Any hvac mode other than off counts as powered.
func (s *ClimateStrategy) ToState(entity ports.Entity) model.DeviceState {
	power := model.PowerOn
	if entity.State == "off" || entity.State == "unavailable" {
		power = model.PowerOff
	}
	state := model.DeviceState{Power: model.Ptr(power)}
	if temp, ok := number(entity.Attributes, "temperature"); ok {
		state.Temperature = model.Ptr(temp)
	} else if temp, ok := number(entity.Attributes, "current_temperature"); ok {
		state.Temperature = model.Ptr(temp)
	}
	return state
}
