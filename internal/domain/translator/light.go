package translator

import (
	"math"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

type LightStrategy struct{}

func (s *LightStrategy) DeviceType() model.DeviceType {
	return model.DeviceTypeLight
}

func (s *LightStrategy) ToState(entity ports.Entity) model.DeviceState {
	state := model.DeviceState{Power: powerFrom(entity.State)}
	if bri, ok := number(entity.Attributes, "brightness"); ok {
		state.Brightness = model.Ptr(model.ClampPercent(int(math.Round(bri))))
	}
	return state
}
