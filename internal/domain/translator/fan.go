package translator

import (
	"math"

	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

type FanStrategy struct{}

func (s *FanStrategy) DeviceType() model.DeviceType {
	return model.DeviceTypeFan
}

func (s *FanStrategy) ToState(entity ports.Entity) model.DeviceState {
	state := model.DeviceState{Power: powerFrom(entity.State)}
	if pct, ok := number(entity.Attributes, "percentage"); ok {
		state.Speed = model.Ptr(model.ClampPercent(int(math.Round(pct))))
	}
	return state
}
