package translator

import (
	"smarthome-bridge/internal/domain/model"
	"smarthome-bridge/internal/ports"
)

type LockStrategy struct{}

func (s *LockStrategy) DeviceType() model.DeviceType {
	return model.DeviceTypeDoorLock
}

func (s *LockStrategy) ToState(entity ports.Entity) model.DeviceState {
	return model.DeviceState{Locked: model.Ptr(entity.State == "locked")}
}
