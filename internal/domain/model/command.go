package model

// Operation names a state mutation requested through the facade.
type Operation string

const (
	OpTurnOn         Operation = "turn_on"
	OpTurnOff        Operation = "turn_off"
	OpSetBrightness  Operation = "set_brightness"
	OpSetTemperature Operation = "set_temperature"
	OpLock           Operation = "lock"
	OpUnlock         Operation = "unlock"
	OpSetFanSpeed    Operation = "set_fan_speed"
	OpUpdateState    Operation = "update_state"
)

// Command carries an operation together with the already validated state patch.
// Local backends merge Patch; remote backends translate Op into a service call.
type Command struct {
	Op    Operation
	Patch DeviceState
}

const (
	MinPercent     = 0
	MaxPercent     = 100
	MinTemperature = 10.0
	MaxTemperature = 35.0

	DefaultLightBrightness = 100
	DefaultFanSpeed        = 50
)

func ClampPercent(x int) int {
	if x < MinPercent {
		return MinPercent
	}
	if x > MaxPercent {
		return MaxPercent
	}
	return x
}

func ClampTemperature(x float64) float64 {
	if x < MinTemperature {
		return MinTemperature
	}
	if x > MaxTemperature {
		return MaxTemperature
	}
	return x
}
