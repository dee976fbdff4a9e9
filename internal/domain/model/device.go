package model

import "time"

type DeviceType string

const (
	DeviceTypeLight      DeviceType = "light"
	DeviceTypeThermostat DeviceType = "thermostat"
	DeviceTypeDoorLock   DeviceType = "door_lock"
	DeviceTypeWindow     DeviceType = "window"
	DeviceTypeFan        DeviceType = "fan"
	DeviceTypeCamera     DeviceType = "camera"
	DeviceTypeSensor     DeviceType = "sensor"
)

type SensorType string

const (
	SensorTypeTemperature SensorType = "temperature"
	SensorTypeHumidity    SensorType = "humidity"
	SensorTypeMotion      SensorType = "motion"
	SensorTypeDoor        SensorType = "door"
	SensorTypeSmoke       SensorType = "smoke"
)

type Power string

const (
	PowerOn  Power = "on"
	PowerOff Power = "off"
)

// DeviceState is sparse: a nil field is undefined for the device, never zero.
type DeviceState struct {
	Power       *Power   `json:"power,omitempty"`
	Brightness  *int     `json:"brightness,omitempty"`  // 0-100
	Temperature *float64 `json:"temperature,omitempty"` // °C
	Locked      *bool    `json:"locked,omitempty"`
	Open        *bool    `json:"open,omitempty"`
	Speed       *int     `json:"speed,omitempty"` // 0-100
	Recording   *bool    `json:"recording,omitempty"`
}

type Device struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Type     DeviceType             `json:"type"`
	Area     string                 `json:"area"`
	State    DeviceState            `json:"state"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type SensorState struct {
	Value       interface{} `json:"value"` // float64, bool or string
	Unit        string      `json:"unit,omitempty"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

type Sensor struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Type     SensorType             `json:"type"`
	Area     string                 `json:"area"`
	State    SensorState            `json:"state"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Snapshot is the whole persisted dataset.
type Snapshot struct {
	Devices []*Device `json:"devices"`
	Sensors []*Sensor `json:"sensors"`
	Areas   []string  `json:"areas"`
}

// Merge copies every field set in patch over s. Fields absent from patch are kept.
func (s DeviceState) Merge(patch DeviceState) DeviceState {
	return s.Clone().mergeInto(patch)
}

// Clone returns a copy that shares no pointers with s.
func (s DeviceState) Clone() DeviceState {
	return DeviceState{}.mergeInto(s)
}

func (s DeviceState) mergeInto(src DeviceState) DeviceState {
	if src.Power != nil {
		s.Power = Ptr(*src.Power)
	}
	if src.Brightness != nil {
		s.Brightness = Ptr(*src.Brightness)
	}
	if src.Temperature != nil {
		s.Temperature = Ptr(*src.Temperature)
	}
	if src.Locked != nil {
		s.Locked = Ptr(*src.Locked)
	}
	if src.Open != nil {
		s.Open = Ptr(*src.Open)
	}
	if src.Speed != nil {
		s.Speed = Ptr(*src.Speed)
	}
	if src.Recording != nil {
		s.Recording = Ptr(*src.Recording)
	}
	return s
}

// IsOn reports whether the power field is set to on.
func (s DeviceState) IsOn() bool {
	return s.Power != nil && *s.Power == PowerOn
}

func (d *Device) DeepCopy() *Device {
	if d == nil {
		return nil
	}
	cp := *d
	cp.State = d.State.Clone()
	cp.Metadata = copyMetadata(d.Metadata)
	return &cp
}

func (s *Sensor) DeepCopy() *Sensor {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Metadata = copyMetadata(s.Metadata)
	return &cp
}

func copyMetadata(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
